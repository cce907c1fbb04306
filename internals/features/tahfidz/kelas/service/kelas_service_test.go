package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/tahfidz/kelas/dto"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/store"
	"tahfidz_backend/internals/testkit"
)

func TestKelas_CRUD(t *testing.T) {
	env := testkit.NewEnv(t)
	w := env.World(t)
	svc := NewKelasService(env.Tables, env.Audit, env.Log)
	admin := testkit.ActorOf(w.Admin)

	created, err := svc.Create(env.Ctx, admin, dto.CreateKelasRequest{
		Nama: "Kelas 8B", Kategori: constants.KelasAkhwat, Program: constants.ProgramTahsin,
	})
	require.NoError(t, err)

	rows, total, err := svc.List(env.Ctx, ListFilter{Kategori: constants.KelasAkhwat}, store.Query{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, created.ID, rows[0].ID)

	got, err := svc.Get(env.Ctx, w.Kelas.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.JumlahSantri)

	prog := constants.ProgramTakhassus
	upd, err := svc.Update(env.Ctx, admin, created.ID, dto.UpdateKelasRequest{Program: &prog})
	require.NoError(t, err)
	assert.Equal(t, constants.ProgramTakhassus, upd.Program)
	assert.Equal(t, "Kelas 8B", upd.Nama)

	assert.ErrorIs(t, svc.Delete(env.Ctx, admin, w.Kelas.ID), helper.ErrInUse)
	require.NoError(t, svc.Delete(env.Ctx, admin, created.ID))
	_, err = svc.Get(env.Ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestKelas_Validation(t *testing.T) {
	fields := helper.ValidateStruct(dto.CreateKelasRequest{Nama: "Kelas 9", Kategori: "Campur", Program: "Kilat"})
	assert.Contains(t, fields, "kategori")
	assert.Contains(t, fields, "program")
	assert.NotContains(t, fields, "nama_kelas")
}
