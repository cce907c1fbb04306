package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tahfidz_backend/internals/features/tahfidz/halaqoh/dto"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/store"
	"tahfidz_backend/internals/testkit"
)

func TestHalaqoh_ListScopedAndCounted(t *testing.T) {
	env := testkit.NewEnv(t)
	w := env.World(t)
	svc := NewHalaqohService(env.Tables, env.Audit, env.Log)

	rows, total, err := svc.List(env.Ctx, testkit.ActorOf(w.Admin), nil, store.Query{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	byID := map[uuid.UUID]dto.HalaqohResponse{}
	for _, r := range rows {
		byID[r.ID] = r
	}
	assert.EqualValues(t, 2, byID[w.Halaqoh1.ID].JumlahSantri)
	assert.EqualValues(t, 1, byID[w.Halaqoh2.ID].JumlahSantri)
	assert.Equal(t, w.Ustadz1.Nama, byID[w.Halaqoh1.ID].NamaAsatidz)

	rows, total, err = svc.List(env.Ctx, testkit.ActorOf(w.Ustadz2), nil, store.Query{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, w.Halaqoh2.ID, rows[0].ID)

	_, _, err = svc.List(env.Ctx, testkit.ActorOf(w.Wali1), nil, store.Query{})
	assert.ErrorIs(t, err, helper.ErrForbidden)

	_, err = svc.Get(env.Ctx, testkit.ActorOf(w.Ustadz2), w.Halaqoh1.ID)
	assert.ErrorIs(t, err, helper.ErrForbidden)
}

func TestHalaqoh_CreateRequiresActiveAsatidz(t *testing.T) {
	env := testkit.NewEnv(t)
	w := env.World(t)
	svc := NewHalaqohService(env.Tables, env.Audit, env.Log)
	admin := testkit.ActorOf(w.Admin)

	for name, id := range map[string]uuid.UUID{
		"unknown user": uuid.New(),
		"wrong role":   w.Wali1.ID,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(env.Ctx, admin, dto.CreateHalaqohRequest{Nama: "Halaqoh Baru", AsatidzID: id})
			assert.ErrorIs(t, err, helper.ErrReferenceMissing)
		})
	}

	res, err := svc.Create(env.Ctx, admin, dto.CreateHalaqohRequest{Nama: "Halaqoh Utsman", AsatidzID: w.Ustadz1.ID})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.ID)
	assert.Zero(t, res.JumlahSantri)

	logs, err := env.Tables.LogAktivitas.Count(env.Ctx, store.Eq{Column: "aksi", Value: "halaqoh.create"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, logs)
}

func TestHalaqoh_UpdateAndDelete(t *testing.T) {
	env := testkit.NewEnv(t)
	w := env.World(t)
	svc := NewHalaqohService(env.Tables, env.Audit, env.Log)
	admin := testkit.ActorOf(w.Admin)

	nama := "Halaqoh Abu Bakar Ash-Shiddiq"
	res, err := svc.Update(env.Ctx, admin, w.Halaqoh1.ID, dto.UpdateHalaqohRequest{Nama: &nama, AsatidzID: &w.Ustadz2.ID})
	require.NoError(t, err)
	assert.Equal(t, nama, res.Nama)
	assert.Equal(t, w.Ustadz2.ID, res.AsatidzID)

	bad := w.Wali2.ID
	_, err = svc.Update(env.Ctx, admin, w.Halaqoh1.ID, dto.UpdateHalaqohRequest{AsatidzID: &bad})
	assert.ErrorIs(t, err, helper.ErrReferenceMissing)

	// masih ada santri
	assert.ErrorIs(t, svc.Delete(env.Ctx, admin, w.Halaqoh2.ID), helper.ErrInUse)

	kosong := env.Halaqoh(t, "Halaqoh Kosong", w.Ustadz1.ID)
	require.NoError(t, svc.Delete(env.Ctx, admin, kosong.ID))
	_, err = env.Tables.Halaqoh.Get(env.Ctx, kosong.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	n, err := env.Tables.Halaqoh.Count(env.Ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	assert.ErrorIs(t, svc.Delete(env.Ctx, admin, uuid.New()), store.ErrNotFound)
}
