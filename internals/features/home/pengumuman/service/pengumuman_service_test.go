package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/home/pengumuman/dto"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/helpers/dbtime"
	"tahfidz_backend/internals/store"
	"tahfidz_backend/internals/testkit"
)

func create(t *testing.T, env *testkit.Env, svc *PengumumanService, w testkit.World, judul, terbit string, roles ...string) dto.PengumumanResponse {
	t.Helper()
	req := dto.CreatePengumumanRequest{Judul: judul, Isi: "isi " + judul, TanggalTerbit: terbit, TargetRoles: roles}
	req.Normalize()
	res, err := svc.Create(env.Ctx, testkit.ActorOf(w.Admin), req)
	require.NoError(t, err)
	return res
}

func TestPengumuman_SlugUnique(t *testing.T) {
	env := testkit.NewEnv(t)
	w := env.World(t)
	svc := NewPengumumanService(env.Tables, env.Audit, env.Log)

	a := create(t, env, svc, w, "Libur Idul Adhā 1446 H", "")
	b := create(t, env, svc, w, "Libur Idul Adha 1446 H", "")
	assert.Equal(t, "libur-idul-adha-1446-h", a.Slug)
	assert.Equal(t, "libur-idul-adha-1446-h-2", b.Slug)
	assert.Equal(t, constants.PengumumanUmum, a.Kategori)
	assert.Equal(t, w.Admin.Nama, a.NamaPenulis)

	// judul sama saat update tidak mengubah slug
	judul := "Libur Idul Adha 1446 H"
	up, err := svc.Update(env.Ctx, testkit.ActorOf(w.Admin), b.ID, dto.UpdatePengumumanRequest{Judul: &judul})
	require.NoError(t, err)
	assert.Equal(t, b.Slug, up.Slug)

	judul = "Jadwal Ujian Tasmi"
	up, err = svc.Update(env.Ctx, testkit.ActorOf(w.Admin), b.ID, dto.UpdatePengumumanRequest{Judul: &judul})
	require.NoError(t, err)
	assert.Equal(t, "jadwal-ujian-tasmi", up.Slug)
}

func TestPengumuman_TargetedReads(t *testing.T) {
	env := testkit.NewEnv(t)
	w := env.World(t)
	svc := NewPengumumanService(env.Tables, env.Audit, env.Log)

	tomorrow := dbtime.FormatDate(dbtime.DateOf(time.Now().Add(48 * time.Hour)))
	create(t, env, svc, w, "Untuk semua", "2025-01-01")
	wali := create(t, env, svc, w, "Untuk wali", "2025-01-02", constants.RoleWaliSantri)
	create(t, env, svc, w, "Untuk asatidz", "2025-01-03", constants.RoleAsatidz)
	create(t, env, svc, w, "Terjadwal", tomorrow)

	count := func(actor helper.Actor) int64 {
		_, total, err := svc.List(env.Ctx, actor, "", store.Query{})
		require.NoError(t, err)
		return total
	}
	assert.EqualValues(t, 4, count(testkit.ActorOf(w.Admin)))
	assert.EqualValues(t, 2, count(testkit.ActorOf(w.Ustadz1)))
	assert.EqualValues(t, 2, count(testkit.ActorOf(w.Wali1)))

	_, err := svc.Get(env.Ctx, testkit.ActorOf(w.Ustadz1), wali.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	got, err := svc.GetBySlug(env.Ctx, testkit.ActorOf(w.Wali2), wali.Slug)
	require.NoError(t, err)
	assert.Equal(t, wali.ID, got.ID)

	// paging setelah penyaringan
	rows, total, err := svc.List(env.Ctx, testkit.ActorOf(w.Wali1), "", store.Query{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Untuk semua", rows[0].Judul)
}
