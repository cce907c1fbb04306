package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tahfidz_backend/internals/constants"
	absensiModel "tahfidz_backend/internals/features/tahfidz/absensi/model"
	setoranModel "tahfidz_backend/internals/features/tahfidz/setoran/model"
	"tahfidz_backend/internals/helpers/dbtime"
	"tahfidz_backend/internals/testkit"
)

func titles(groups []MenuGroup) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Title)
	}
	return out
}

func TestMenuFor(t *testing.T) {
	cases := []struct {
		role string
		want []string
	}{
		{constants.RoleAdmin, []string{"Dashboard", "Manajemen Data", "Manajemen Tahfidz", "Informasi", "Wali Santri"}},
		{constants.RoleAsatidz, []string{"Manajemen Tahfidz"}},
		{constants.RoleWaliSantri, []string{"Dashboard", "Wali Santri"}},
		{"Tamu", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			assert.Equal(t, tc.want, titles(MenuFor(tc.role)))
		})
	}
}

func TestStats_Scoped(t *testing.T) {
	env := testkit.NewEnv(t)
	w := env.World(t)
	svc := NewDashboardService(env.Tables, env.Log)
	today := dbtime.Today()

	for _, a := range []absensiModel.AbsensiModel{
		{SantriID: w.Santri1.ID, Tanggal: today, Status: constants.AbsensiHadir},
		{SantriID: w.Santri3.ID, Tanggal: today, Status: constants.AbsensiSakit},
	} {
		_, err := env.Tables.Absensi.Create(env.Ctx, a)
		require.NoError(t, err)
	}
	_, err := env.Tables.Setoran.Create(env.Ctx, setoranModel.SetoranModel{
		SantriID: w.Santri1.ID, AsatidzID: w.Ustadz1.ID, Tanggal: today,
		Juz: 30, Surah: "An-Naba", AyatMulai: 1, AyatSelesai: 10,
		NilaiKelancaran: 80, NilaiTajwid: 80, NilaiMakharij: 80, Status: constants.SetoranLancar,
	})
	require.NoError(t, err)

	admin, err := svc.Stats(env.Ctx, testkit.ActorOf(w.Admin), today)
	require.NoError(t, err)
	assert.EqualValues(t, 3, admin.SantriAktif)
	assert.EqualValues(t, 2, admin.Halaqoh)
	assert.EqualValues(t, 1, admin.Kelas)
	assert.EqualValues(t, 2, admin.Asatidz)
	assert.EqualValues(t, 1, admin.SetoranHariIni)
	assert.Equal(t, map[string]int64{"Hadir": 1, "Sakit": 1, "Izin": 0, "Alpha": 0}, admin.AbsensiHariIni)

	ustadz2, err := svc.Stats(env.Ctx, testkit.ActorOf(w.Ustadz2), today)
	require.NoError(t, err)
	assert.EqualValues(t, 1, ustadz2.SantriAktif)
	assert.EqualValues(t, 1, ustadz2.Halaqoh)
	assert.Zero(t, ustadz2.Kelas)
	assert.Zero(t, ustadz2.SetoranHariIni)
	assert.EqualValues(t, 1, ustadz2.AbsensiHariIni["Sakit"])

	wali, err := svc.Stats(env.Ctx, testkit.ActorOf(w.Wali1), today)
	require.NoError(t, err)
	assert.EqualValues(t, 1, wali.SantriAktif)
	assert.Zero(t, wali.Halaqoh)
	assert.EqualValues(t, 1, wali.AbsensiHariIni["Hadir"])
	assert.Zero(t, wali.AbsensiHariIni["Sakit"])
}
