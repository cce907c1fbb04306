// Package repositories membundel satu store.Table per jenis record.
// Semua service menerima *Tables, bukan koneksi DB langsung.
package repositories

import (
	"context"

	"gorm.io/gorm"

	pengumumanModel "tahfidz_backend/internals/features/home/pengumuman/model"
	absensiModel "tahfidz_backend/internals/features/tahfidz/absensi/model"
	halaqohModel "tahfidz_backend/internals/features/tahfidz/halaqoh/model"
	kelasModel "tahfidz_backend/internals/features/tahfidz/kelas/model"
	penilaianModel "tahfidz_backend/internals/features/tahfidz/penilaian/model"
	santriModel "tahfidz_backend/internals/features/tahfidz/santri/model"
	setoranModel "tahfidz_backend/internals/features/tahfidz/setoran/model"
	ujianModel "tahfidz_backend/internals/features/tahfidz/ujian/model"
	authModel "tahfidz_backend/internals/features/users/auth/model"
	logModel "tahfidz_backend/internals/features/users/log_aktivitas/model"
	userModel "tahfidz_backend/internals/features/users/user/model"
	"tahfidz_backend/internals/store"
)

type Tables struct {
	Users          store.Table[userModel.UserModel]
	TokenBlacklist store.Table[authModel.TokenBlacklist]
	LogAktivitas   store.Table[logModel.LogAktivitasModel]
	Halaqoh        store.Table[halaqohModel.HalaqohModel]
	Kelas          store.Table[kelasModel.KelasModel]
	Santri         store.Table[santriModel.SantriModel]
	Setoran        store.Table[setoranModel.SetoranModel]
	Absensi        store.Table[absensiModel.AbsensiModel]
	Penilaian      store.Table[penilaianModel.PenilaianModel]
	Ujian          store.Table[ujianModel.UjianModel]
	Pengumuman     store.Table[pengumumanModel.PengumumanModel]

	// nil untuk backend memory
	DB *gorm.DB
}

// NewMemoryTables: semua tabel di memori proses (dev / test).
func NewMemoryTables() *Tables {
	return &Tables{
		Users:          store.NewMemoryTable(userModel.UserSchema),
		TokenBlacklist: store.NewMemoryTable(authModel.TokenBlacklistSchema),
		LogAktivitas:   store.NewMemoryTable(logModel.LogAktivitasSchema),
		Halaqoh:        store.NewMemoryTable(halaqohModel.HalaqohSchema),
		Kelas:          store.NewMemoryTable(kelasModel.KelasSchema),
		Santri:         store.NewMemoryTable(santriModel.SantriSchema),
		Setoran:        store.NewMemoryTable(setoranModel.SetoranSchema),
		Absensi:        store.NewMemoryTable(absensiModel.AbsensiSchema),
		Penilaian:      store.NewMemoryTable(penilaianModel.PenilaianSchema),
		Ujian:          store.NewMemoryTable(ujianModel.UjianSchema),
		Pengumuman:     store.NewMemoryTable(pengumumanModel.PengumumanSchema),
	}
}

// NewGormTables: tabel di atas koneksi gorm (postgres / sqlite).
func NewGormTables(db *gorm.DB) *Tables {
	return &Tables{
		Users:          store.NewGormTable(db, userModel.UserSchema),
		TokenBlacklist: store.NewGormTable(db, authModel.TokenBlacklistSchema),
		LogAktivitas:   store.NewGormTable(db, logModel.LogAktivitasSchema),
		Halaqoh:        store.NewGormTable(db, halaqohModel.HalaqohSchema),
		Kelas:          store.NewGormTable(db, kelasModel.KelasSchema),
		Santri:         store.NewGormTable(db, santriModel.SantriSchema),
		Setoran:        store.NewGormTable(db, setoranModel.SetoranSchema),
		Absensi:        store.NewGormTable(db, absensiModel.AbsensiSchema),
		Penilaian:      store.NewGormTable(db, penilaianModel.PenilaianSchema),
		Ujian:          store.NewGormTable(db, ujianModel.UjianSchema),
		Pengumuman:     store.NewGormTable(db, pengumumanModel.PengumumanSchema),
		DB:             db,
	}
}

// Models: daftar model untuk AutoMigrate (sqlite saja).
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&logModel.LogAktivitasModel{},
		&halaqohModel.HalaqohModel{},
		&kelasModel.KelasModel{},
		&santriModel.SantriModel{},
		&setoranModel.SetoranModel{},
		&absensiModel.AbsensiModel{},
		&penilaianModel.PenilaianModel{},
		&ujianModel.UjianModel{},
		&pengumumanModel.PengumumanModel{},
	}
}

// Ping mengecek koneksi backend. Backend memory selalu sehat.
func (t *Tables) Ping(ctx context.Context) error {
	if t.DB == nil {
		return nil
	}
	sqlDB, err := t.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (t *Tables) Backend() string {
	if t.DB == nil {
		return "memory"
	}
	return t.DB.Dialector.Name()
}
