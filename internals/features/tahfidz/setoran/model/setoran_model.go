package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"tahfidz_backend/internals/store"
)

// SetoranModel: satu sesi setoran hafalan santri
type SetoranModel struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SantriID        uuid.UUID      `gorm:"column:id_santri;type:uuid;not null;index" json:"id_santri"`
	AsatidzID       uuid.UUID      `gorm:"column:id_asatidz;type:uuid;not null;index" json:"id_asatidz"`
	Tanggal         datatypes.Date `gorm:"column:tanggal;type:date;not null;index" json:"tanggal"`
	Juz             int            `gorm:"column:juz;not null" json:"juz"`
	Surah           string         `gorm:"column:surah;type:varchar(50);not null" json:"surah"`
	AyatMulai       int            `gorm:"column:ayat_mulai;not null" json:"ayat_mulai"`
	AyatSelesai     int            `gorm:"column:ayat_selesai;not null" json:"ayat_selesai"`
	NilaiKelancaran float64        `gorm:"column:nilai_kelancaran;type:numeric(5,2);not null" json:"nilai_kelancaran"`
	NilaiTajwid     float64        `gorm:"column:nilai_tajwid;type:numeric(5,2);not null" json:"nilai_tajwid"`
	NilaiMakharij   float64        `gorm:"column:nilai_makharij;type:numeric(5,2);not null" json:"nilai_makharij"`
	Status          string         `gorm:"column:status;type:varchar(20);not null" json:"status"`
	Catatan         *string        `gorm:"column:catatan;type:text" json:"catatan,omitempty"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SetoranModel) TableName() string { return "setoran" }

// RataRata: rata-rata tiga nilai mutu setoran
func (m SetoranModel) RataRata() float64 {
	return (m.NilaiKelancaran + m.NilaiTajwid + m.NilaiMakharij) / 3
}

var SetoranSchema = store.Schema[SetoranModel]{
	Table:    "setoran",
	IDColumn: "id",
	ID:       func(m *SetoranModel) uuid.UUID { return m.ID },
	SetID:    func(m *SetoranModel, id uuid.UUID) { m.ID = id },
	Columns: func(m *SetoranModel) map[string]any {
		return map[string]any{
			"id":         m.ID,
			"id_santri":  m.SantriID,
			"id_asatidz": m.AsatidzID,
			"tanggal":    m.Tanggal,
			"juz":        m.Juz,
			"surah":      m.Surah,
			"status":     m.Status,
			"created_at": m.CreatedAt,
		}
	},
	Stamp: func(m *SetoranModel, now time.Time, created bool) {
		if created {
			m.CreatedAt = now
		}
		m.UpdatedAt = now
	},
	DefaultOrder: "tanggal",
	DefaultDesc:  true,
}
