package model

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/store"
)

// UjianModel: ujian bertahap (tahapan / manzil / tasmi') per santri
type UjianModel struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SantriID        uuid.UUID      `gorm:"column:id_santri;type:uuid;not null;index" json:"id_santri"`
	PengujiID       uuid.UUID      `gorm:"column:id_penguji;type:uuid;not null" json:"id_penguji"`
	Jenis           string         `gorm:"column:jenis;type:varchar(20);not null" json:"jenis"`
	Tahap           int            `gorm:"column:tahap;not null" json:"tahap"`
	Tanggal         datatypes.Date `gorm:"column:tanggal;type:date;not null" json:"tanggal"`
	NilaiTajwid     float64        `gorm:"column:nilai_tajwid;type:numeric(5,2);not null" json:"nilai_tajwid"`
	NilaiFashahah   float64        `gorm:"column:nilai_fashahah;type:numeric(5,2);not null" json:"nilai_fashahah"`
	NilaiKelancaran float64        `gorm:"column:nilai_kelancaran;type:numeric(5,2);not null" json:"nilai_kelancaran"`
	NilaiAkhir      float64        `gorm:"column:nilai_akhir;type:numeric(5,2);not null" json:"nilai_akhir"`
	Lulus           bool           `gorm:"column:lulus;not null" json:"lulus"`
	Status          string         `gorm:"column:status;type:varchar(20);not null" json:"status"`
	Catatan         *string        `gorm:"column:catatan;type:text" json:"catatan,omitempty"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UjianModel) TableName() string { return "ujian" }

var UjianSchema = store.Schema[UjianModel]{
	Table:    "ujian",
	IDColumn: "id",
	ID:       func(m *UjianModel) uuid.UUID { return m.ID },
	SetID:    func(m *UjianModel, id uuid.UUID) { m.ID = id },
	Columns: func(m *UjianModel) map[string]any {
		return map[string]any{
			"id":         m.ID,
			"id_santri":  m.SantriID,
			"id_penguji": m.PengujiID,
			"jenis":      m.Jenis,
			"tahap":      m.Tahap,
			"tanggal":    m.Tanggal,
			"lulus":      m.Lulus,
			"status":     m.Status,
			"created_at": m.CreatedAt,
		}
	},
	Stamp: func(m *UjianModel, now time.Time, created bool) {
		if created {
			m.CreatedAt = now
		}
		m.UpdatedAt = now
	},
	DefaultOrder: "tanggal",
	DefaultDesc:  true,
}

// Nilai menghitung nilai akhir (rata-rata tiga aspek, 2 desimal) lalu
// menerapkan aturan ambang sesuai jenis.
func (m *UjianModel) Nilai(rule constants.ThresholdRule) {
	avg := (m.NilaiTajwid + m.NilaiFashahah + m.NilaiKelancaran) / 3
	m.NilaiAkhir = math.Round(avg*100) / 100
	score := rule.Score(m.NilaiAkhir, m.NilaiKelancaran)
	m.Lulus = rule.Passed(score)
	m.Status = rule.Label(score)
}
