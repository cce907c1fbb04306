package model

import (
	"math"
	"time"

	"github.com/google/uuid"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/store"
)

// PenilaianModel: nilai periodik santri (tajwid, fashahah/makharij, kelancaran)
type PenilaianModel struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SantriID   uuid.UUID `gorm:"column:id_santri;type:uuid;not null;index" json:"id_santri"`
	PenilaiID  uuid.UUID `gorm:"column:id_penilai;type:uuid;not null" json:"id_penilai"`
	Periode    string    `gorm:"column:periode;type:varchar(30);not null" json:"periode"`
	Tajwid     float64   `gorm:"column:tajwid;type:numeric(5,2);not null" json:"tajwid"`
	Fashahah   float64   `gorm:"column:fashahah;type:numeric(5,2);not null" json:"fashahah"`
	Kelancaran float64   `gorm:"column:kelancaran;type:numeric(5,2);not null" json:"kelancaran"`
	RataRata   float64   `gorm:"column:rata_rata;type:numeric(5,2);not null" json:"rata_rata"`
	Predikat   string    `gorm:"column:predikat;type:varchar(2);not null" json:"predikat"`
	Catatan    *string   `gorm:"column:catatan;type:text" json:"catatan,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PenilaianModel) TableName() string { return "penilaian" }

var PenilaianSchema = store.Schema[PenilaianModel]{
	Table:    "penilaian",
	IDColumn: "id",
	ID:       func(m *PenilaianModel) uuid.UUID { return m.ID },
	SetID:    func(m *PenilaianModel, id uuid.UUID) { m.ID = id },
	Columns: func(m *PenilaianModel) map[string]any {
		return map[string]any{
			"id":         m.ID,
			"id_santri":  m.SantriID,
			"periode":    m.Periode,
			"rata_rata":  m.RataRata,
			"predikat":   m.Predikat,
			"created_at": m.CreatedAt,
		}
	},
	Stamp: func(m *PenilaianModel, now time.Time, created bool) {
		if created {
			m.CreatedAt = now
		}
		m.UpdatedAt = now
	},
	DefaultOrder: "created_at",
	DefaultDesc:  true,
}

// Hitung mengisi RataRata (dibulatkan 2 desimal) dan Predikat.
func (m *PenilaianModel) Hitung() {
	avg := (m.Tajwid + m.Fashahah + m.Kelancaran) / 3
	m.RataRata = math.Round(avg*100) / 100
	m.Predikat = constants.Predikat(m.RataRata)
}
