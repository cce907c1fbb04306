package model

import (
	"time"

	"github.com/google/uuid"

	"tahfidz_backend/internals/store"
)

// KelasModel: rombongan belajar, dibedakan jalur (Ikhwan/Akhwat) dan program
type KelasModel struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Nama       string    `gorm:"column:nama_kelas;type:varchar(100);not null" json:"nama_kelas"`
	Kategori   string    `gorm:"column:kategori;type:varchar(20);not null" json:"kategori"`
	Program    string    `gorm:"column:program;type:varchar(50);not null" json:"program"`
	Keterangan *string   `gorm:"column:keterangan;type:text" json:"keterangan,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (KelasModel) TableName() string { return "kelas" }

var KelasSchema = store.Schema[KelasModel]{
	Table:    "kelas",
	IDColumn: "id",
	ID:       func(m *KelasModel) uuid.UUID { return m.ID },
	SetID:    func(m *KelasModel, id uuid.UUID) { m.ID = id },
	Columns: func(m *KelasModel) map[string]any {
		return map[string]any{
			"id":         m.ID,
			"nama_kelas": m.Nama,
			"kategori":   m.Kategori,
			"program":    m.Program,
			"created_at": m.CreatedAt,
		}
	},
	Stamp: func(m *KelasModel, now time.Time, created bool) {
		if created {
			m.CreatedAt = now
		}
		m.UpdatedAt = now
	},
	DefaultOrder: "nama_kelas",
}
