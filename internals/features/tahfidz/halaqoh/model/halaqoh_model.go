package model

import (
	"time"

	"github.com/google/uuid"

	"tahfidz_backend/internals/store"
)

// HalaqohModel: lingkaran hafalan yang dipimpin satu asatidz
type HalaqohModel struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Nama       string    `gorm:"column:nama_halaqoh;type:varchar(100);not null" json:"nama_halaqoh"`
	AsatidzID  uuid.UUID `gorm:"column:id_asatidz;type:uuid;not null;index" json:"id_asatidz"`
	Keterangan *string   `gorm:"column:keterangan;type:text" json:"keterangan,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (HalaqohModel) TableName() string { return "halaqoh" }

var HalaqohSchema = store.Schema[HalaqohModel]{
	Table:    "halaqoh",
	IDColumn: "id",
	ID:       func(m *HalaqohModel) uuid.UUID { return m.ID },
	SetID:    func(m *HalaqohModel, id uuid.UUID) { m.ID = id },
	Columns: func(m *HalaqohModel) map[string]any {
		return map[string]any{
			"id":           m.ID,
			"nama_halaqoh": m.Nama,
			"id_asatidz":   m.AsatidzID,
			"created_at":   m.CreatedAt,
		}
	},
	Stamp: func(m *HalaqohModel, now time.Time, created bool) {
		if created {
			m.CreatedAt = now
		}
		m.UpdatedAt = now
	},
	DefaultOrder: "nama_halaqoh",
}
