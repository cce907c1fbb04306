package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"tahfidz_backend/internals/store"
)

// AbsensiModel: status kehadiran harian per santri (satu baris per hari)
type AbsensiModel struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SantriID   uuid.UUID      `gorm:"column:id_santri;type:uuid;not null;uniqueIndex:uq_absensi_santri_tanggal,priority:1" json:"id_santri"`
	Tanggal    datatypes.Date `gorm:"column:tanggal;type:date;not null;uniqueIndex:uq_absensi_santri_tanggal,priority:2" json:"tanggal"`
	Status     string         `gorm:"column:status;type:varchar(10);not null" json:"status"`
	Keterangan *string        `gorm:"column:keterangan;type:text" json:"keterangan,omitempty"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (AbsensiModel) TableName() string { return "absensi" }

var AbsensiSchema = store.Schema[AbsensiModel]{
	Table:    "absensi",
	IDColumn: "id",
	ID:       func(m *AbsensiModel) uuid.UUID { return m.ID },
	SetID:    func(m *AbsensiModel, id uuid.UUID) { m.ID = id },
	Columns: func(m *AbsensiModel) map[string]any {
		return map[string]any{
			"id":         m.ID,
			"id_santri":  m.SantriID,
			"tanggal":    m.Tanggal,
			"status":     m.Status,
			"created_at": m.CreatedAt,
		}
	},
	Stamp: func(m *AbsensiModel, now time.Time, created bool) {
		if created {
			m.CreatedAt = now
		}
		m.UpdatedAt = now
	},
	Unique:       [][]string{{"id_santri", "tanggal"}},
	DefaultOrder: "tanggal",
	DefaultDesc:  true,
}
