package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"tahfidz_backend/internals/store"
)

// SantriModel merepresentasikan tabel santri
type SantriModel struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	NIS          string         `gorm:"column:nis;type:varchar(30);not null;uniqueIndex" json:"nis"`
	Nama         string         `gorm:"column:nama;type:varchar(100);not null" json:"nama"`
	JenisKelamin string         `gorm:"column:jenis_kelamin;type:varchar(1);not null" json:"jenis_kelamin"`
	HalaqohID    uuid.UUID      `gorm:"column:id_halaqoh;type:uuid;not null;index" json:"id_halaqoh"`
	KelasID      uuid.UUID      `gorm:"column:id_kelas;type:uuid;not null;index" json:"id_kelas"`
	WaliID       *uuid.UUID     `gorm:"column:id_wali;type:uuid;index" json:"id_wali,omitempty"`
	TanggalMasuk datatypes.Date `gorm:"column:tanggal_masuk;type:date;not null" json:"tanggal_masuk"`
	Status       string         `gorm:"column:status;type:varchar(20);not null;default:'Aktif'" json:"status"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SantriModel) TableName() string { return "santri" }

var SantriSchema = store.Schema[SantriModel]{
	Table:    "santri",
	IDColumn: "id",
	ID:       func(m *SantriModel) uuid.UUID { return m.ID },
	SetID:    func(m *SantriModel, id uuid.UUID) { m.ID = id },
	Columns: func(m *SantriModel) map[string]any {
		return map[string]any{
			"id":            m.ID,
			"nis":           m.NIS,
			"nama":          m.Nama,
			"jenis_kelamin": m.JenisKelamin,
			"id_halaqoh":    m.HalaqohID,
			"id_kelas":      m.KelasID,
			"id_wali":       m.WaliID,
			"tanggal_masuk": m.TanggalMasuk,
			"status":        m.Status,
			"created_at":    m.CreatedAt,
		}
	},
	Stamp: func(m *SantriModel, now time.Time, created bool) {
		if created {
			m.CreatedAt = now
		}
		m.UpdatedAt = now
	},
	Unique:       [][]string{{"nis"}},
	DefaultOrder: "nama",
}
