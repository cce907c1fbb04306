package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"tahfidz_backend/internals/store"
)

type PengumumanModel struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Judul         string         `gorm:"column:judul;type:varchar(200);not null" json:"judul"`
	Slug          string         `gorm:"column:slug;type:varchar(220);not null;uniqueIndex" json:"slug"`
	Isi           string         `gorm:"column:isi;type:text;not null" json:"isi"`
	Kategori      string         `gorm:"column:kategori;type:varchar(20);not null" json:"kategori"`
	PenulisID     uuid.UUID      `gorm:"column:id_penulis;type:uuid;not null" json:"id_penulis"`
	TanggalTerbit datatypes.Date `gorm:"column:tanggal_terbit;type:date;not null" json:"tanggal_terbit"`
	// kosong = untuk semua role
	TargetRoles pq.StringArray `gorm:"column:target_roles;type:text[]" json:"target_roles"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PengumumanModel) TableName() string { return "pengumuman" }

// VisibleTo: pengumuman tanpa target terlihat oleh semua role
func (m PengumumanModel) VisibleTo(role string) bool {
	if len(m.TargetRoles) == 0 {
		return true
	}
	for _, r := range m.TargetRoles {
		if r == role {
			return true
		}
	}
	return false
}

var PengumumanSchema = store.Schema[PengumumanModel]{
	Table:    "pengumuman",
	IDColumn: "id",
	ID:       func(m *PengumumanModel) uuid.UUID { return m.ID },
	SetID:    func(m *PengumumanModel, id uuid.UUID) { m.ID = id },
	Columns: func(m *PengumumanModel) map[string]any {
		return map[string]any{
			"id":             m.ID,
			"judul":          m.Judul,
			"slug":           m.Slug,
			"isi":            m.Isi,
			"kategori":       m.Kategori,
			"id_penulis":     m.PenulisID,
			"tanggal_terbit": m.TanggalTerbit,
			"created_at":     m.CreatedAt,
		}
	},
	Stamp: func(m *PengumumanModel, now time.Time, created bool) {
		if created {
			m.CreatedAt = now
		}
		m.UpdatedAt = now
	},
	Unique:       [][]string{{"slug"}},
	DefaultOrder: "tanggal_terbit",
	DefaultDesc:  true,
}
