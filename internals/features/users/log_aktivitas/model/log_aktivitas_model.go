package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"tahfidz_backend/internals/store"
)

// LogAktivitasModel: jejak aksi user, hanya ditambah (append-only).
type LogAktivitasModel struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Aksi      string         `gorm:"column:aksi;type:text;not null" json:"aksi"`
	Detail    datatypes.JSON `gorm:"column:detail" json:"detail,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (LogAktivitasModel) TableName() string { return "log_aktivitas" }

var LogAktivitasSchema = store.Schema[LogAktivitasModel]{
	Table:    "log_aktivitas",
	IDColumn: "id",
	ID:       func(m *LogAktivitasModel) uuid.UUID { return m.ID },
	SetID:    func(m *LogAktivitasModel, id uuid.UUID) { m.ID = id },
	Columns: func(m *LogAktivitasModel) map[string]any {
		return map[string]any{
			"id":         m.ID,
			"user_id":    m.UserID,
			"aksi":       m.Aksi,
			"created_at": m.CreatedAt,
		}
	},
	Stamp: func(m *LogAktivitasModel, now time.Time, created bool) {
		if created {
			m.CreatedAt = now
		}
	},
	DefaultOrder: "created_at",
	DefaultDesc:  true,
}
