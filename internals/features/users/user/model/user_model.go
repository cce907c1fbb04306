package model

import (
	"time"

	"github.com/google/uuid"

	"tahfidz_backend/internals/store"
)

// UserModel merepresentasikan tabel users (akun Admin / Asatidz / WaliSantri)
type UserModel struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"column:username;size:50;not null;uniqueIndex" json:"username"`
	Nama         string    `gorm:"column:nama;size:100;not null" json:"nama"`
	Email        *string   `gorm:"column:email;size:255" json:"email,omitempty"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         string    `gorm:"column:role;type:varchar(20);not null" json:"role"`
	IsActive     bool      `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

var UserSchema = store.Schema[UserModel]{
	Table:    "users",
	IDColumn: "id",
	ID:       func(m *UserModel) uuid.UUID { return m.ID },
	SetID:    func(m *UserModel, id uuid.UUID) { m.ID = id },
	Columns: func(m *UserModel) map[string]any {
		return map[string]any{
			"id":         m.ID,
			"username":   m.Username,
			"nama":       m.Nama,
			"email":      m.Email,
			"role":       m.Role,
			"is_active":  m.IsActive,
			"created_at": m.CreatedAt,
		}
	},
	Stamp: func(m *UserModel, now time.Time, created bool) {
		if created {
			m.CreatedAt = now
		}
		m.UpdatedAt = now
	},
	Unique:       [][]string{{"username"}},
	DefaultOrder: "nama",
}
