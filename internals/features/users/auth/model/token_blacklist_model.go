package model

import (
	"time"

	"github.com/google/uuid"

	"tahfidz_backend/internals/store"
)

// TokenBlacklist menyimpan JWT yang sudah logout sampai masa berlakunya habis.
type TokenBlacklist struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Token     string    `gorm:"column:token;type:text;not null;uniqueIndex" json:"token"`
	ExpiredAt time.Time `gorm:"column:expired_at" json:"expired_at"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}

var TokenBlacklistSchema = store.Schema[TokenBlacklist]{
	Table:    "token_blacklist",
	IDColumn: "id",
	ID:       func(m *TokenBlacklist) uuid.UUID { return m.ID },
	SetID:    func(m *TokenBlacklist, id uuid.UUID) { m.ID = id },
	Columns: func(m *TokenBlacklist) map[string]any {
		return map[string]any{
			"id":         m.ID,
			"token":      m.Token,
			"expired_at": m.ExpiredAt,
			"created_at": m.CreatedAt,
		}
	},
	Stamp: func(m *TokenBlacklist, now time.Time, created bool) {
		if created {
			m.CreatedAt = now
		}
	},
	Unique:       [][]string{{"token"}},
	DefaultOrder: "expired_at",
}
