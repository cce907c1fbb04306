package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	uModel "tahfidz_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateUserRequest: create akun oleh admin
type CreateUserRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Nama     string  `json:"nama" validate:"notblank,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Role     string  `json:"role" validate:"required,role"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Normalize: trim & normalisasi dasar
func (r *CreateUserRequest) Normalize() {
	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
	r.Nama = strings.TrimSpace(r.Nama)
	r.Role = strings.TrimSpace(r.Role)
	if r.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email))
		if v == "" {
			r.Email = nil
		} else {
			r.Email = &v
		}
	}
}

// ToModel: password di-hash di service
func (r *CreateUserRequest) ToModel() uModel.UserModel {
	m := uModel.UserModel{
		Username: r.Username,
		Nama:     r.Nama,
		Email:    r.Email,
		Role:     r.Role,
		IsActive: true,
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return m
}

// UpdateUserRequest: partial update (pointer agar bisa bedakan omit vs isi)
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Nama     *string `json:"nama,omitempty" validate:"omitempty,notblank,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	Role     *string `json:"role,omitempty" validate:"omitempty,role"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateUserRequest) Normalize() {
	if r.Username != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Username))
		r.Username = &v
	}
	if r.Nama != nil {
		v := strings.TrimSpace(*r.Nama)
		r.Nama = &v
	}
	if r.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &v
	}
	if r.Role != nil {
		v := strings.TrimSpace(*r.Role)
		r.Role = &v
	}
}

// ApplyToModel: terapkan perubahan parsial ke model existing (password diurus service)
func (r *UpdateUserRequest) ApplyToModel(m *uModel.UserModel) {
	if r.Username != nil {
		m.Username = *r.Username
	}
	if r.Nama != nil {
		m.Nama = *r.Nama
	}
	if r.Email != nil {
		if *r.Email == "" {
			m.Email = nil
		} else {
			v := *r.Email
			m.Email = &v
		}
	}
	if r.Role != nil {
		m.Role = *r.Role
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Nama      string    `json:"nama"`
	Email     *string   `json:"email,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModel(m uModel.UserModel) UserResponse {
	return UserResponse{
		ID:        m.ID,
		Username:  m.Username,
		Nama:      m.Nama,
		Email:     m.Email,
		Role:      m.Role,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromModels(rows []uModel.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
