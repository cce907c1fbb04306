package dto

import (
	"strings"
	"time"

	"tahfidz_backend/internals/features/home/dashboard/service"
	userDTO "tahfidz_backend/internals/features/users/user/dto"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

type LoginResponse struct {
	AccessToken string               `json:"access_token"`
	ExpiresAt   time.Time            `json:"expires_at"`
	User        userDTO.UserResponse `json:"user"`
	Menu        []service.MenuGroup  `json:"menu"`
}

type MeResponse struct {
	User userDTO.UserResponse `json:"user"`
	Menu []service.MenuGroup  `json:"menu"`
}
