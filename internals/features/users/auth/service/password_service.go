package service

import (
	"context"
	"fmt"

	userService "tahfidz_backend/internals/features/users/user/service"
	helper "tahfidz_backend/internals/helpers"
)

// ========================== CHANGE PASSWORD ==========================
func (s *AuthService) ChangePassword(ctx context.Context, actor helper.Actor, current, next string) error {
	u, err := s.tables.Users.Get(ctx, actor.ID)
	if err != nil {
		return err
	}
	if !userService.CheckPassword(u.PasswordHash, current) {
		return &helper.FieldError{Field: "current_password", Message: "password lama salah", Err: helper.ErrInvalidCredentials}
	}
	if current == next {
		return helper.InvalidState("new_password", "password baru harus berbeda dari password lama")
	}

	hash, err := userService.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash
	if _, err := s.tables.Users.Update(ctx, u); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	s.audit.Record(ctx, actor.ID, "users.change_password", nil)
	return nil
}
