package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	authModel "tahfidz_backend/internals/features/users/auth/model"
	logService "tahfidz_backend/internals/features/users/log_aktivitas/service"
	userModel "tahfidz_backend/internals/features/users/user/model"
	userService "tahfidz_backend/internals/features/users/user/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/repositories"
	"tahfidz_backend/internals/store"
)

type AuthService struct {
	tables *repositories.Tables
	tokens *TokenIssuer
	audit  *logService.LogAktivitasService
	log    *zap.Logger
}

func NewAuthService(tables *repositories.Tables, tokens *TokenIssuer, audit *logService.LogAktivitasService, log *zap.Logger) *AuthService {
	return &AuthService{tables: tables, tokens: tokens, audit: audit, log: log}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      userModel.UserModel
}

// Login hanya berhasil untuk user aktif dengan password cocok. Semua bentuk
// kegagalan mengembalikan ErrInvalidCredentials dan tidak menulis apa pun.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return LoginResult{}, helper.ErrInvalidCredentials
	}

	u, err := store.First(ctx, s.tables.Users, store.Eq{Column: "username", Value: username})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, helper.ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("cari user: %w", err)
	}
	if !u.IsActive || !userService.CheckPassword(u.PasswordHash, password) {
		return LoginResult{}, helper.ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(u)
	if err != nil {
		return LoginResult{}, err
	}
	s.audit.Record(ctx, u.ID, "login", map[string]any{"username": u.Username})
	return LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// Logout mem-blacklist token sampai exp-nya.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	claims, userID, err := s.tokens.Parse(raw)
	if err != nil {
		return helper.ErrInvalidCredentials
	}
	_, err = s.tables.TokenBlacklist.Create(ctx, authModel.TokenBlacklist{
		Token:     s.tokens.Fingerprint(raw),
		ExpiredAt: claims.ExpiresAt.Time.UTC(),
	})
	if err != nil && !errors.Is(err, store.ErrConflict) {
		return fmt.Errorf("simpan blacklist: %w", err)
	}
	s.audit.Record(ctx, userID, "logout", nil)
	return nil
}

// VerifyToken dipakai middleware auth. Role diambil dari data user terkini,
// bukan dari klaim token.
func (s *AuthService) VerifyToken(ctx context.Context, raw string) (helper.Actor, error) {
	blacklisted, err := store.Exists(ctx, s.tables.TokenBlacklist, store.Eq{Column: "token", Value: s.tokens.Fingerprint(raw)})
	if err != nil {
		return helper.Actor{}, fmt.Errorf("cek blacklist: %w", err)
	}
	if blacklisted {
		return helper.Actor{}, fmt.Errorf("token sudah logout: %w", helper.ErrInvalidCredentials)
	}

	_, userID, err := s.tokens.Parse(raw)
	if err != nil {
		return helper.Actor{}, fmt.Errorf("%v: %w", err, helper.ErrInvalidCredentials)
	}

	u, err := s.tables.Users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return helper.Actor{}, fmt.Errorf("user tidak ada: %w", helper.ErrInvalidCredentials)
		}
		return helper.Actor{}, err
	}
	if !u.IsActive {
		return helper.Actor{}, helper.ErrForbidden
	}
	return helper.Actor{ID: u.ID, Role: u.Role, Nama: u.Nama}, nil
}

func (s *AuthService) Me(ctx context.Context, actor helper.Actor) (userModel.UserModel, error) {
	return s.tables.Users.Get(ctx, actor.ID)
}

// CleanupBlacklist menghapus token yang exp-nya lebih tua dari ttl.
func (s *AuthService) CleanupBlacklist(ctx context.Context, ttl time.Duration) (int, error) {
	deleteBefore := time.Now().UTC().Add(-ttl)
	n, err := s.tables.TokenBlacklist.DeleteWhere(ctx, store.Query{
		Before: []store.Lt{{Column: "expired_at", Value: deleteBefore}},
	})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
