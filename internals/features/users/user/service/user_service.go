package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tahfidz_backend/internals/constants"
	logService "tahfidz_backend/internals/features/users/log_aktivitas/service"
	"tahfidz_backend/internals/features/users/user/dto"
	"tahfidz_backend/internals/features/users/user/model"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/repositories"
	"tahfidz_backend/internals/store"
)

const tableUsers = "users"

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

type UserService struct {
	tables *repositories.Tables
	audit  *logService.LogAktivitasService
	log    *zap.Logger
}

func NewUserService(tables *repositories.Tables, audit *logService.LogAktivitasService, log *zap.Logger) *UserService {
	return &UserService{tables: tables, audit: audit, log: log}
}

type ListFilter struct {
	Role     string
	IsActive *bool
}

func (s *UserService) List(ctx context.Context, f ListFilter, q store.Query) ([]model.UserModel, int64, error) {
	if f.Role != "" {
		q.Filters = append(q.Filters, store.Eq{Column: "role", Value: f.Role})
	}
	if f.IsActive != nil {
		q.Filters = append(q.Filters, store.Eq{Column: "is_active", Value: *f.IsActive})
	}
	return s.tables.Users.List(ctx, q)
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (model.UserModel, error) {
	return s.tables.Users.Get(ctx, id)
}

// ListAsatidz: pilihan pembina untuk form halaqoh (hanya yang aktif).
func (s *UserService) ListAsatidz(ctx context.Context) ([]model.UserModel, error) {
	rows, _, err := s.tables.Users.List(ctx, store.Where(
		store.Eq{Column: "role", Value: constants.RoleAsatidz},
		store.Eq{Column: "is_active", Value: true},
	))
	return rows, err
}

func (s *UserService) Create(ctx context.Context, actor helper.Actor, req dto.CreateUserRequest) (model.UserModel, error) {
	m := req.ToModel()
	hash, err := HashPassword(req.Password)
	if err != nil {
		return model.UserModel{}, fmt.Errorf("hash password: %w", err)
	}
	m.PasswordHash = hash

	created, err := s.tables.Users.Create(ctx, m)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return model.UserModel{}, helper.Duplicate("username", "username sudah dipakai")
		}
		return model.UserModel{}, fmt.Errorf("simpan user: %w", err)
	}
	s.audit.Mutation(ctx, actor.ID, tableUsers, logService.OpCreate, created.ID, dto.FromModel(created))
	return created, nil
}

func (s *UserService) Update(ctx context.Context, actor helper.Actor, id uuid.UUID, req dto.UpdateUserRequest) (model.UserModel, error) {
	m, err := s.tables.Users.Get(ctx, id)
	if err != nil {
		return model.UserModel{}, err
	}
	before := m
	req.ApplyToModel(&m)

	// admin tidak boleh mengunci dirinya sendiri
	if id == actor.ID && (m.Role != constants.RoleAdmin || !m.IsActive) {
		return model.UserModel{}, helper.InvalidState("role", "tidak bisa menurunkan role atau menonaktifkan akun sendiri")
	}
	if before.Role == constants.RoleAsatidz && m.Role != constants.RoleAsatidz {
		leads, err := store.Exists(ctx, s.tables.Halaqoh, store.Eq{Column: "id_asatidz", Value: id})
		if err != nil {
			return model.UserModel{}, err
		}
		if leads {
			return model.UserModel{}, helper.InvalidState("role", "user masih membina halaqoh")
		}
	}
	if before.Role == constants.RoleWaliSantri && m.Role != constants.RoleWaliSantri {
		guards, err := store.Exists(ctx, s.tables.Santri, store.Eq{Column: "id_wali", Value: id})
		if err != nil {
			return model.UserModel{}, err
		}
		if guards {
			return model.UserModel{}, helper.InvalidState("role", "user masih menjadi wali santri")
		}
	}
	if req.Password != nil {
		if m.PasswordHash, err = HashPassword(*req.Password); err != nil {
			return model.UserModel{}, fmt.Errorf("hash password: %w", err)
		}
	}

	updated, err := s.tables.Users.Update(ctx, m)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return model.UserModel{}, helper.Duplicate("username", "username sudah dipakai")
		}
		return model.UserModel{}, fmt.Errorf("update user: %w", err)
	}
	s.audit.Mutation(ctx, actor.ID, tableUsers, logService.OpUpdate, updated.ID, dto.FromModel(updated))
	return updated, nil
}

// Delete ditolak selama user masih menjadi pembina halaqoh atau wali santri.
func (s *UserService) Delete(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	if id == actor.ID {
		return helper.InvalidState("id", "tidak bisa menghapus akun sendiri")
	}
	if _, err := s.tables.Users.Get(ctx, id); err != nil {
		return err
	}

	leads, err := store.Exists(ctx, s.tables.Halaqoh, store.Eq{Column: "id_asatidz", Value: id})
	if err != nil {
		return err
	}
	if leads {
		return fmt.Errorf("user masih membina halaqoh: %w", helper.ErrInUse)
	}
	guards, err := store.Exists(ctx, s.tables.Santri, store.Eq{Column: "id_wali", Value: id})
	if err != nil {
		return err
	}
	if guards {
		return fmt.Errorf("user masih menjadi wali santri: %w", helper.ErrInUse)
	}

	if err := s.tables.Users.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Mutation(ctx, actor.ID, tableUsers, logService.OpDelete, id, nil)
	return nil
}

// EnsureAdmin membuat akun admin awal bila tabel users masih kosong.
// Dipanggil saat boot; no-op bila sudah ada user.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	n, err := s.tables.Users.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	req := dto.CreateUserRequest{Username: username, Nama: "Administrator", Password: password, Role: constants.RoleAdmin}
	req.Normalize()
	if _, err := s.Create(ctx, helper.Actor{ID: uuid.Nil, Role: constants.RoleAdmin}, req); err != nil {
		return false, err
	}
	s.log.Info("👤 Admin awal dibuat", zap.String("username", req.Username))
	return true, nil
}
