package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/tahfidz/halaqoh/dto"
	"tahfidz_backend/internals/features/tahfidz/halaqoh/model"
	"tahfidz_backend/internals/features/tahfidz/scope"
	logService "tahfidz_backend/internals/features/users/log_aktivitas/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/repositories"
	"tahfidz_backend/internals/store"
)

const tableHalaqoh = "halaqoh"

type HalaqohService struct {
	tables *repositories.Tables
	audit  *logService.LogAktivitasService
	log    *zap.Logger
}

func NewHalaqohService(tables *repositories.Tables, audit *logService.LogAktivitasService, log *zap.Logger) *HalaqohService {
	return &HalaqohService{tables: tables, audit: audit, log: log}
}

// List: admin melihat semua, asatidz hanya halaqoh yang dia bina.
func (s *HalaqohService) List(ctx context.Context, actor helper.Actor, asatidzID *uuid.UUID, q store.Query) ([]dto.HalaqohResponse, int64, error) {
	switch {
	case actor.IsAdmin():
		if asatidzID != nil {
			q.Filters = append(q.Filters, store.Eq{Column: "id_asatidz", Value: *asatidzID})
		}
	case actor.Role == constants.RoleAsatidz:
		q.Filters = append(q.Filters, store.Eq{Column: "id_asatidz", Value: actor.ID})
	default:
		return nil, 0, helper.ErrForbidden
	}

	rows, total, err := s.tables.Halaqoh.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.HalaqohResponse, 0, len(rows))
	for _, h := range rows {
		r, err := s.enrich(ctx, h)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	return out, total, nil
}

func (s *HalaqohService) Get(ctx context.Context, actor helper.Actor, id uuid.UUID) (dto.HalaqohResponse, error) {
	h, err := s.tables.Halaqoh.Get(ctx, id)
	if err != nil {
		return dto.HalaqohResponse{}, err
	}
	if !actor.IsAdmin() && h.AsatidzID != actor.ID {
		return dto.HalaqohResponse{}, helper.ErrForbidden
	}
	return s.enrich(ctx, h)
}

// enrich: nama asatidz + jumlah santri
func (s *HalaqohService) enrich(ctx context.Context, h model.HalaqohModel) (dto.HalaqohResponse, error) {
	n, err := s.tables.Santri.Count(ctx, store.Eq{Column: "id_halaqoh", Value: h.ID})
	if err != nil {
		return dto.HalaqohResponse{}, fmt.Errorf("hitung santri: %w", err)
	}
	nama := ""
	if u, err := s.tables.Users.Get(ctx, h.AsatidzID); err == nil {
		nama = u.Nama
	} else if !errors.Is(err, store.ErrNotFound) {
		return dto.HalaqohResponse{}, err
	}
	return dto.FromModel(h, nama, n), nil
}

func (s *HalaqohService) Create(ctx context.Context, actor helper.Actor, req dto.CreateHalaqohRequest) (dto.HalaqohResponse, error) {
	if err := scope.RequireUser(ctx, s.tables, req.AsatidzID, constants.RoleAsatidz, "id_asatidz"); err != nil {
		return dto.HalaqohResponse{}, err
	}
	created, err := s.tables.Halaqoh.Create(ctx, req.ToModel())
	if err != nil {
		return dto.HalaqohResponse{}, fmt.Errorf("simpan halaqoh: %w", err)
	}
	s.audit.Mutation(ctx, actor.ID, tableHalaqoh, logService.OpCreate, created.ID, created)
	return s.enrich(ctx, created)
}

func (s *HalaqohService) Update(ctx context.Context, actor helper.Actor, id uuid.UUID, req dto.UpdateHalaqohRequest) (dto.HalaqohResponse, error) {
	h, err := s.tables.Halaqoh.Get(ctx, id)
	if err != nil {
		return dto.HalaqohResponse{}, err
	}
	if req.AsatidzID != nil && *req.AsatidzID != h.AsatidzID {
		if err := scope.RequireUser(ctx, s.tables, *req.AsatidzID, constants.RoleAsatidz, "id_asatidz"); err != nil {
			return dto.HalaqohResponse{}, err
		}
	}
	req.ApplyToModel(&h)

	updated, err := s.tables.Halaqoh.Update(ctx, h)
	if err != nil {
		return dto.HalaqohResponse{}, fmt.Errorf("update halaqoh: %w", err)
	}
	s.audit.Mutation(ctx, actor.ID, tableHalaqoh, logService.OpUpdate, updated.ID, updated)
	return s.enrich(ctx, updated)
}

// Delete ditolak selama masih ada santri di halaqoh ini.
func (s *HalaqohService) Delete(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	if _, err := s.tables.Halaqoh.Get(ctx, id); err != nil {
		return err
	}
	used, err := store.Exists(ctx, s.tables.Santri, store.Eq{Column: "id_halaqoh", Value: id})
	if err != nil {
		return err
	}
	if used {
		return fmt.Errorf("halaqoh masih memiliki santri: %w", helper.ErrInUse)
	}
	if err := s.tables.Halaqoh.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Mutation(ctx, actor.ID, tableHalaqoh, logService.OpDelete, id, nil)
	return nil
}
