package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tahfidz_backend/internals/features/tahfidz/kelas/dto"
	"tahfidz_backend/internals/features/tahfidz/kelas/model"
	logService "tahfidz_backend/internals/features/users/log_aktivitas/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/repositories"
	"tahfidz_backend/internals/store"
)

const tableKelas = "kelas"

type KelasService struct {
	tables *repositories.Tables
	audit  *logService.LogAktivitasService
	log    *zap.Logger
}

func NewKelasService(tables *repositories.Tables, audit *logService.LogAktivitasService, log *zap.Logger) *KelasService {
	return &KelasService{tables: tables, audit: audit, log: log}
}

type ListFilter struct {
	Kategori string
	Program  string
}

func (s *KelasService) List(ctx context.Context, f ListFilter, q store.Query) ([]dto.KelasResponse, int64, error) {
	if f.Kategori != "" {
		q.Filters = append(q.Filters, store.Eq{Column: "kategori", Value: f.Kategori})
	}
	if f.Program != "" {
		q.Filters = append(q.Filters, store.Eq{Column: "program", Value: f.Program})
	}
	rows, total, err := s.tables.Kelas.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.KelasResponse, 0, len(rows))
	for _, k := range rows {
		r, err := s.withCount(ctx, k)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	return out, total, nil
}

func (s *KelasService) Get(ctx context.Context, id uuid.UUID) (dto.KelasResponse, error) {
	k, err := s.tables.Kelas.Get(ctx, id)
	if err != nil {
		return dto.KelasResponse{}, err
	}
	return s.withCount(ctx, k)
}

func (s *KelasService) withCount(ctx context.Context, k model.KelasModel) (dto.KelasResponse, error) {
	n, err := s.tables.Santri.Count(ctx, store.Eq{Column: "id_kelas", Value: k.ID})
	if err != nil {
		return dto.KelasResponse{}, fmt.Errorf("hitung santri: %w", err)
	}
	return dto.FromModel(k, n), nil
}

func (s *KelasService) Create(ctx context.Context, actor helper.Actor, req dto.CreateKelasRequest) (dto.KelasResponse, error) {
	created, err := s.tables.Kelas.Create(ctx, req.ToModel())
	if err != nil {
		return dto.KelasResponse{}, fmt.Errorf("simpan kelas: %w", err)
	}
	s.audit.Mutation(ctx, actor.ID, tableKelas, logService.OpCreate, created.ID, created)
	return dto.FromModel(created, 0), nil
}

func (s *KelasService) Update(ctx context.Context, actor helper.Actor, id uuid.UUID, req dto.UpdateKelasRequest) (dto.KelasResponse, error) {
	k, err := s.tables.Kelas.Get(ctx, id)
	if err != nil {
		return dto.KelasResponse{}, err
	}
	req.ApplyToModel(&k)
	updated, err := s.tables.Kelas.Update(ctx, k)
	if err != nil {
		return dto.KelasResponse{}, fmt.Errorf("update kelas: %w", err)
	}
	s.audit.Mutation(ctx, actor.ID, tableKelas, logService.OpUpdate, updated.ID, updated)
	return s.withCount(ctx, updated)
}

// Delete ditolak selama masih ada santri di kelas ini.
func (s *KelasService) Delete(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	if _, err := s.tables.Kelas.Get(ctx, id); err != nil {
		return err
	}
	used, err := store.Exists(ctx, s.tables.Santri, store.Eq{Column: "id_kelas", Value: id})
	if err != nil {
		return err
	}
	if used {
		return fmt.Errorf("kelas masih memiliki santri: %w", helper.ErrInUse)
	}
	if err := s.tables.Kelas.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Mutation(ctx, actor.ID, tableKelas, logService.OpDelete, id, nil)
	return nil
}
