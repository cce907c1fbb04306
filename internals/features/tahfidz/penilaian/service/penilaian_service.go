package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tahfidz_backend/internals/features/tahfidz/penilaian/dto"
	"tahfidz_backend/internals/features/tahfidz/penilaian/model"
	"tahfidz_backend/internals/features/tahfidz/scope"
	logService "tahfidz_backend/internals/features/users/log_aktivitas/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/repositories"
	"tahfidz_backend/internals/store"
)

const tablePenilaian = "penilaian"

type PenilaianService struct {
	tables *repositories.Tables
	audit  *logService.LogAktivitasService
	log    *zap.Logger
}

func NewPenilaianService(tables *repositories.Tables, audit *logService.LogAktivitasService, log *zap.Logger) *PenilaianService {
	return &PenilaianService{tables: tables, audit: audit, log: log}
}

type ListFilter struct {
	SantriID *uuid.UUID
	Periode  string
	Predikat string
}

func (s *PenilaianService) List(ctx context.Context, actor helper.Actor, f ListFilter, q store.Query) ([]dto.PenilaianResponse, int64, error) {
	sc, err := scope.Resolve(ctx, s.tables, actor)
	if err != nil {
		return nil, 0, err
	}
	q.In = append(q.In, sc.SantriIn("id_santri")...)
	if f.SantriID != nil {
		q.Filters = append(q.Filters, store.Eq{Column: "id_santri", Value: *f.SantriID})
	}
	if f.Periode != "" {
		q.Filters = append(q.Filters, store.Eq{Column: "periode", Value: f.Periode})
	}
	if f.Predikat != "" {
		q.Filters = append(q.Filters, store.Eq{Column: "predikat", Value: f.Predikat})
	}

	rows, total, err := s.tables.Penilaian.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return s.toResponses(ctx, rows), total, nil
}

func (s *PenilaianService) Get(ctx context.Context, actor helper.Actor, id uuid.UUID) (dto.PenilaianResponse, error) {
	m, err := s.load(ctx, actor, id)
	if err != nil {
		return dto.PenilaianResponse{}, err
	}
	return s.toResponses(ctx, []model.PenilaianModel{m})[0], nil
}

func (s *PenilaianService) load(ctx context.Context, actor helper.Actor, id uuid.UUID) (model.PenilaianModel, error) {
	m, err := s.tables.Penilaian.Get(ctx, id)
	if err != nil {
		return model.PenilaianModel{}, err
	}
	sc, err := scope.Resolve(ctx, s.tables, actor)
	if err != nil {
		return model.PenilaianModel{}, err
	}
	if !sc.HasSantri(m.SantriID) {
		return model.PenilaianModel{}, helper.ErrForbidden
	}
	return m, nil
}

func (s *PenilaianService) toResponses(ctx context.Context, rows []model.PenilaianModel) []dto.PenilaianResponse {
	names := map[uuid.UUID]string{}
	out := make([]dto.PenilaianResponse, 0, len(rows))
	for _, m := range rows {
		nama, ok := names[m.SantriID]
		if !ok {
			if sn, err := s.tables.Santri.Get(ctx, m.SantriID); err == nil {
				nama = sn.Nama
			}
			names[m.SantriID] = nama
		}
		out = append(out, dto.FromModel(m, nama))
	}
	return out
}

// Create: penilai dicatat sebagai actor.
func (s *PenilaianService) Create(ctx context.Context, actor helper.Actor, req dto.CreatePenilaianRequest) (dto.PenilaianResponse, error) {
	sc, err := scope.Resolve(ctx, s.tables, actor)
	if err != nil {
		return dto.PenilaianResponse{}, err
	}
	if err := scope.RequireSantri(ctx, s.tables, sc, req.SantriID); err != nil {
		return dto.PenilaianResponse{}, err
	}

	m := req.ToModel()
	m.PenilaiID = actor.ID
	m.Hitung()

	created, err := s.tables.Penilaian.Create(ctx, m)
	if err != nil {
		return dto.PenilaianResponse{}, fmt.Errorf("simpan penilaian: %w", err)
	}
	s.audit.Mutation(ctx, actor.ID, tablePenilaian, logService.OpCreate, created.ID, dto.FromModel(created, ""))
	return s.toResponses(ctx, []model.PenilaianModel{created})[0], nil
}

func (s *PenilaianService) Update(ctx context.Context, actor helper.Actor, id uuid.UUID, req dto.UpdatePenilaianRequest) (dto.PenilaianResponse, error) {
	m, err := s.load(ctx, actor, id)
	if err != nil {
		return dto.PenilaianResponse{}, err
	}
	req.ApplyToModel(&m)
	m.Hitung()

	updated, err := s.tables.Penilaian.Update(ctx, m)
	if err != nil {
		return dto.PenilaianResponse{}, fmt.Errorf("update penilaian: %w", err)
	}
	s.audit.Mutation(ctx, actor.ID, tablePenilaian, logService.OpUpdate, updated.ID, dto.FromModel(updated, ""))
	return s.toResponses(ctx, []model.PenilaianModel{updated})[0], nil
}

func (s *PenilaianService) Delete(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	if _, err := s.load(ctx, actor, id); err != nil {
		return err
	}
	if err := s.tables.Penilaian.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Mutation(ctx, actor.ID, tablePenilaian, logService.OpDelete, id, nil)
	return nil
}
