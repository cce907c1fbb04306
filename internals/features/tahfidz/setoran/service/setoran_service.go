package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/tahfidz/scope"
	"tahfidz_backend/internals/features/tahfidz/setoran/dto"
	"tahfidz_backend/internals/features/tahfidz/setoran/model"
	logService "tahfidz_backend/internals/features/users/log_aktivitas/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/repositories"
	"tahfidz_backend/internals/store"
)

const tableSetoran = "setoran"

type SetoranService struct {
	tables *repositories.Tables
	rule   constants.ThresholdRule
	audit  *logService.LogAktivitasService
	log    *zap.Logger
}

func NewSetoranService(tables *repositories.Tables, thresholds map[string]constants.ThresholdRule, audit *logService.LogAktivitasService, log *zap.Logger) *SetoranService {
	rule, ok := thresholds[constants.RuleSetoran]
	if !ok {
		rule = constants.DefaultThresholds()[constants.RuleSetoran]
	}
	return &SetoranService{tables: tables, rule: rule, audit: audit, log: log}
}

type ListFilter struct {
	SantriID  *uuid.UUID
	AsatidzID *uuid.UUID
	Status    string
	Tanggal   *datatypes.Date
}

func (s *SetoranService) List(ctx context.Context, actor helper.Actor, f ListFilter, q store.Query) ([]dto.SetoranResponse, int64, error) {
	sc, err := scope.Resolve(ctx, s.tables, actor)
	if err != nil {
		return nil, 0, err
	}
	q.In = append(q.In, sc.SantriIn("id_santri")...)
	if f.SantriID != nil {
		q.Filters = append(q.Filters, store.Eq{Column: "id_santri", Value: *f.SantriID})
	}
	if f.AsatidzID != nil {
		q.Filters = append(q.Filters, store.Eq{Column: "id_asatidz", Value: *f.AsatidzID})
	}
	if f.Status != "" {
		q.Filters = append(q.Filters, store.Eq{Column: "status", Value: f.Status})
	}
	if f.Tanggal != nil {
		q.Filters = append(q.Filters, store.Eq{Column: "tanggal", Value: *f.Tanggal})
	}

	rows, total, err := s.tables.Setoran.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return s.toResponses(ctx, rows), total, nil
}

func (s *SetoranService) Get(ctx context.Context, actor helper.Actor, id uuid.UUID) (dto.SetoranResponse, error) {
	m, err := s.load(ctx, actor, id)
	if err != nil {
		return dto.SetoranResponse{}, err
	}
	return s.toResponses(ctx, []model.SetoranModel{m})[0], nil
}

// load mengambil setoran dan memastikan santrinya dalam scope actor.
func (s *SetoranService) load(ctx context.Context, actor helper.Actor, id uuid.UUID) (model.SetoranModel, error) {
	m, err := s.tables.Setoran.Get(ctx, id)
	if err != nil {
		return model.SetoranModel{}, err
	}
	sc, err := scope.Resolve(ctx, s.tables, actor)
	if err != nil {
		return model.SetoranModel{}, err
	}
	if !sc.HasSantri(m.SantriID) {
		return model.SetoranModel{}, helper.ErrForbidden
	}
	return m, nil
}

func (s *SetoranService) toResponses(ctx context.Context, rows []model.SetoranModel) []dto.SetoranResponse {
	names := map[uuid.UUID]string{}
	out := make([]dto.SetoranResponse, 0, len(rows))
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

// deriveStatus: status kosong diisi dari aturan ambang "setoran".
func (s *SetoranService) deriveStatus(m *model.SetoranModel) {
	if m.Status != "" {
		return
	}
	m.Status = s.rule.Label(s.rule.Score(m.RataRata(), m.NilaiKelancaran))
}

// resolveAsatidz: asatidz selalu tercatat sebagai dirinya sendiri; admin
// wajib menyebut asatidz penyimak.
func resolveAsatidz(ctx context.Context, t *repositories.Tables, actor helper.Actor, requested *uuid.UUID) (uuid.UUID, error) {
	if actor.Role == constants.RoleAsatidz {
		if requested != nil && *requested != actor.ID {
			return uuid.Nil, helper.ErrForbidden
		}
		return actor.ID, nil
	}
	if requested == nil || *requested == uuid.Nil {
		return uuid.Nil, helper.RefMissing("id_asatidz", "asatidz penyimak wajib diisi")
	}
	if err := scope.RequireUser(ctx, t, *requested, constants.RoleAsatidz, "id_asatidz"); err != nil {
		return uuid.Nil, err
	}
	return *requested, nil
}

func (s *SetoranService) Create(ctx context.Context, actor helper.Actor, req dto.CreateSetoranRequest) (dto.SetoranResponse, error) {
	sc, err := scope.Resolve(ctx, s.tables, actor)
	if err != nil {
		return dto.SetoranResponse{}, err
	}
	if err := scope.RequireSantri(ctx, s.tables, sc, req.SantriID); err != nil {
		return dto.SetoranResponse{}, err
	}
	asatidzID, err := resolveAsatidz(ctx, s.tables, actor, req.AsatidzID)
	if err != nil {
		return dto.SetoranResponse{}, err
	}

	m := req.ToModel()
	m.AsatidzID = asatidzID
	s.deriveStatus(&m)

	created, err := s.tables.Setoran.Create(ctx, m)
	if err != nil {
		return dto.SetoranResponse{}, fmt.Errorf("simpan setoran: %w", err)
	}
	s.audit.Mutation(ctx, actor.ID, tableSetoran, logService.OpCreate, created.ID, dto.FromModel(created, ""))
	return s.toResponses(ctx, []model.SetoranModel{created})[0], nil
}

func (s *SetoranService) Update(ctx context.Context, actor helper.Actor, id uuid.UUID, req dto.UpdateSetoranRequest) (dto.SetoranResponse, error) {
	m, err := s.load(ctx, actor, id)
	if err != nil {
		return dto.SetoranResponse{}, err
	}
	req.ApplyToModel(&m)
	if m.AyatSelesai < m.AyatMulai {
		return dto.SetoranResponse{}, helper.InvalidState("ayat_selesai", "ayat selesai harus >= ayat mulai")
	}
	// nilai berubah tanpa status eksplisit: status dihitung ulang
	if req.ScoresChanged() && req.Status == nil {
		m.Status = ""
		s.deriveStatus(&m)
	}

	updated, err := s.tables.Setoran.Update(ctx, m)
	if err != nil {
		return dto.SetoranResponse{}, fmt.Errorf("update setoran: %w", err)
	}
	s.audit.Mutation(ctx, actor.ID, tableSetoran, logService.OpUpdate, updated.ID, dto.FromModel(updated, ""))
	return s.toResponses(ctx, []model.SetoranModel{updated})[0], nil
}

func (s *SetoranService) Delete(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	if _, err := s.load(ctx, actor, id); err != nil {
		return err
	}
	if err := s.tables.Setoran.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return fmt.Errorf("hapus setoran: %w", err)
	}
	s.audit.Mutation(ctx, actor.ID, tableSetoran, logService.OpDelete, id, nil)
	return nil
}
