package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/tahfidz/absensi/dto"
	"tahfidz_backend/internals/features/tahfidz/absensi/model"
	"tahfidz_backend/internals/features/tahfidz/scope"
	logService "tahfidz_backend/internals/features/users/log_aktivitas/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/helpers/dbtime"
	"tahfidz_backend/internals/repositories"
	"tahfidz_backend/internals/store"
)

const tableAbsensi = "absensi"

var errDuplicate = helper.Duplicate("tanggal", "absensi santri pada tanggal ini sudah ada")

type AbsensiService struct {
	tables *repositories.Tables
	audit  *logService.LogAktivitasService
	log    *zap.Logger
}

func NewAbsensiService(tables *repositories.Tables, audit *logService.LogAktivitasService, log *zap.Logger) *AbsensiService {
	return &AbsensiService{tables: tables, audit: audit, log: log}
}

type ListFilter struct {
	SantriID *uuid.UUID
	Tanggal  *datatypes.Date
	Status   string
}

func (s *AbsensiService) List(ctx context.Context, actor helper.Actor, f ListFilter, q store.Query) ([]dto.AbsensiResponse, int64, error) {
	sc, err := scope.Resolve(ctx, s.tables, actor)
	if err != nil {
		return nil, 0, err
	}
	q.In = append(q.In, sc.SantriIn("id_santri")...)
	if f.SantriID != nil {
		q.Filters = append(q.Filters, store.Eq{Column: "id_santri", Value: *f.SantriID})
	}
	if f.Tanggal != nil {
		q.Filters = append(q.Filters, store.Eq{Column: "tanggal", Value: *f.Tanggal})
	}
	if f.Status != "" {
		q.Filters = append(q.Filters, store.Eq{Column: "status", Value: f.Status})
	}

	rows, total, err := s.tables.Absensi.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return s.toResponses(ctx, rows), total, nil
}

func (s *AbsensiService) Get(ctx context.Context, actor helper.Actor, id uuid.UUID) (dto.AbsensiResponse, error) {
	m, err := s.load(ctx, actor, id)
	if err != nil {
		return dto.AbsensiResponse{}, err
	}
	return s.toResponses(ctx, []model.AbsensiModel{m})[0], nil
}

func (s *AbsensiService) load(ctx context.Context, actor helper.Actor, id uuid.UUID) (model.AbsensiModel, error) {
	m, err := s.tables.Absensi.Get(ctx, id)
	if err != nil {
		return model.AbsensiModel{}, err
	}
	sc, err := scope.Resolve(ctx, s.tables, actor)
	if err != nil {
		return model.AbsensiModel{}, err
	}
	if !sc.HasSantri(m.SantriID) {
		return model.AbsensiModel{}, helper.ErrForbidden
	}
	return m, nil
}

func (s *AbsensiService) toResponses(ctx context.Context, rows []model.AbsensiModel) []dto.AbsensiResponse {
	names := map[uuid.UUID]string{}
	out := make([]dto.AbsensiResponse, 0, len(rows))
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

func (s *AbsensiService) Create(ctx context.Context, actor helper.Actor, req dto.CreateAbsensiRequest) (dto.AbsensiResponse, error) {
	sc, err := scope.Resolve(ctx, s.tables, actor)
	if err != nil {
		return dto.AbsensiResponse{}, err
	}
	if err := scope.RequireSantri(ctx, s.tables, sc, req.SantriID); err != nil {
		return dto.AbsensiResponse{}, err
	}

	created, err := s.tables.Absensi.Create(ctx, req.ToModel())
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return dto.AbsensiResponse{}, errDuplicate
		}
		return dto.AbsensiResponse{}, fmt.Errorf("simpan absensi: %w", err)
	}
	s.audit.Mutation(ctx, actor.ID, tableAbsensi, logService.OpCreate, created.ID, dto.FromModel(created, ""))
	return s.toResponses(ctx, []model.AbsensiModel{created})[0], nil
}

// Bulk mengisi absensi banyak santri untuk satu tanggal. Semua santri dicek
// dulu; baru setelah lolos semua record ditulis.
func (s *AbsensiService) Bulk(ctx context.Context, actor helper.Actor, req dto.BulkAbsensiRequest) ([]dto.AbsensiResponse, error) {
	sc, err := scope.Resolve(ctx, s.tables, actor)
	if err != nil {
		return nil, err
	}
	tanggal := dbtime.Today()
	if req.Tanggal != "" {
		if tanggal, err = dbtime.ParseDate(req.Tanggal); err != nil {
			return nil, helper.InvalidState("tanggal", "format tanggal harus YYYY-MM-DD")
		}
	}
	seen := make(map[uuid.UUID]bool, len(req.Items))
	for _, it := range req.Items {
		if seen[it.SantriID] {
			return nil, helper.Duplicate("items", "santri yang sama muncul lebih dari sekali")
		}
		seen[it.SantriID] = true
		if err := scope.RequireSantri(ctx, s.tables, sc, it.SantriID); err != nil {
			return nil, err
		}
	}

	out := make([]model.AbsensiModel, 0, len(req.Items))
	for _, it := range req.Items {
		existing, err := store.First(ctx, s.tables.Absensi,
			store.Eq{Column: "id_santri", Value: it.SantriID},
			store.Eq{Column: "tanggal", Value: tanggal},
		)
		switch {
		case err == nil:
			existing.Status, existing.Keterangan = it.Status, it.Keterangan
			updated, err := s.tables.Absensi.Update(ctx, existing)
			if err != nil {
				return nil, fmt.Errorf("update absensi: %w", err)
			}
			s.audit.Mutation(ctx, actor.ID, tableAbsensi, logService.OpUpdate, updated.ID, dto.FromModel(updated, ""))
			out = append(out, updated)
		case errors.Is(err, store.ErrNotFound):
			created, err := s.tables.Absensi.Create(ctx, model.AbsensiModel{
				SantriID:   it.SantriID,
				Tanggal:    tanggal,
				Status:     it.Status,
				Keterangan: it.Keterangan,
			})
			if err != nil {
				return nil, fmt.Errorf("simpan absensi: %w", err)
			}
			s.audit.Mutation(ctx, actor.ID, tableAbsensi, logService.OpCreate, created.ID, dto.FromModel(created, ""))
			out = append(out, created)
		default:
			return nil, err
		}
	}
	s.log.Debug("absensi bulk", zap.Int("jumlah", len(out)), zap.String("tanggal", dbtime.FormatDate(tanggal)))
	return s.toResponses(ctx, out), nil
}

func (s *AbsensiService) Update(ctx context.Context, actor helper.Actor, id uuid.UUID, req dto.UpdateAbsensiRequest) (dto.AbsensiResponse, error) {
	m, err := s.load(ctx, actor, id)
	if err != nil {
		return dto.AbsensiResponse{}, err
	}
	req.ApplyToModel(&m)
	updated, err := s.tables.Absensi.Update(ctx, m)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return dto.AbsensiResponse{}, errDuplicate
		}
		return dto.AbsensiResponse{}, fmt.Errorf("update absensi: %w", err)
	}
	s.audit.Mutation(ctx, actor.ID, tableAbsensi, logService.OpUpdate, updated.ID, dto.FromModel(updated, ""))
	return s.toResponses(ctx, []model.AbsensiModel{updated})[0], nil
}

func (s *AbsensiService) Delete(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	if _, err := s.load(ctx, actor, id); err != nil {
		return err
	}
	if err := s.tables.Absensi.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Mutation(ctx, actor.ID, tableAbsensi, logService.OpDelete, id, nil)
	return nil
}

// Rekap menghitung absensi per status pada satu tanggal untuk santri aktif
// dalam scope actor, opsional dibatasi satu halaqoh.
func (s *AbsensiService) Rekap(ctx context.Context, actor helper.Actor, tanggal datatypes.Date, halaqohID *uuid.UUID) (dto.RekapResponse, error) {
	sc, err := scope.Resolve(ctx, s.tables, actor)
	if err != nil {
		return dto.RekapResponse{}, err
	}
	if halaqohID != nil && !sc.HasHalaqoh(*halaqohID) {
		return dto.RekapResponse{}, helper.ErrForbidden
	}

	sq := store.Where(store.Eq{Column: "status", Value: constants.SantriAktif})
	if halaqohID != nil {
		sq.Filters = append(sq.Filters, store.Eq{Column: "id_halaqoh", Value: *halaqohID})
	}
	sq.In = sc.SantriIn("id")
	santri, _, err := s.tables.Santri.List(ctx, sq)
	if err != nil {
		return dto.RekapResponse{}, err
	}
	ids := make([]uuid.UUID, 0, len(santri))
	for _, r := range santri {
		ids = append(ids, r.ID)
	}

	rows, _, err := s.tables.Absensi.List(ctx, store.Query{
		Filters: []store.Eq{{Column: "tanggal", Value: tanggal}},
		In:      []store.In{scope.InIDs("id_santri", ids)},
	})
	if err != nil {
		return dto.RekapResponse{}, err
	}

	out := dto.RekapResponse{
		Tanggal:      dbtime.FormatDate(tanggal),
		HalaqohID:    halaqohID,
		JumlahSantri: int64(len(ids)),
		PerStatus:    make(map[string]int64, len(constants.AbsensiStatuses)),
	}
	for _, st := range constants.AbsensiStatuses {
		out.PerStatus[st] = 0
	}
	for _, r := range rows {
		out.PerStatus[r.Status]++
	}
	out.BelumDiisi = max(out.JumlahSantri-int64(len(rows)), 0)
	return out, nil
}
