package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/tahfidz/santri/dto"
	"tahfidz_backend/internals/features/tahfidz/santri/model"
	"tahfidz_backend/internals/features/tahfidz/scope"
	logService "tahfidz_backend/internals/features/users/log_aktivitas/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/repositories"
	"tahfidz_backend/internals/store"
)

const tableSantri = "santri"

type SantriService struct {
	tables *repositories.Tables
	audit  *logService.LogAktivitasService
	log    *zap.Logger
}

func NewSantriService(tables *repositories.Tables, audit *logService.LogAktivitasService, log *zap.Logger) *SantriService {
	return &SantriService{tables: tables, audit: audit, log: log}
}

type ListFilter struct {
	HalaqohID *uuid.UUID
	KelasID   *uuid.UUID
	WaliID    *uuid.UUID
	Status    string
}

// List dibatasi scope actor: asatidz per halaqoh binaan, wali per anak.
func (s *SantriService) List(ctx context.Context, actor helper.Actor, f ListFilter, q store.Query) ([]dto.SantriResponse, int64, error) {
	switch actor.Role {
	case constants.RoleAdmin:
	case constants.RoleAsatidz:
		sc, err := scope.Resolve(ctx, s.tables, actor)
		if err != nil {
			return nil, 0, err
		}
		q.In = append(q.In, sc.HalaqohIn("id_halaqoh")...)
	case constants.RoleWaliSantri:
		q.Filters = append(q.Filters, store.Eq{Column: "id_wali", Value: actor.ID})
	default:
		return nil, 0, helper.ErrForbidden
	}

	if f.HalaqohID != nil {
		q.Filters = append(q.Filters, store.Eq{Column: "id_halaqoh", Value: *f.HalaqohID})
	}
	if f.KelasID != nil {
		q.Filters = append(q.Filters, store.Eq{Column: "id_kelas", Value: *f.KelasID})
	}
	if f.WaliID != nil {
		q.Filters = append(q.Filters, store.Eq{Column: "id_wali", Value: *f.WaliID})
	}
	if f.Status != "" {
		q.Filters = append(q.Filters, store.Eq{Column: "status", Value: f.Status})
	}

	rows, total, err := s.tables.Santri.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	out, err := s.toResponses(ctx, rows)
	return out, total, err
}

func (s *SantriService) Get(ctx context.Context, actor helper.Actor, id uuid.UUID) (dto.SantriResponse, error) {
	m, err := s.tables.Santri.Get(ctx, id)
	if err != nil {
		return dto.SantriResponse{}, err
	}
	sc, err := scope.Resolve(ctx, s.tables, actor)
	if err != nil {
		return dto.SantriResponse{}, err
	}
	if !sc.HasSantri(id) {
		return dto.SantriResponse{}, helper.ErrForbidden
	}
	out, err := s.toResponses(ctx, []model.SantriModel{m})
	if err != nil {
		return dto.SantriResponse{}, err
	}
	return out[0], nil
}

// toResponses menambah nama halaqoh & kelas; lookup di-cache per panggilan.
func (s *SantriService) toResponses(ctx context.Context, rows []model.SantriModel) ([]dto.SantriResponse, error) {
	halaqoh := map[uuid.UUID]string{}
	kelas := map[uuid.UUID]string{}
	out := make([]dto.SantriResponse, 0, len(rows))
	for _, m := range rows {
		r := dto.FromModel(m)
		if nama, ok := halaqoh[m.HalaqohID]; ok {
			r.NamaHalaqoh = nama
		} else if h, err := s.tables.Halaqoh.Get(ctx, m.HalaqohID); err == nil {
			halaqoh[m.HalaqohID], r.NamaHalaqoh = h.Nama, h.Nama
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if nama, ok := kelas[m.KelasID]; ok {
			r.NamaKelas = nama
		} else if k, err := s.tables.Kelas.Get(ctx, m.KelasID); err == nil {
			kelas[m.KelasID], r.NamaKelas = k.Nama, k.Nama
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// checkRefs: halaqoh & kelas wajib ada, wali (bila diisi) harus WaliSantri
// aktif. Saat update (prev != nil) hanya rujukan yang berubah yang dicek.
func (s *SantriService) checkRefs(ctx context.Context, m model.SantriModel, prev *model.SantriModel) error {
	if prev == nil || prev.HalaqohID != m.HalaqohID {
		if err := s.requireHalaqoh(ctx, m.HalaqohID); err != nil {
			return err
		}
	}
	if prev == nil || prev.KelasID != m.KelasID {
		if err := s.requireKelas(ctx, m.KelasID); err != nil {
			return err
		}
	}
	if m.WaliID != nil && (prev == nil || prev.WaliID == nil || *prev.WaliID != *m.WaliID) {
		return scope.RequireUser(ctx, s.tables, *m.WaliID, constants.RoleWaliSantri, "id_wali")
	}
	return nil
}

func (s *SantriService) requireHalaqoh(ctx context.Context, id uuid.UUID) error {
	if _, err := s.tables.Halaqoh.Get(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return helper.RefMissing("id_halaqoh", "halaqoh tidak ditemukan")
		}
		return err
	}
	return nil
}

func (s *SantriService) requireKelas(ctx context.Context, id uuid.UUID) error {
	if _, err := s.tables.Kelas.Get(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return helper.RefMissing("id_kelas", "kelas tidak ditemukan")
		}
		return err
	}
	return nil
}

func (s *SantriService) Create(ctx context.Context, actor helper.Actor, req dto.CreateSantriRequest) (dto.SantriResponse, error) {
	m := req.ToModel()
	if err := s.checkRefs(ctx, m, nil); err != nil {
		return dto.SantriResponse{}, err
	}
	created, err := s.tables.Santri.Create(ctx, m)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return dto.SantriResponse{}, helper.Duplicate("nis", "NIS sudah terdaftar")
		}
		return dto.SantriResponse{}, fmt.Errorf("simpan santri: %w", err)
	}
	s.audit.Mutation(ctx, actor.ID, tableSantri, logService.OpCreate, created.ID, dto.FromModel(created))
	out, err := s.toResponses(ctx, []model.SantriModel{created})
	if err != nil {
		return dto.SantriResponse{}, err
	}
	return out[0], nil
}

func (s *SantriService) Update(ctx context.Context, actor helper.Actor, id uuid.UUID, req dto.UpdateSantriRequest) (dto.SantriResponse, error) {
	m, err := s.tables.Santri.Get(ctx, id)
	if err != nil {
		return dto.SantriResponse{}, err
	}
	prev := m
	req.ApplyToModel(&m)
	if err := s.checkRefs(ctx, m, &prev); err != nil {
		return dto.SantriResponse{}, err
	}

	updated, err := s.tables.Santri.Update(ctx, m)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return dto.SantriResponse{}, helper.Duplicate("nis", "NIS sudah terdaftar")
		}
		return dto.SantriResponse{}, fmt.Errorf("update santri: %w", err)
	}
	s.audit.Mutation(ctx, actor.ID, tableSantri, logService.OpUpdate, updated.ID, dto.FromModel(updated))
	out, err := s.toResponses(ctx, []model.SantriModel{updated})
	if err != nil {
		return dto.SantriResponse{}, err
	}
	return out[0], nil
}

// Delete hanya menghapus record itu sendiri; ditolak bila masih punya
// riwayat setoran/absensi/penilaian/ujian.
func (s *SantriService) Delete(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	if _, err := s.tables.Santri.Get(ctx, id); err != nil {
		return err
	}
	ref := store.Eq{Column: "id_santri", Value: id}
	checks := []struct {
		name   string
		exists func() (bool, error)
	}{
		{"setoran", func() (bool, error) { return store.Exists(ctx, s.tables.Setoran, ref) }},
		{"absensi", func() (bool, error) { return store.Exists(ctx, s.tables.Absensi, ref) }},
		{"penilaian", func() (bool, error) { return store.Exists(ctx, s.tables.Penilaian, ref) }},
		{"ujian", func() (bool, error) { return store.Exists(ctx, s.tables.Ujian, ref) }},
	}
	for _, c := range checks {
		used, err := c.exists()
		if err != nil {
			return err
		}
		if used {
			return fmt.Errorf("santri masih memiliki data %s: %w", c.name, helper.ErrInUse)
		}
	}

	if err := s.tables.Santri.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Mutation(ctx, actor.ID, tableSantri, logService.OpDelete, id, nil)
	return nil
}
