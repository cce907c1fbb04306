package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tahfidz_backend/internals/features/home/pengumuman/dto"
	"tahfidz_backend/internals/features/home/pengumuman/model"
	logService "tahfidz_backend/internals/features/users/log_aktivitas/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/helpers/dbtime"
	"tahfidz_backend/internals/repositories"
	"tahfidz_backend/internals/store"
)

const (
	tablePengumuman = "pengumuman"
	slugMaxLen      = 200
)

type PengumumanService struct {
	tables *repositories.Tables
	audit  *logService.LogAktivitasService
	log    *zap.Logger
}

func NewPengumumanService(tables *repositories.Tables, audit *logService.LogAktivitasService, log *zap.Logger) *PengumumanService {
	return &PengumumanService{tables: tables, audit: audit, log: log}
}

// visible: admin melihat semua (termasuk terjadwal); role lain hanya yang
// sudah terbit dan ditujukan ke role-nya.
func visible(actor helper.Actor, m model.PengumumanModel, today time.Time) bool {
	if actor.IsAdmin() {
		return true
	}
	return m.VisibleTo(actor.Role) && !time.Time(m.TanggalTerbit).After(today)
}

// List: untuk non-admin target_roles disaring di memori, jadi paging
// dilakukan setelah penyaringan.
func (s *PengumumanService) List(ctx context.Context, actor helper.Actor, kategori string, q store.Query) ([]dto.PengumumanResponse, int64, error) {
	if kategori != "" {
		q.Filters = append(q.Filters, store.Eq{Column: "kategori", Value: kategori})
	}
	if actor.IsAdmin() {
		rows, total, err := s.tables.Pengumuman.List(ctx, q)
		if err != nil {
			return nil, 0, err
		}
		return s.toResponses(ctx, rows), total, nil
	}

	limit, offset := q.Limit, q.Offset
	q.Limit, q.Offset = 0, 0
	rows, _, err := s.tables.Pengumuman.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	today := time.Time(dbtime.Today())
	kept := rows[:0]
	for _, m := range rows {
		if visible(actor, m, today) {
			kept = append(kept, m)
		}
	}
	total := int64(len(kept))
	if offset < 0 {
		offset = 0
	}
	if offset >= len(kept) {
		kept = nil
	} else {
		kept = kept[offset:]
	}
	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return s.toResponses(ctx, kept), total, nil
}

func (s *PengumumanService) Get(ctx context.Context, actor helper.Actor, id uuid.UUID) (dto.PengumumanResponse, error) {
	m, err := s.tables.Pengumuman.Get(ctx, id)
	if err != nil {
		return dto.PengumumanResponse{}, err
	}
	return s.checkVisible(ctx, actor, m)
}

func (s *PengumumanService) GetBySlug(ctx context.Context, actor helper.Actor, slug string) (dto.PengumumanResponse, error) {
	m, err := store.First(ctx, s.tables.Pengumuman, store.Eq{Column: "slug", Value: slug})
	if err != nil {
		return dto.PengumumanResponse{}, err
	}
	return s.checkVisible(ctx, actor, m)
}

// checkVisible: pengumuman yang tidak ditujukan ke actor dianggap tidak ada.
func (s *PengumumanService) checkVisible(ctx context.Context, actor helper.Actor, m model.PengumumanModel) (dto.PengumumanResponse, error) {
	if !visible(actor, m, time.Time(dbtime.Today())) {
		return dto.PengumumanResponse{}, store.ErrNotFound
	}
	return s.toResponses(ctx, []model.PengumumanModel{m})[0], nil
}

func (s *PengumumanService) toResponses(ctx context.Context, rows []model.PengumumanModel) []dto.PengumumanResponse {
	names := map[uuid.UUID]string{}
	out := make([]dto.PengumumanResponse, 0, len(rows))
	for _, m := range rows {
		nama, ok := names[m.PenulisID]
		if !ok {
			if u, err := s.tables.Users.Get(ctx, m.PenulisID); err == nil {
				nama = u.Nama
			}
			names[m.PenulisID] = nama
		}
		out = append(out, dto.FromModel(m, nama))
	}
	return out
}

// slugFor membuat slug unik dari judul; self dikecualikan saat update.
func (s *PengumumanService) slugFor(ctx context.Context, judul string, self uuid.UUID) (string, error) {
	base := helper.Slugify(judul, slugMaxLen)
	return helper.UniqueSlug(ctx, base, slugMaxLen, func(ctx context.Context, slug string) (bool, error) {
		m, err := store.First(ctx, s.tables.Pengumuman, store.Eq{Column: "slug", Value: slug})
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return m.ID != self, nil
	})
}

func (s *PengumumanService) Create(ctx context.Context, actor helper.Actor, req dto.CreatePengumumanRequest) (dto.PengumumanResponse, error) {
	m := req.ToModel()
	m.PenulisID = actor.ID
	slug, err := s.slugFor(ctx, m.Judul, uuid.Nil)
	if err != nil {
		return dto.PengumumanResponse{}, err
	}
	m.Slug = slug

	created, err := s.tables.Pengumuman.Create(ctx, m)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return dto.PengumumanResponse{}, helper.Duplicate("judul", "slug pengumuman sudah dipakai")
		}
		return dto.PengumumanResponse{}, fmt.Errorf("simpan pengumuman: %w", err)
	}
	s.audit.Mutation(ctx, actor.ID, tablePengumuman, logService.OpCreate, created.ID, auditDetail(created))
	return s.toResponses(ctx, []model.PengumumanModel{created})[0], nil
}

func (s *PengumumanService) Update(ctx context.Context, actor helper.Actor, id uuid.UUID, req dto.UpdatePengumumanRequest) (dto.PengumumanResponse, error) {
	m, err := s.tables.Pengumuman.Get(ctx, id)
	if err != nil {
		return dto.PengumumanResponse{}, err
	}
	oldJudul := m.Judul
	req.ApplyToModel(&m)
	if m.Judul != oldJudul {
		if m.Slug, err = s.slugFor(ctx, m.Judul, m.ID); err != nil {
			return dto.PengumumanResponse{}, err
		}
	}

	updated, err := s.tables.Pengumuman.Update(ctx, m)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return dto.PengumumanResponse{}, helper.Duplicate("judul", "slug pengumuman sudah dipakai")
		}
		return dto.PengumumanResponse{}, fmt.Errorf("update pengumuman: %w", err)
	}
	s.audit.Mutation(ctx, actor.ID, tablePengumuman, logService.OpUpdate, updated.ID, auditDetail(updated))
	return s.toResponses(ctx, []model.PengumumanModel{updated})[0], nil
}

func (s *PengumumanService) Delete(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	if err := s.tables.Pengumuman.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Mutation(ctx, actor.ID, tablePengumuman, logService.OpDelete, id, nil)
	return nil
}

// auditDetail: detail log tanpa isi pengumuman.
func auditDetail(m model.PengumumanModel) map[string]any {
	return map[string]any{
		"judul":        m.Judul,
		"slug":         m.Slug,
		"kategori":     m.Kategori,
		"target_roles": []string(m.TargetRoles),
	}
}
