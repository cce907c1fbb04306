package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/tahfidz/scope"
	"tahfidz_backend/internals/features/tahfidz/ujian/dto"
	"tahfidz_backend/internals/features/tahfidz/ujian/model"
	logService "tahfidz_backend/internals/features/users/log_aktivitas/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/repositories"
	"tahfidz_backend/internals/store"
)

const tableUjian = "ujian"

var jenisUjian = []string{constants.UjianTahapan, constants.UjianManzil, constants.UjianTasmi}

type UjianService struct {
	tables     *repositories.Tables
	thresholds map[string]constants.ThresholdRule
	audit      *logService.LogAktivitasService
	log        *zap.Logger
}

// NewUjianService: aturan yang tidak ada di thresholds diisi default.
func NewUjianService(tables *repositories.Tables, thresholds map[string]constants.ThresholdRule, audit *logService.LogAktivitasService, log *zap.Logger) *UjianService {
	rules := constants.DefaultThresholds()
	for k, v := range thresholds {
		rules[k] = v
	}
	return &UjianService{tables: tables, thresholds: rules, audit: audit, log: log}
}

// Thresholds: tabel ambang yang sedang berlaku, urut nama aturan.
func (s *UjianService) Thresholds() []dto.ThresholdResponse {
	out := make([]dto.ThresholdResponse, 0, len(s.thresholds))
	for name, r := range s.thresholds {
		out = append(out, dto.ThresholdResponse{Rule: name, ThresholdRule: r})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rule < out[j].Rule })
	return out
}

type ListFilter struct {
	SantriID *uuid.UUID
	Jenis    string
	Tahap    int
	Lulus    *bool
}

func (s *UjianService) List(ctx context.Context, actor helper.Actor, f ListFilter, q store.Query) ([]dto.UjianResponse, int64, error) {
	sc, err := scope.Resolve(ctx, s.tables, actor)
	if err != nil {
		return nil, 0, err
	}
	q.In = append(q.In, sc.SantriIn("id_santri")...)
	if f.SantriID != nil {
		q.Filters = append(q.Filters, store.Eq{Column: "id_santri", Value: *f.SantriID})
	}
	if f.Jenis != "" {
		q.Filters = append(q.Filters, store.Eq{Column: "jenis", Value: f.Jenis})
	}
	if f.Tahap > 0 {
		q.Filters = append(q.Filters, store.Eq{Column: "tahap", Value: f.Tahap})
	}
	if f.Lulus != nil {
		q.Filters = append(q.Filters, store.Eq{Column: "lulus", Value: *f.Lulus})
	}

	rows, total, err := s.tables.Ujian.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return s.toResponses(ctx, rows), total, nil
}

func (s *UjianService) Get(ctx context.Context, actor helper.Actor, id uuid.UUID) (dto.UjianResponse, error) {
	m, err := s.load(ctx, actor, id)
	if err != nil {
		return dto.UjianResponse{}, err
	}
	return s.toResponses(ctx, []model.UjianModel{m})[0], nil
}

func (s *UjianService) load(ctx context.Context, actor helper.Actor, id uuid.UUID) (model.UjianModel, error) {
	m, err := s.tables.Ujian.Get(ctx, id)
	if err != nil {
		return model.UjianModel{}, err
	}
	sc, err := scope.Resolve(ctx, s.tables, actor)
	if err != nil {
		return model.UjianModel{}, err
	}
	if !sc.HasSantri(m.SantriID) {
		return model.UjianModel{}, helper.ErrForbidden
	}
	return m, nil
}

func (s *UjianService) toResponses(ctx context.Context, rows []model.UjianModel) []dto.UjianResponse {
	names := map[uuid.UUID]string{}
	out := make([]dto.UjianResponse, 0, len(rows))
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

func (s *UjianService) rule(jenis string) (constants.ThresholdRule, error) {
	r, ok := s.thresholds[jenis]
	if !ok {
		return constants.ThresholdRule{}, helper.InvalidState("jenis", "jenis ujian tidak dikenal")
	}
	return r, nil
}

// checkGate: tahap 1 selalu boleh; tahap n>1 hanya bila tahap n-1 jenis
// yang sama sudah lulus.
func (s *UjianService) checkGate(ctx context.Context, santriID uuid.UUID, jenis string, tahap int) error {
	if tahap <= 1 {
		return nil
	}
	passed, err := store.Exists(ctx, s.tables.Ujian,
		store.Eq{Column: "id_santri", Value: santriID},
		store.Eq{Column: "jenis", Value: jenis},
		store.Eq{Column: "tahap", Value: tahap - 1},
		store.Eq{Column: "lulus", Value: true},
	)
	if err != nil {
		return err
	}
	if !passed {
		return helper.InvalidState("tahap", fmt.Sprintf("santri belum lulus %s tahap %d", jenis, tahap-1))
	}
	return nil
}

func (s *UjianService) resolvePenguji(ctx context.Context, actor helper.Actor, requested *uuid.UUID) (uuid.UUID, error) {
	if requested == nil || *requested == uuid.Nil || *requested == actor.ID {
		return actor.ID, nil
	}
	if actor.Role != constants.RoleAdmin {
		return uuid.Nil, helper.ErrForbidden
	}
	if err := scope.RequireUser(ctx, s.tables, *requested, constants.RoleAsatidz, "id_penguji"); err != nil {
		return uuid.Nil, err
	}
	return *requested, nil
}

func (s *UjianService) Create(ctx context.Context, actor helper.Actor, req dto.CreateUjianRequest) (dto.UjianResponse, error) {
	sc, err := scope.Resolve(ctx, s.tables, actor)
	if err != nil {
		return dto.UjianResponse{}, err
	}
	if err := scope.RequireSantri(ctx, s.tables, sc, req.SantriID); err != nil {
		return dto.UjianResponse{}, err
	}
	rule, err := s.rule(req.Jenis)
	if err != nil {
		return dto.UjianResponse{}, err
	}
	if err := s.checkGate(ctx, req.SantriID, req.Jenis, req.Tahap); err != nil {
		return dto.UjianResponse{}, err
	}
	penguji, err := s.resolvePenguji(ctx, actor, req.PengujiID)
	if err != nil {
		return dto.UjianResponse{}, err
	}

	m := req.ToModel()
	m.PengujiID = penguji
	m.Nilai(rule)

	created, err := s.tables.Ujian.Create(ctx, m)
	if err != nil {
		return dto.UjianResponse{}, fmt.Errorf("simpan ujian: %w", err)
	}
	s.log.Info("📝 ujian tercatat",
		zap.String("santri", created.SantriID.String()),
		zap.String("jenis", created.Jenis),
		zap.Int("tahap", created.Tahap),
		zap.Bool("lulus", created.Lulus),
	)
	s.audit.Mutation(ctx, actor.ID, tableUjian, logService.OpCreate, created.ID, dto.FromModel(created, ""))
	return s.toResponses(ctx, []model.UjianModel{created})[0], nil
}

// Update menghitung ulang nilai akhir. Ujian yang sudah lulus tidak bisa
// diturunkan bila tahap berikutnya sudah tercatat.
func (s *UjianService) Update(ctx context.Context, actor helper.Actor, id uuid.UUID, req dto.UpdateUjianRequest) (dto.UjianResponse, error) {
	m, err := s.load(ctx, actor, id)
	if err != nil {
		return dto.UjianResponse{}, err
	}
	rule, err := s.rule(m.Jenis)
	if err != nil {
		return dto.UjianResponse{}, err
	}
	wasPassed := m.Lulus
	req.ApplyToModel(&m)
	m.Nilai(rule)
	if wasPassed && !m.Lulus {
		if err := s.ensureNoNextStage(ctx, m); err != nil {
			return dto.UjianResponse{}, err
		}
	}

	updated, err := s.tables.Ujian.Update(ctx, m)
	if err != nil {
		return dto.UjianResponse{}, fmt.Errorf("update ujian: %w", err)
	}
	s.audit.Mutation(ctx, actor.ID, tableUjian, logService.OpUpdate, updated.ID, dto.FromModel(updated, ""))
	return s.toResponses(ctx, []model.UjianModel{updated})[0], nil
}

// ensureNoNextStage dipanggil saat kelulusan m akan hilang: ditolak bila
// tahap n+1 sudah tercatat dan tidak ada ujian lulus lain di tahap n.
func (s *UjianService) ensureNoNextStage(ctx context.Context, m model.UjianModel) error {
	passed, _, err := s.tables.Ujian.List(ctx, store.Where(
		store.Eq{Column: "id_santri", Value: m.SantriID},
		store.Eq{Column: "jenis", Value: m.Jenis},
		store.Eq{Column: "tahap", Value: m.Tahap},
		store.Eq{Column: "lulus", Value: true},
	))
	if err != nil {
		return err
	}
	for _, o := range passed {
		if o.ID != m.ID {
			return nil
		}
	}
	next, err := store.Exists(ctx, s.tables.Ujian,
		store.Eq{Column: "id_santri", Value: m.SantriID},
		store.Eq{Column: "jenis", Value: m.Jenis},
		store.Eq{Column: "tahap", Value: m.Tahap + 1},
	)
	if err != nil {
		return err
	}
	if next {
		return fmt.Errorf("%s tahap %d sudah tercatat: %w", m.Jenis, m.Tahap+1, helper.ErrInUse)
	}
	return nil
}

func (s *UjianService) Delete(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	m, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if m.Lulus {
		if err := s.ensureNoNextStage(ctx, m); err != nil {
			return err
		}
	}
	if err := s.tables.Ujian.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Mutation(ctx, actor.ID, tableUjian, logService.OpDelete, id, nil)
	return nil
}

// Progress: tahap tertinggi yang lulus per jenis untuk satu santri.
func (s *UjianService) Progress(ctx context.Context, actor helper.Actor, santriID uuid.UUID) (dto.ProgressResponse, error) {
	sc, err := scope.Resolve(ctx, s.tables, actor)
	if err != nil {
		return dto.ProgressResponse{}, err
	}
	santri, err := s.tables.Santri.Get(ctx, santriID)
	if err != nil {
		return dto.ProgressResponse{}, err
	}
	if !sc.HasSantri(santriID) {
		return dto.ProgressResponse{}, helper.ErrForbidden
	}

	rows, _, err := s.tables.Ujian.List(ctx, store.Where(store.Eq{Column: "id_santri", Value: santriID}))
	if err != nil {
		return dto.ProgressResponse{}, err
	}

	out := dto.ProgressResponse{
		SantriID:   santriID,
		NamaSantri: santri.Nama,
		Jenis:      make(map[string]dto.JenisProgress, len(jenisUjian)),
	}
	for _, j := range jenisUjian {
		out.Jenis[j] = dto.JenisProgress{TahapBerikutnya: 1}
	}
	for _, r := range rows {
		p := out.Jenis[r.Jenis]
		p.JumlahUjian++
		if r.Lulus && r.Tahap > p.TahapLulus {
			p.TahapLulus = r.Tahap
		}
		p.TahapBerikutnya = p.TahapLulus + 1
		out.Jenis[r.Jenis] = p
	}
	return out, nil
}
