package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"tahfidz_backend/internals/features/users/log_aktivitas/model"
	"tahfidz_backend/internals/metrics"
	"tahfidz_backend/internals/repositories"
	"tahfidz_backend/internals/store"
)

// Operasi mutasi yang dicatat
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

type LogAktivitasService struct {
	tables  *repositories.Tables
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewLogAktivitasService(tables *repositories.Tables, m *metrics.Metrics, log *zap.Logger) *LogAktivitasService {
	return &LogAktivitasService{tables: tables, metrics: m, log: log}
}

// Record menambah satu entri log. Kegagalan hanya dicatat ke log aplikasi;
// aksi utama yang sudah berhasil tidak dibatalkan.
func (s *LogAktivitasService) Record(ctx context.Context, userID uuid.UUID, aksi string, detail any) {
	entry := model.LogAktivitasModel{UserID: userID, Aksi: aksi}
	if detail != nil {
		raw, err := json.Marshal(detail)
		if err != nil {
			s.log.Warn("log aktivitas: detail tidak bisa di-encode", zap.String("aksi", aksi), zap.Error(err))
		} else {
			entry.Detail = datatypes.JSON(raw)
		}
	}
	if _, err := s.tables.LogAktivitas.Create(ctx, entry); err != nil {
		s.log.Error("log aktivitas gagal disimpan",
			zap.String("aksi", aksi),
			zap.Stringer("user_id", userID),
			zap.Error(err),
		)
	}
}

// Mutation: catat create/update/delete pada satu tabel + counter prometheus.
func (s *LogAktivitasService) Mutation(ctx context.Context, userID uuid.UUID, table, op string, recordID uuid.UUID, detail any) {
	s.metrics.RecordMutation(table, op)
	payload := map[string]any{"id": recordID}
	if detail != nil {
		payload["data"] = detail
	}
	s.Record(ctx, userID, fmt.Sprintf("%s.%s", table, op), payload)
}

type ListFilter struct {
	UserID *uuid.UUID
	Aksi   string
}

func (s *LogAktivitasService) List(ctx context.Context, f ListFilter, q store.Query) ([]model.LogAktivitasModel, int64, error) {
	if f.UserID != nil {
		q.Filters = append(q.Filters, store.Eq{Column: "user_id", Value: *f.UserID})
	}
	if f.Aksi != "" {
		q.Filters = append(q.Filters, store.Eq{Column: "aksi", Value: f.Aksi})
	}
	if q.OrderBy == "" {
		q.OrderBy, q.Desc = "created_at", true
	}
	return s.tables.LogAktivitas.List(ctx, q)
}
