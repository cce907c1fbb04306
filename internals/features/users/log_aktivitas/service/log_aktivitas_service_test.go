package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tahfidz_backend/internals/metrics"
	"tahfidz_backend/internals/repositories"
	"tahfidz_backend/internals/store"
)

func TestMutationAppendsAndCounts(t *testing.T) {
	ctx := context.Background()
	tables := repositories.NewMemoryTables()
	m := metrics.New()
	svc := NewLogAktivitasService(tables, m, zap.NewNop())

	admin, other := uuid.New(), uuid.New()
	rec := uuid.New()
	svc.Mutation(ctx, admin, "santri", OpCreate, rec, map[string]string{"nis": "S001"})
	svc.Mutation(ctx, admin, "santri", OpDelete, rec, nil)
	svc.Record(ctx, other, "login", nil)

	// dua seri: santri/create dan santri/delete; login bukan mutasi
	n, err := testutil.GatherAndCount(m.Registry(), "tahfidz_records_mutated_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows, total, err := svc.List(ctx, ListFilter{UserID: &admin}, store.Query{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, r := range rows {
		assert.Equal(t, admin, r.UserID)
		assert.Contains(t, string(r.Detail), rec.String())
	}

	rows, _, err = svc.List(ctx, ListFilter{Aksi: "login"}, store.Query{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, other, rows[0].UserID)
	assert.Empty(t, rows[0].Detail)
}

func TestNilMetricsIsSafe(t *testing.T) {
	svc := NewLogAktivitasService(repositories.NewMemoryTables(), nil, zap.NewNop())
	assert.NotPanics(t, func() {
		svc.Mutation(context.Background(), uuid.New(), "kelas", OpUpdate, uuid.New(), nil)
	})
}
