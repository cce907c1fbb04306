package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type widget struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name      string     `gorm:"column:name;uniqueIndex"`
	Rank      int        `gorm:"column:score"`
	OwnerID   *uuid.UUID `gorm:"column:owner_id;type:uuid"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (widget) TableName() string { return "widgets" }

var widgetSchema = Schema[widget]{
	Table:    "widgets",
	IDColumn: "id",
	ID:       func(w *widget) uuid.UUID { return w.ID },
	SetID:    func(w *widget, id uuid.UUID) { w.ID = id },
	Columns: func(w *widget) map[string]any {
		return map[string]any{
			"id":         w.ID,
			"name":       w.Name,
			"score":      w.Rank,
			"owner_id":   w.OwnerID,
			"created_at": w.CreatedAt,
		}
	},
	Stamp: func(w *widget, now time.Time, created bool) {
		if created {
			w.CreatedAt = now
		}
		w.UpdatedAt = now
	},
	Unique:       [][]string{{"name"}},
	DefaultOrder: "score",
}

func backends(t *testing.T) map[string]Table[widget] {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// satu koneksi = satu database :memory:
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&widget{}))

	return map[string]Table[widget]{
		"memory": NewMemoryTable(widgetSchema),
		"gorm":   NewGormTable(db, widgetSchema),
	}
}

func TestTable_CRUD(t *testing.T) {
	ctx := context.Background()
	for name, tbl := range backends(t) {
		t.Run(name, func(t *testing.T) {
			a, err := tbl.Create(ctx, widget{Name: "alif", Rank: 2})
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, a.ID)
			assert.False(t, a.CreatedAt.IsZero())

			b, err := tbl.Create(ctx, widget{Name: "ba", Rank: 1})
			require.NoError(t, err)
			assert.NotEqual(t, a.ID, b.ID)

			got, err := tbl.Get(ctx, a.ID)
			require.NoError(t, err)
			assert.Equal(t, "alif", got.Name)

			got.Rank = 5
			_, err = tbl.Update(ctx, got)
			require.NoError(t, err)

			again, err := tbl.Get(ctx, a.ID)
			require.NoError(t, err)
			assert.Equal(t, 5, again.Rank)

			require.NoError(t, tbl.Delete(ctx, b.ID))
			_, err = tbl.Get(ctx, b.ID)
			assert.ErrorIs(t, err, ErrNotFound)

			rows, total, err := tbl.List(ctx, Query{})
			require.NoError(t, err)
			assert.EqualValues(t, 1, total)
			require.Len(t, rows, 1)
			assert.Equal(t, a.ID, rows[0].ID)
		})
	}
}

func TestTable_MissingRecord(t *testing.T) {
	ctx := context.Background()
	for name, tbl := range backends(t) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, tbl.Delete(ctx, uuid.New()), ErrNotFound)
			_, err := tbl.Update(ctx, widget{ID: uuid.New(), Name: "x"})
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestTable_UniqueConflict(t *testing.T) {
	ctx := context.Background()
	for name, tbl := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := tbl.Create(ctx, widget{Name: "same"})
			require.NoError(t, err)
			_, err = tbl.Create(ctx, widget{Name: "same"})
			assert.ErrorIs(t, err, ErrConflict)
		})
	}
}

func TestTable_ListFiltersSearchPaging(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	for name, tbl := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for i, n := range []string{"Ahmad", "Bilal", "Hamzah", "Umar"} {
				w := widget{Name: n, Rank: i}
				if i%2 == 0 {
					w.OwnerID = &owner
				}
				_, err := tbl.Create(ctx, w)
				require.NoError(t, err)
			}

			rows, total, err := tbl.List(ctx, Where(Eq{Column: "owner_id", Value: owner}))
			require.NoError(t, err)
			assert.EqualValues(t, 2, total)
			assert.Equal(t, "Ahmad", rows[0].Name)
			assert.Equal(t, "Hamzah", rows[1].Name)

			rows, _, err = tbl.List(ctx, Where(Eq{Column: "owner_id", Value: nil}))
			require.NoError(t, err)
			assert.Len(t, rows, 2)

			rows, total, err = tbl.List(ctx, Query{Search: &Search{Columns: []string{"name"}, Term: "MA"}})
			require.NoError(t, err)
			assert.EqualValues(t, 2, total) // Ahmad, Umar
			assert.Len(t, rows, 2)

			rows, total, err = tbl.List(ctx, Query{OrderBy: "score", Desc: true, Limit: 2, Offset: 1})
			require.NoError(t, err)
			assert.EqualValues(t, 4, total)
			require.Len(t, rows, 2)
			assert.Equal(t, "Hamzah", rows[0].Name)
			assert.Equal(t, "Bilal", rows[1].Name)

			n, err := tbl.Count(ctx, Eq{Column: "score", Value: 3})
			require.NoError(t, err)
			assert.EqualValues(t, 1, n)
		})
	}
}

func TestTable_ListIn(t *testing.T) {
	ctx := context.Background()
	for name, tbl := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var ids []any
			for i, n := range []string{"Ahmad", "Bilal", "Hamzah"} {
				w, err := tbl.Create(ctx, widget{Name: n, Rank: i})
				require.NoError(t, err)
				if n != "Bilal" {
					ids = append(ids, w.ID)
				}
			}

			rows, total, err := tbl.List(ctx, Query{In: []In{{Column: "id", Values: ids}}})
			require.NoError(t, err)
			assert.EqualValues(t, 2, total)
			assert.Equal(t, "Ahmad", rows[0].Name)
			assert.Equal(t, "Hamzah", rows[1].Name)

			rows, total, err = tbl.List(ctx, Query{In: []In{{Column: "id"}}})
			require.NoError(t, err)
			assert.Zero(t, total)
			assert.Empty(t, rows)
		})
	}
}

func TestTable_UnknownColumnRejected(t *testing.T) {
	ctx := context.Background()
	for name, tbl := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := tbl.List(ctx, Query{OrderBy: "name; DROP TABLE widgets"})
			assert.ErrorIs(t, err, ErrUnknownColumn)
			_, err = tbl.Count(ctx, Eq{Column: "nope", Value: 1})
			assert.ErrorIs(t, err, ErrUnknownColumn)
		})
	}
}

func TestFirstAndExists(t *testing.T) {
	ctx := context.Background()
	tbl := NewMemoryTable(widgetSchema)
	_, err := First[widget](ctx, tbl, Eq{Column: "name", Value: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = tbl.Create(ctx, widget{Name: "x"})
	require.NoError(t, err)

	w, err := First[widget](ctx, tbl, Eq{Column: "name", Value: "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", w.Name)

	ok, err := Exists[widget](ctx, tbl, Eq{Column: "name", Value: "x"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompareValues(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"ints", 1, 2, -1},
		{"int vs float", 3, 2.5, 1},
		{"uuid vs string", id, id.String(), 0},
		{"nil pointer", (*string)(nil), "a", -1},
		{"time", time.Unix(10, 0), time.Unix(5, 0), 1},
		{"bools", false, true, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareValues(tt.a, tt.b))
		})
	}
}

func TestTable_DeleteWhere(t *testing.T) {
	ctx := context.Background()
	for name, tbl := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for i, n := range []string{"satu", "dua", "tiga", "empat"} {
				_, err := tbl.Create(ctx, widget{Name: n, Rank: i})
				require.NoError(t, err)
			}

			_, err := tbl.DeleteWhere(ctx, Query{})
			assert.ErrorIs(t, err, ErrNoCondition)
			_, err = tbl.DeleteWhere(ctx, Query{Before: []Lt{{Column: "nope", Value: 1}}})
			assert.ErrorIs(t, err, ErrUnknownColumn)

			n, err := tbl.DeleteWhere(ctx, Query{Before: []Lt{{Column: "score", Value: 2}}})
			require.NoError(t, err)
			assert.EqualValues(t, 2, n)

			rows, total, err := tbl.List(ctx, Query{})
			require.NoError(t, err)
			assert.EqualValues(t, 2, total)
			assert.Equal(t, "tiga", rows[0].Name)
			assert.Equal(t, "empat", rows[1].Name)

			n, err = tbl.DeleteWhere(ctx, Query{Filters: []Eq{{Column: "name", Value: "tiga"}}})
			require.NoError(t, err)
			assert.EqualValues(t, 1, n)
		})
	}
}
