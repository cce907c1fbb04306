// Package store adalah kontrak akses data per-tabel yang dipakai semua fitur.
// Backend: memory (map + RWMutex) dan gorm (postgres / sqlite).
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoCondition   = errors.New("delete massal wajib punya kondisi")
	ErrNotFound      = errors.New("record tidak ditemukan")
	ErrConflict      = errors.New("record bentrok dengan data yang sudah ada")
	ErrUnknownColumn = errors.New("kolom tidak dikenal")
)

// Eq adalah predikat kesamaan kolom. Value nil berarti IS NULL.
type Eq struct {
	Column string
	Value  any
}

// In: kolom bernilai salah satu dari Values. Values kosong tidak cocok
// dengan record apa pun.
type In struct {
	Column string
	Values []any
}

// Lt: kolom < Value. Kolom NULL tidak pernah cocok.
type Lt struct {
	Column string
	Value  any
}

// Search mencari Term (case-insensitive, substring) di salah satu Columns.
type Search struct {
	Columns []string
	Term    string
}

type Query struct {
	Filters []Eq
	In      []In
	Before  []Lt
	Search  *Search
	OrderBy string
	Desc    bool
	Limit   int // 0 = tanpa batas
	Offset  int
}

// Where adalah shortcut Query yang hanya berisi filter kesamaan.
func Where(filters ...Eq) Query {
	return Query{Filters: filters}
}

// Schema menjelaskan satu tabel ke backend generik.
type Schema[T any] struct {
	Table    string
	IDColumn string

	ID    func(*T) uuid.UUID
	SetID func(*T, uuid.UUID)

	// Columns memetakan nama kolom → nilai. Kuncinya sekaligus whitelist
	// untuk filter, pencarian, dan ORDER BY.
	Columns func(*T) map[string]any

	// Stamp mengisi created_at/updated_at. created=true saat insert.
	Stamp func(m *T, now time.Time, created bool)

	// Unique: grup kolom yang wajib unik (dicek backend memory; gorm
	// mengandalkan unique index).
	Unique [][]string

	DefaultOrder string
	DefaultDesc  bool
}

func (s Schema[T]) hasColumn(col string) bool {
	var zero T
	_, ok := s.Columns(&zero)[col]
	return ok
}

type Table[T any] interface {
	List(ctx context.Context, q Query) ([]T, int64, error)
	Get(ctx context.Context, id uuid.UUID) (T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, rec T) (T, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filters ...Eq) (int64, error)
	// DeleteWhere menghapus semua record yang cocok dengan Filters/In/Before
	// (Search & paging diabaikan) dan mengembalikan jumlah yang terhapus.
	DeleteWhere(ctx context.Context, q Query) (int64, error)
}

// First mengambil satu record pertama yang cocok dengan filter.
func First[T any](ctx context.Context, t Table[T], filters ...Eq) (T, error) {
	q := Where(filters...)
	q.Limit = 1
	rows, _, err := t.List(ctx, q)
	if err != nil {
		var zero T
		return zero, err
	}
	if len(rows) == 0 {
		var zero T
		return zero, ErrNotFound
	}
	return rows[0], nil
}

// Exists true bila ada minimal satu record yang cocok.
func Exists[T any](ctx context.Context, t Table[T], filters ...Eq) (bool, error) {
	n, err := t.Count(ctx, filters...)
	return n > 0, err
}

func (q Query) hasCondition() bool {
	return len(q.Filters) > 0 || len(q.In) > 0 || len(q.Before) > 0
}

func nowUTC() time.Time { return time.Now().UTC() }

// Total menghitung record yang cocok dengan q tanpa paging.
func Total[T any](ctx context.Context, t Table[T], q Query) (int64, error) {
	q.Limit, q.Offset = 1, 0
	_, n, err := t.List(ctx, q)
	return n, err
}
