package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryTable menyimpan record di map. Nilai disalin saat masuk/keluar,
// jadi caller tidak bisa mengubah isi tabel tanpa lewat Update.
type MemoryTable[T any] struct {
	schema Schema[T]
	rows   map[uuid.UUID]T
	mutex  sync.RWMutex
}

func NewMemoryTable[T any](schema Schema[T]) *MemoryTable[T] {
	return &MemoryTable[T]{
		schema: schema,
		rows:   make(map[uuid.UUID]T),
	}
}

func (m *MemoryTable[T]) checkColumns(q Query) error {
	for _, f := range q.Filters {
		if !m.schema.hasColumn(f.Column) {
			return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, m.schema.Table, f.Column)
		}
	}
	for _, f := range q.In {
		if !m.schema.hasColumn(f.Column) {
			return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, m.schema.Table, f.Column)
		}
	}
	for _, f := range q.Before {
		if !m.schema.hasColumn(f.Column) {
			return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, m.schema.Table, f.Column)
		}
	}
	if q.Search != nil {
		for _, col := range q.Search.Columns {
			if !m.schema.hasColumn(col) {
				return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, m.schema.Table, col)
			}
		}
	}
	if q.OrderBy != "" && !m.schema.hasColumn(q.OrderBy) {
		return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, m.schema.Table, q.OrderBy)
	}
	return nil
}

func matches(cols map[string]any, q Query) bool {
	for _, f := range q.Filters {
		if !equalValues(cols[f.Column], f.Value) {
			return false
		}
	}
	for _, f := range q.In {
		hit := false
		for _, v := range f.Values {
			if equalValues(cols[f.Column], v) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	for _, f := range q.Before {
		v := cols[f.Column]
		if normalize(v) == nil || compareValues(v, f.Value) >= 0 {
			return false
		}
	}
	if q.Search != nil && q.Search.Term != "" {
		found := false
		for _, col := range q.Search.Columns {
			if containsFold(cols[col], q.Search.Term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (m *MemoryTable[T]) List(ctx context.Context, q Query) ([]T, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if err := m.checkColumns(q); err != nil {
		return nil, 0, err
	}

	m.mutex.RLock()
	res := make([]T, 0, len(m.rows))
	for _, row := range m.rows {
		r := row
		if matches(m.schema.Columns(&r), q) {
			res = append(res, r)
		}
	}
	m.mutex.RUnlock()

	orderBy, desc := q.OrderBy, q.Desc
	if orderBy == "" {
		orderBy, desc = m.schema.DefaultOrder, m.schema.DefaultDesc
	}
	sort.SliceStable(res, func(i, j int) bool {
		ci, cj := m.schema.Columns(&res[i]), m.schema.Columns(&res[j])
		c := 0
		if orderBy != "" {
			c = compareValues(ci[orderBy], cj[orderBy])
		}
		if c == 0 {
			// tie-breaker supaya urutan stabil antar panggilan
			c = compareValues(ci[m.schema.IDColumn], cj[m.schema.IDColumn])
			return c < 0
		}
		if desc {
			return c > 0
		}
		return c < 0
	})

	total := int64(len(res))
	if q.Offset > 0 {
		if q.Offset >= len(res) {
			return []T{}, total, nil
		}
		res = res[q.Offset:]
	}
	if q.Limit > 0 && len(res) > q.Limit {
		res = res[:q.Limit]
	}
	return res, total, nil
}

func (m *MemoryTable[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if row, ok := m.rows[id]; ok {
		return row, nil
	}
	return zero, ErrNotFound
}

// violatesUnique harus dipanggil dengan lock tulis sudah dipegang.
func (m *MemoryTable[T]) violatesUnique(rec *T) bool {
	if len(m.schema.Unique) == 0 {
		return false
	}
	id := m.schema.ID(rec)
	cols := m.schema.Columns(rec)
	for _, group := range m.schema.Unique {
		for otherID, other := range m.rows {
			if otherID == id {
				continue
			}
			o := other
			ocols := m.schema.Columns(&o)
			same := true
			for _, col := range group {
				if normalize(cols[col]) == nil || !equalValues(cols[col], ocols[col]) {
					same = false
					break
				}
			}
			if same {
				return true
			}
		}
	}
	return false
}

func (m *MemoryTable[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.schema.ID(&rec) == uuid.Nil {
		m.schema.SetID(&rec, uuid.New())
	}
	id := m.schema.ID(&rec)
	if _, exists := m.rows[id]; exists {
		return zero, ErrConflict
	}
	if m.violatesUnique(&rec) {
		return zero, ErrConflict
	}
	if m.schema.Stamp != nil {
		m.schema.Stamp(&rec, nowUTC(), true)
	}
	m.rows[id] = rec
	return rec, nil
}

func (m *MemoryTable[T]) Update(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	id := m.schema.ID(&rec)
	if _, ok := m.rows[id]; !ok {
		return zero, ErrNotFound
	}
	if m.violatesUnique(&rec) {
		return zero, ErrConflict
	}
	if m.schema.Stamp != nil {
		m.schema.Stamp(&rec, nowUTC(), false)
	}
	m.rows[id] = rec
	return rec, nil
}

func (m *MemoryTable[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *MemoryTable[T]) Count(ctx context.Context, filters ...Eq) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	q := Where(filters...)
	if err := m.checkColumns(q); err != nil {
		return 0, err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var n int64
	for _, row := range m.rows {
		r := row
		if matches(m.schema.Columns(&r), q) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryTable[T]) DeleteWhere(ctx context.Context, q Query) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if !q.hasCondition() {
		return 0, ErrNoCondition
	}
	q.Search = nil
	if err := m.checkColumns(q); err != nil {
		return 0, err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var n int64
	for id, row := range m.rows {
		r := row
		if matches(m.schema.Columns(&r), q) {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}
