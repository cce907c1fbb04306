package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// GormTable menerjemahkan kontrak Table ke query GORM. Nama kolom selalu
// divalidasi terhadap Schema.Columns sebelum masuk ke SQL.
type GormTable[T any] struct {
	schema Schema[T]
	db     *gorm.DB
}

func NewGormTable[T any](db *gorm.DB, schema Schema[T]) *GormTable[T] {
	return &GormTable[T]{schema: schema, db: db}
}

// IsUniqueErr mengenali pelanggaran unique constraint dari postgres (23505),
// sqlite, maupun gorm.ErrDuplicatedKey (TranslateError).
func IsUniqueErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}

func (g *GormTable[T]) column(col string) (string, error) {
	if !g.schema.hasColumn(col) {
		return "", fmt.Errorf("%w: %s.%s", ErrUnknownColumn, g.schema.Table, col)
	}
	return col, nil
}

func (g *GormTable[T]) applyFilters(tx *gorm.DB, q Query) (*gorm.DB, error) {
	for _, f := range q.Filters {
		col, err := g.column(f.Column)
		if err != nil {
			return nil, err
		}
		if normalize(f.Value) == nil {
			tx = tx.Where(col + " IS NULL")
			continue
		}
		tx = tx.Where(col+" = ?", f.Value)
	}
	for _, f := range q.In {
		col, err := g.column(f.Column)
		if err != nil {
			return nil, err
		}
		if len(f.Values) == 0 {
			tx = tx.Where("1 = 0")
			continue
		}
		tx = tx.Where(col+" IN ?", f.Values)
	}
	for _, f := range q.Before {
		col, err := g.column(f.Column)
		if err != nil {
			return nil, err
		}
		tx = tx.Where(col+" < ?", f.Value)
	}
	if q.Search != nil && strings.TrimSpace(q.Search.Term) != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(q.Search.Term)) + "%"
		parts := make([]string, 0, len(q.Search.Columns))
		args := make([]any, 0, len(q.Search.Columns))
		for _, c := range q.Search.Columns {
			col, err := g.column(c)
			if err != nil {
				return nil, err
			}
			parts = append(parts, "LOWER("+col+") LIKE ?")
			args = append(args, like)
		}
		if len(parts) > 0 {
			tx = tx.Where("("+strings.Join(parts, " OR ")+")", args...)
		}
	}
	return tx, nil
}

func (g *GormTable[T]) List(ctx context.Context, q Query) ([]T, int64, error) {
	tx, err := g.applyFilters(g.db.WithContext(ctx).Model(new(T)), q)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy, desc := q.OrderBy, q.Desc
	if orderBy == "" {
		orderBy, desc = g.schema.DefaultOrder, g.schema.DefaultDesc
	}
	if orderBy != "" {
		col, err := g.column(orderBy)
		if err != nil {
			return nil, 0, err
		}
		dir := " ASC"
		if desc {
			dir = " DESC"
		}
		tx = tx.Order(col + dir)
	}
	tx = tx.Order(g.schema.IDColumn + " ASC")

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	var rows []T
	if err := tx.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, total, nil
}

func (g *GormTable[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	var rec T
	err := g.db.WithContext(ctx).
		Where(g.schema.IDColumn+" = ?", id).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, ErrNotFound
	}
	return rec, err
}

func (g *GormTable[T]) Create(ctx context.Context, rec T) (T, error) {
	if g.schema.ID(&rec) == uuid.Nil {
		g.schema.SetID(&rec, uuid.New())
	}
	if g.schema.Stamp != nil {
		g.schema.Stamp(&rec, nowUTC(), true)
	}
	if err := g.db.WithContext(ctx).Create(&rec).Error; err != nil {
		var zero T
		if IsUniqueErr(err) {
			return zero, ErrConflict
		}
		return zero, err
	}
	return rec, nil
}

func (g *GormTable[T]) Update(ctx context.Context, rec T) (T, error) {
	var zero T
	if g.schema.Stamp != nil {
		g.schema.Stamp(&rec, nowUTC(), false)
	}
	res := g.db.WithContext(ctx).
		Model(&rec).
		Where(g.schema.IDColumn+" = ?", g.schema.ID(&rec)).
		Select("*").
		Updates(&rec)
	if res.Error != nil {
		if IsUniqueErr(res.Error) {
			return zero, ErrConflict
		}
		return zero, res.Error
	}
	if res.RowsAffected == 0 {
		return zero, ErrNotFound
	}
	return rec, nil
}

func (g *GormTable[T]) Delete(ctx context.Context, id uuid.UUID) error {
	res := g.db.WithContext(ctx).
		Where(g.schema.IDColumn+" = ?", id).
		Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormTable[T]) Count(ctx context.Context, filters ...Eq) (int64, error) {
	tx, err := g.applyFilters(g.db.WithContext(ctx).Model(new(T)), Where(filters...))
	if err != nil {
		return 0, err
	}
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (g *GormTable[T]) DeleteWhere(ctx context.Context, q Query) (int64, error) {
	if !q.hasCondition() {
		return 0, ErrNoCondition
	}
	q.Search = nil
	tx, err := g.applyFilters(g.db.WithContext(ctx).Model(new(T)), q)
	if err != nil {
		return 0, err
	}
	res := tx.Delete(new(T))
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
