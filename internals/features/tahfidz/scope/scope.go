// Package scope menentukan santri dan halaqoh mana yang boleh diakses
// seorang actor berdasarkan role-nya.
package scope

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"tahfidz_backend/internals/constants"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/repositories"
	"tahfidz_backend/internals/store"
)

// Scope: All=true untuk admin. Selain admin, akses dibatasi ke ID yang
// tercantum.
type Scope struct {
	All        bool
	HalaqohIDs []uuid.UUID
	SantriIDs  []uuid.UUID
}

// Resolve:
//   - Admin: semua data
//   - Asatidz: halaqoh yang dia pimpin beserta santrinya
//   - WaliSantri: santri dengan id_wali = dirinya
func Resolve(ctx context.Context, t *repositories.Tables, actor helper.Actor) (Scope, error) {
	switch actor.Role {
	case constants.RoleAdmin:
		return Scope{All: true}, nil

	case constants.RoleAsatidz:
		halaqoh, _, err := t.Halaqoh.List(ctx, store.Where(store.Eq{Column: "id_asatidz", Value: actor.ID}))
		if err != nil {
			return Scope{}, fmt.Errorf("scope halaqoh: %w", err)
		}
		s := Scope{HalaqohIDs: make([]uuid.UUID, 0, len(halaqoh))}
		for _, h := range halaqoh {
			s.HalaqohIDs = append(s.HalaqohIDs, h.ID)
		}
		santri, _, err := t.Santri.List(ctx, store.Query{In: []store.In{InIDs("id_halaqoh", s.HalaqohIDs)}})
		if err != nil {
			return Scope{}, fmt.Errorf("scope santri: %w", err)
		}
		for _, r := range santri {
			s.SantriIDs = append(s.SantriIDs, r.ID)
		}
		return s, nil

	case constants.RoleWaliSantri:
		santri, _, err := t.Santri.List(ctx, store.Where(store.Eq{Column: "id_wali", Value: actor.ID}))
		if err != nil {
			return Scope{}, fmt.Errorf("scope santri: %w", err)
		}
		s := Scope{}
		for _, r := range santri {
			s.SantriIDs = append(s.SantriIDs, r.ID)
		}
		return s, nil
	}
	return Scope{}, helper.ErrForbidden
}

func (s Scope) HasSantri(id uuid.UUID) bool {
	return s.All || slices.Contains(s.SantriIDs, id)
}

func (s Scope) HasHalaqoh(id uuid.UUID) bool {
	return s.All || slices.Contains(s.HalaqohIDs, id)
}

// SantriIn: filter IN untuk kolom santri; nil bila actor admin.
func (s Scope) SantriIn(column string) []store.In {
	if s.All {
		return nil
	}
	return []store.In{InIDs(column, s.SantriIDs)}
}

func (s Scope) HalaqohIn(column string) []store.In {
	if s.All {
		return nil
	}
	return []store.In{InIDs(column, s.HalaqohIDs)}
}

func InIDs(column string, ids []uuid.UUID) store.In {
	vals := make([]any, len(ids))
	for i, id := range ids {
		vals[i] = id
	}
	return store.In{Column: column, Values: vals}
}

// RequireUser: id harus user aktif dengan role tertentu, selain itu
// FieldError ErrReferenceMissing pada field.
func RequireUser(ctx context.Context, t *repositories.Tables, id uuid.UUID, role, field string) error {
	u, err := t.Users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return helper.RefMissing(field, "user tidak ditemukan")
		}
		return err
	}
	if u.Role != role || !u.IsActive {
		return helper.RefMissing(field, "user harus "+role+" yang aktif")
	}
	return nil
}

// RequireSantri: santri harus ada (422) dan dalam jangkauan actor (403).
func RequireSantri(ctx context.Context, t *repositories.Tables, sc Scope, id uuid.UUID) error {
	if _, err := t.Santri.Get(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return helper.RefMissing("id_santri", "santri tidak ditemukan")
		}
		return err
	}
	if !sc.HasSantri(id) {
		return helper.ErrForbidden
	}
	return nil
}
