package service

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/tahfidz/scope"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/helpers/dbtime"
	"tahfidz_backend/internals/repositories"
	"tahfidz_backend/internals/store"
)

type Stats struct {
	Tanggal        string           `json:"tanggal"`
	SantriAktif    int64            `json:"santri_aktif"`
	Halaqoh        int64            `json:"halaqoh"`
	Kelas          int64            `json:"kelas"`
	Asatidz        int64            `json:"asatidz"`
	SetoranHariIni int64            `json:"setoran_hari_ini"`
	AbsensiHariIni map[string]int64 `json:"absensi_hari_ini"`
}

type DashboardService struct {
	tables *repositories.Tables
	log    *zap.Logger
}

func NewDashboardService(tables *repositories.Tables, log *zap.Logger) *DashboardService {
	return &DashboardService{tables: tables, log: log}
}

// Stats menghitung ringkasan per tanggal. Non-admin hanya melihat angka
// santri dalam jangkauannya; jumlah kelas & asatidz khusus admin.
func (s *DashboardService) Stats(ctx context.Context, actor helper.Actor, tanggal datatypes.Date) (Stats, error) {
	sc, err := scope.Resolve(ctx, s.tables, actor)
	if err != nil {
		return Stats{}, err
	}

	out := Stats{Tanggal: dbtime.FormatDate(tanggal), AbsensiHariIni: make(map[string]int64, len(constants.AbsensiStatuses))}
	for _, st := range constants.AbsensiStatuses {
		out.AbsensiHariIni[st] = 0
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := store.Total(gctx, s.tables.Santri, store.Query{
			Filters: []store.Eq{{Column: "status", Value: constants.SantriAktif}},
			In:      sc.SantriIn("id"),
		})
		out.SantriAktif = n
		return err
	})
	g.Go(func() error {
		if !sc.All {
			out.Halaqoh = int64(len(sc.HalaqohIDs))
			return nil
		}
		n, err := s.tables.Halaqoh.Count(gctx)
		out.Halaqoh = n
		return err
	})
	if sc.All {
		g.Go(func() error {
			n, err := s.tables.Kelas.Count(gctx)
			out.Kelas = n
			return err
		})
		g.Go(func() error {
			n, err := s.tables.Users.Count(gctx,
				store.Eq{Column: "role", Value: constants.RoleAsatidz},
				store.Eq{Column: "is_active", Value: true},
			)
			out.Asatidz = n
			return err
		})
	}
	g.Go(func() error {
		n, err := store.Total(gctx, s.tables.Setoran, store.Query{
			Filters: []store.Eq{{Column: "tanggal", Value: tanggal}},
			In:      sc.SantriIn("id_santri"),
		})
		out.SetoranHariIni = n
		return err
	})
	for _, st := range constants.AbsensiStatuses {
		st := st
		g.Go(func() error {
			n, err := store.Total(gctx, s.tables.Absensi, store.Query{
				Filters: []store.Eq{
					{Column: "tanggal", Value: tanggal},
					{Column: "status", Value: st},
				},
				In: sc.SantriIn("id_santri"),
			})
			mu.Lock()
			out.AbsensiHariIni[st] = n
			mu.Unlock()
			return err
		})
	}

	if err := g.Wait(); err != nil {
		s.log.Error("dashboard stats gagal", zap.Error(err))
		return Stats{}, err
	}
	return out, nil
}
