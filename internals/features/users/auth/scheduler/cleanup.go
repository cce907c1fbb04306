package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"tahfidz_backend/internals/helpers/dbtime"
)

type BlacklistCleaner interface {
	CleanupBlacklist(ctx context.Context, ttl time.Duration) (int, error)
}

// RunBlacklistCleanup satu kali jalan: hapus token blacklist yang kadaluarsa > ttlDays.
func RunBlacklistCleanup(ctx context.Context, cleaner BlacklistCleaner, ttlDays int, log *zap.Logger) {
	if ttlDays <= 0 {
		ttlDays = 7
	}
	log.Info("[CLEANUP] Menjalankan pembersihan token_blacklist...")

	n, err := cleaner.CleanupBlacklist(ctx, time.Duration(ttlDays)*24*time.Hour)
	switch {
	case err != nil:
		log.Error("[CLEANUP ERROR] Gagal hapus token", zap.Error(err))
	case n > 0:
		log.Info("[CLEANUP] token kadaluarsa dihapus", zap.Int("jumlah", n))
	default:
		log.Debug("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
	}
}

// StartBlacklistCleanupScheduler menjadwalkan pembersihan harian (jam WIB). Caller wajib
// memanggil Stop() saat shutdown.
func StartBlacklistCleanupScheduler(cleaner BlacklistCleaner, ttlDays int, spec string, log *zap.Logger) (*cron.Cron, error) {
	if spec == "" {
		spec = "@daily"
	}
	c := cron.New(cron.WithLocation(dbtime.Location()))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		RunBlacklistCleanup(ctx, cleaner, ttlDays, log)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
