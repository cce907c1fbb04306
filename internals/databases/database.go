package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tahfidz_backend/internals/configs"
	"tahfidz_backend/internals/repositories"
)

// Open memilih backend sesuai DATA_BACKEND dan mengembalikan bundel tabel
// beserta fungsi penutup koneksi.
func Open(cfg configs.AppConfig, log *zap.Logger) (*repositories.Tables, func() error, error) {
	switch cfg.DataBackend {
	case "memory":
		log.Info("🧠 Memakai store in-memory")
		return repositories.NewMemoryTables(), func() error { return nil }, nil
	case "postgres":
		db, err := ConnectPostgres(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		TunePool(db, log)
		WarmUp(db, log)
		return repositories.NewGormTables(db), closer(db), nil
	case "sqlite":
		db, err := ConnectSQLite(cfg.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		if err := db.AutoMigrate(repositories.Models()...); err != nil {
			return nil, nil, fmt.Errorf("auto migrate sqlite: %w", err)
		}
		return repositories.NewGormTables(db), closer(db), nil
	}
	return nil, nil, fmt.Errorf("DATA_BACKEND tidak dikenal: %q", cfg.DataBackend)
}

func ConnectPostgres(cfg configs.AppConfig, log *zap.Logger) (*gorm.DB, error) {
	log.Info("🔌 Koneksi ke PostgreSQL...", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.PostgresDSN(),
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(log),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("gagal konek DB: %w", err)
	}
	log.Info("✅ DB connected.")
	return db, nil
}

// ConnectSQLite membuka file sqlite (":memory:" diperbolehkan). Satu koneksi
// saja supaya database in-memory tidak hilang antar koneksi.
func ConnectSQLite(path string, log *zap.Logger) (*gorm.DB, error) {
	if path == ":memory:" {
		path = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         configs.NewGormLogger(log),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("gagal buka sqlite %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	log.Info("✅ SQLite siap", zap.String("path", path))
	return db, nil
}

func TunePool(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("pool tune err", zap.Error(err))
		return
	}
	// ⚖️ Sesuaikan dengan limit Supabase/PgBouncer
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// WarmUp: ping ringan di background supaya pool terisi sebelum request pertama.
func WarmUp(db *gorm.DB, log *zap.Logger) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			log.Warn("warm-up ping err", zap.Error(err))
		}
	}()
}

func closer(db *gorm.DB) func() error {
	return func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
}
