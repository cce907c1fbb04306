package configs

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const devJWTSecret = "tahfidz-dev-secret-ganti-di-production"

// AppConfig: seluruh konfigurasi proses, dibaca sekali saat start.
type AppConfig struct {
	Port        string
	DataBackend string // memory | postgres | sqlite

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	JWTSecret        string
	JWTTTL           time.Duration
	BlacklistTTLDays int
	ThresholdsFile   string
	SeedFile         string
	AdminUsername    string
	AdminPassword    string
	CORSOrigins      string
	LogLevel         string
}

// =======================
// ENV LOADER
// =======================
func LoadEnv(envFile string) {
	if os.Getenv("RAILWAY_ENVIRONMENT") != "" {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
		return
	}
	files := []string{}
	if envFile != "" {
		files = append(files, envFile)
	}
	if err := godotenv.Load(files...); err != nil {
		log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
	} else {
		log.Println("✅ .env file berhasil dimuat!")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("PORT", "3000")
	v.SetDefault("DATA_BACKEND", "")
	v.SetDefault("DB_USER", "")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_HOST", "")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("SQLITE_PATH", "tahfidz.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", 24*time.Hour)
	v.SetDefault("TOKEN_BLACKLIST_TTL_DAYS", 7)
	v.SetDefault("THRESHOLDS_FILE", "")
	v.SetDefault("SEED_FILE", "")
	v.SetDefault("ADMIN_USERNAME", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.AutomaticEnv()
	return v
}

// Load membaca konfigurasi dari ENV (setelah LoadEnv) dan memvalidasinya.
func Load() (AppConfig, error) {
	v := newViper()

	cfg := AppConfig{
		Port:             v.GetString("PORT"),
		DataBackend:      strings.ToLower(strings.TrimSpace(v.GetString("DATA_BACKEND"))),
		DBUser:           v.GetString("DB_USER"),
		DBPassword:       v.GetString("DB_PASSWORD"),
		DBHost:           v.GetString("DB_HOST"),
		DBPort:           v.GetString("DB_PORT"),
		DBName:           v.GetString("DB_NAME"),
		DBSSLMode:        v.GetString("DB_SSLMODE"),
		SQLitePath:       v.GetString("SQLITE_PATH"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTTTL:           v.GetDuration("JWT_TTL"),
		BlacklistTTLDays: v.GetInt("TOKEN_BLACKLIST_TTL_DAYS"),
		ThresholdsFile:   v.GetString("THRESHOLDS_FILE"),
		SeedFile:         v.GetString("SEED_FILE"),
		AdminUsername:    v.GetString("ADMIN_USERNAME"),
		AdminPassword:    v.GetString("ADMIN_PASSWORD"),
		CORSOrigins:      v.GetString("CORS_ORIGINS"),
		LogLevel:         v.GetString("LOG_LEVEL"),
	}

	if cfg.DataBackend == "" {
		if cfg.DBHost == "" {
			cfg.DataBackend = "memory"
		} else {
			cfg.DataBackend = "postgres"
		}
	}

	switch cfg.DataBackend {
	case "memory", "sqlite":
		if cfg.JWTSecret == "" {
			log.Println("⚠️ JWT_SECRET belum diset, memakai secret development")
			cfg.JWTSecret = devJWTSecret
		}
	case "postgres":
		if cfg.JWTSecret == "" {
			return cfg, fmt.Errorf("JWT_SECRET wajib diset untuk DATA_BACKEND=postgres")
		}
		if cfg.DBHost == "" || cfg.DBName == "" {
			return cfg, fmt.Errorf("DB_HOST dan DB_NAME wajib diset untuk DATA_BACKEND=postgres")
		}
	default:
		return cfg, fmt.Errorf("DATA_BACKEND tidak dikenal: %q", cfg.DataBackend)
	}

	if cfg.JWTTTL <= 0 {
		cfg.JWTTTL = 24 * time.Hour
	}
	if cfg.BlacklistTTLDays <= 0 {
		cfg.BlacklistTTLDays = 7
	}
	return cfg, nil
}

// PostgresDSN: DSN lengkap + statement_timeout, sama seperti koneksi produksi.
func (c AppConfig) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=tahfidz&options=-c statement_timeout=3000",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// AllowedOrigins memecah CORS_ORIGINS yang dipisah koma.
func (c AppConfig) AllowedOrigins() []string {
	out := []string{}
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
