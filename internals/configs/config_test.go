package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tahfidz_backend/internals/constants"
)

func TestLoad_DefaultsToMemory(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DATA_BACKEND", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.DataBackend)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 7, cfg.BlacklistTTLDays)
}

func TestLoad_PostgresRequiresSecret(t *testing.T) {
	t.Setenv("DB_HOST", "db.local")
	t.Setenv("DB_NAME", "tahfidz")
	t.Setenv("DATA_BACKEND", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "rahasia")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DataBackend)
	assert.Contains(t, cfg.PostgresDSN(), "@db.local:5432/tahfidz")
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("DATA_BACKEND", "mongo")
	_, err := Load()
	assert.Error(t, err)
}

func TestAllowedOrigins(t *testing.T) {
	cfg := AppConfig{CORSOrigins: " http://a.test , ,http://b.test"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}

func TestLoadThresholds(t *testing.T) {
	rules, err := LoadThresholds("")
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultThresholds(), rules)

	path := filepath.Join(t.TempDir(), "ambang.yaml")
	require.NoError(t, os.WriteFile(path, []byte("manzil:\n  threshold: 85\n"), 0o600))

	rules, err = LoadThresholds(path)
	require.NoError(t, err)
	assert.Equal(t, 85.0, rules[constants.RuleManzil].Threshold)
	assert.Equal(t, constants.MetricKelancaran, rules[constants.RuleManzil].Metric)
	assert.Equal(t, 70.0, rules[constants.RuleSetoran].Threshold)
}

func TestLoadThresholds_Invalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"unknown rule":   "hafalan:\n  threshold: 50\n",
		"unknown metric": "setoran:\n  metric: tajwid\n",
		"out of range":   "tasmi:\n  threshold: 120\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			_, err := LoadThresholds(path)
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("warn", false)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.InfoLevel))

	log, err = NewLogger("warn", true)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))

	_, err = NewLogger("berisik", false)
	assert.Error(t, err)
}
