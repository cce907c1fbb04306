package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tahfidz_backend/internals/configs"
	database "tahfidz_backend/internals/databases"
	"tahfidz_backend/internals/store"
)

func sqliteEnv(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tahfidz.db")
	t.Setenv("RAILWAY_ENVIRONMENT", "test")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("LOG_LEVEL", "error")
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

const seedYAML = `
users:
  - {username: admin, nama: Administrator, password: rahasia123, role: Admin}
  - {username: ustadz, nama: Ust. Hasan, password: rahasia123, role: Asatidz}
kelas:
  - {nama: Kelas 7A}
halaqoh:
  - {nama: Halaqoh Abu Bakar, asatidz: ustadz}
santri:
  - {nis: "2024001", nama: Ahmad, jenis_kelamin: L, halaqoh: Halaqoh Abu Bakar, kelas: Kelas 7A}
`

func TestSeedAndAddUser(t *testing.T) {
	sqliteEnv(t)
	file := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(file, []byte(seedYAML), 0o600))

	_, err := run(t, "seed", "--file", file)
	require.NoError(t, err)
	// kedua kali tidak menggandakan data
	_, err = run(t, "seed", "--file", file)
	require.NoError(t, err)

	out, err := run(t, "adduser", "--username", "Wali.Ahmad", "--name", "Bapak Ahmad", "--password", "rahasia123", "--role", "WaliSantri")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))

	cfg, err := configs.Load()
	require.NoError(t, err)
	tables, closeFn, err := database.Open(cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()

	ctx := context.Background()
	users, err := tables.Users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, users)
	santri, err := tables.Santri.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, santri)

	wali, err := store.First(ctx, tables.Users, store.Eq{Column: "username", Value: "wali.ahmad"})
	require.NoError(t, err)
	assert.Equal(t, "WaliSantri", wali.Role)
}

func TestAddUser_Invalid(t *testing.T) {
	sqliteEnv(t)
	_, err := run(t, "adduser", "--username", "ab", "--name", "X", "--password", "pendek", "--role", "Santri")
	assert.Error(t, err)
}

func TestSeed_RequiresFile(t *testing.T) {
	sqliteEnv(t)
	t.Setenv("SEED_FILE", "")
	_, err := run(t, "seed")
	assert.Error(t, err)
}
