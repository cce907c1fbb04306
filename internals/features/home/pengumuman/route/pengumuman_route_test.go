package route

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tahfidz_backend/internals/features/home/pengumuman/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/testkit"
)

func newApp(env *testkit.Env, actor helper.Actor) *fiber.App {
	app := testkit.App(actor)
	PengumumanRoutes(app.Group("/api"), service.NewPengumumanService(env.Tables, env.Audit, env.Log), env.Log)
	return app
}

func TestPengumumanRoutes(t *testing.T) {
	env := testkit.NewEnv(t)
	w := env.World(t)
	admin := newApp(env, testkit.ActorOf(w.Admin))

	status, body := testkit.Do(t, admin, fiber.MethodPost, "/api/pengumuman", map[string]any{
		"judul": "Rapat Wali Santri", "isi": "Ahad pagi", "target_roles": []string{"Guru"},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.NotEmpty(t, body["errors"])

	status, body = testkit.Do(t, admin, fiber.MethodPost, "/api/pengumuman", map[string]any{
		"judul": "Rapat Wali Santri", "isi": "Ahad pagi", "kategori": "Kegiatan",
		"tanggal_terbit": "2025-02-01", "target_roles": []string{"WaliSantri"},
	})
	require.Equal(t, fiber.StatusCreated, status)
	slug := body["data"].(map[string]any)["slug"].(string)
	assert.Equal(t, "rapat-wali-santri", slug)

	wali := newApp(env, testkit.ActorOf(w.Wali1))
	status, _ = testkit.Do(t, wali, fiber.MethodGet, "/api/pengumuman/"+slug, nil)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = testkit.Do(t, wali, fiber.MethodPost, "/api/pengumuman", map[string]any{"judul": "x", "isi": "y"})
	assert.Equal(t, fiber.StatusForbidden, status)

	ustadz := newApp(env, testkit.ActorOf(w.Ustadz1))
	status, _ = testkit.Do(t, ustadz, fiber.MethodGet, "/api/pengumuman/"+slug, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestPengumumanRoutes_HugePage(t *testing.T) {
	env := testkit.NewEnv(t)
	w := env.World(t)
	admin := newApp(env, testkit.ActorOf(w.Admin))
	status, _ := testkit.Do(t, admin, fiber.MethodPost, "/api/pengumuman", map[string]any{
		"judul": "Libur Akhir Semester", "isi": "Pekan depan libur",
	})
	require.Equal(t, fiber.StatusCreated, status)

	for _, app := range []*fiber.App{admin, newApp(env, testkit.ActorOf(w.Wali1))} {
		status, body := testkit.Do(t, app, fiber.MethodGet, "/api/pengumuman?page=500000000000000001", nil)
		require.Equal(t, fiber.StatusOK, status)
		assert.Empty(t, body["data"])
		assert.EqualValues(t, 1, body["pagination"].(map[string]any)["total"])
	}
}
