package route

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/tahfidz/setoran/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/testkit"
)

func newApp(env *testkit.Env, actor helper.Actor) *fiber.App {
	app := testkit.App(actor)
	svc := service.NewSetoranService(env.Tables, constants.DefaultThresholds(), env.Audit, env.Log)
	SetoranRoutes(app.Group("/api"), svc, env.Log)
	return app
}

func body(w testkit.World, kelancaran, tajwid, makharij float64) map[string]any {
	return map[string]any{
		"id_santri":        w.Santri1.ID,
		"juz":              30,
		"surah":            "An-Naba",
		"ayat_mulai":       1,
		"ayat_selesai":     20,
		"nilai_kelancaran": kelancaran,
		"nilai_tajwid":     tajwid,
		"nilai_makharij":   makharij,
	}
}

func TestSetoranRoutes_ScoreOutOfRangeCreatesNothing(t *testing.T) {
	env := testkit.NewEnv(t)
	w := env.World(t)
	app := newApp(env, testkit.ActorOf(w.Ustadz1))

	cases := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"kelancaran > 100", body(w, 101, 80, 80), "nilai_kelancaran"},
		{"tajwid < 0", body(w, 80, -1, 80), "nilai_tajwid"},
		{"makharij jauh di atas", body(w, 80, 80, 250), "nilai_makharij"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, res := testkit.Do(t, app, fiber.MethodPost, "/api/setoran", tc.body)
			assert.Equal(t, fiber.StatusUnprocessableEntity, status)
			assert.Contains(t, res["errors"], tc.field)
		})
	}

	missing := body(w, 80, 80, 80)
	delete(missing, "nilai_tajwid")
	status, res := testkit.Do(t, app, fiber.MethodPost, "/api/setoran", missing)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, res["errors"], "nilai_tajwid")

	reversed := body(w, 80, 80, 80)
	reversed["ayat_mulai"], reversed["ayat_selesai"] = 20, 5
	status, res = testkit.Do(t, app, fiber.MethodPost, "/api/setoran", reversed)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, res["errors"], "ayat_selesai")

	n, err := env.Tables.Setoran.Count(env.Ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	logs, err := env.Tables.LogAktivitas.Count(env.Ctx)
	require.NoError(t, err)
	assert.Zero(t, logs)
}

func TestSetoranRoutes_BoundaryScoresAccepted(t *testing.T) {
	env := testkit.NewEnv(t)
	w := env.World(t)
	app := newApp(env, testkit.ActorOf(w.Ustadz1))

	status, res := testkit.Do(t, app, fiber.MethodPost, "/api/setoran", body(w, 0, 100, 0))
	require.Equal(t, fiber.StatusCreated, status)
	data := res["data"].(map[string]any)
	assert.Equal(t, constants.SetoranUlangi, data["status"])
	assert.Equal(t, w.Ustadz1.ID.String(), data["id_asatidz"])
}

func TestSetoranRoutes_RoleGate(t *testing.T) {
	env := testkit.NewEnv(t)
	w := env.World(t)

	wali := newApp(env, testkit.ActorOf(w.Wali1))
	status, _ := testkit.Do(t, wali, fiber.MethodPost, "/api/setoran", body(w, 90, 90, 90))
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = testkit.Do(t, wali, fiber.MethodGet, "/api/setoran", nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = testkit.Do(t, wali, fiber.MethodGet, "/api/setoran?tanggal=14-07-2025", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	// ustadz2 bukan pembina halaqoh santri1
	other := newApp(env, testkit.ActorOf(w.Ustadz2))
	status, _ = testkit.Do(t, other, fiber.MethodPost, "/api/setoran", body(w, 90, 90, 90))
	assert.Equal(t, fiber.StatusForbidden, status)
}
