package route

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/tahfidz/ujian/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/testkit"
)

func newApp(env *testkit.Env, actor helper.Actor) *fiber.App {
	app := testkit.App(actor)
	svc := service.NewUjianService(env.Tables, constants.DefaultThresholds(), env.Audit, env.Log)
	UjianRoutes(app.Group("/api"), svc, env.Log)
	return app
}

func TestUjianRoutes(t *testing.T) {
	env := testkit.NewEnv(t)
	w := env.World(t)
	app := newApp(env, testkit.ActorOf(w.Ustadz1))

	exam := func(tahap int) map[string]any {
		return map[string]any{
			"id_santri": w.Santri1.ID, "jenis": "Tahapan", "tahap": tahap,
			"nilai_tajwid": 85, "nilai_fashahah": 85, "nilai_kelancaran": 85,
		}
	}

	status, body := testkit.Do(t, app, fiber.MethodPost, "/api/ujian", exam(2))
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "tahap")

	status, _ = testkit.Do(t, app, fiber.MethodPost, "/api/ujian", exam(1))
	require.Equal(t, fiber.StatusCreated, status)
	status, _ = testkit.Do(t, app, fiber.MethodPost, "/api/ujian", exam(2))
	require.Equal(t, fiber.StatusCreated, status)

	bad := exam(1)
	bad["jenis"] = "hafalan"
	status, body = testkit.Do(t, app, fiber.MethodPost, "/api/ujian", bad)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "jenis")

	wali := newApp(env, testkit.ActorOf(w.Wali1))
	status, body = testkit.Do(t, wali, fiber.MethodGet, "/api/ujian/progress/"+w.Santri1.ID.String(), nil)
	require.Equal(t, fiber.StatusOK, status)
	jenis := body["data"].(map[string]any)["jenis"].(map[string]any)
	assert.EqualValues(t, 2, jenis["tahapan"].(map[string]any)["tahap_lulus"])

	status, _ = testkit.Do(t, wali, fiber.MethodPost, "/api/ujian", exam(3))
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body = testkit.Do(t, wali, fiber.MethodGet, "/api/ujian/thresholds", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 4)

	status, body = testkit.Do(t, wali, fiber.MethodGet, "/api/ujian?lulus=true", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 2)
}
