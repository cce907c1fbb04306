package route

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tahfidz_backend/internals/features/tahfidz/penilaian/service"
	"tahfidz_backend/internals/testkit"
)

func TestPenilaianRoutes_ScoreOutOfRangeCreatesNothing(t *testing.T) {
	env := testkit.NewEnv(t)
	w := env.World(t)
	app := testkit.App(testkit.ActorOf(w.Ustadz1))
	PenilaianRoutes(app.Group("/api"), service.NewPenilaianService(env.Tables, env.Audit, env.Log), env.Log)

	for _, tc := range []struct {
		field string
		value float64
	}{
		{"tajwid", 100.5},
		{"fashahah", -0.5},
		{"kelancaran", 1000},
	} {
		t.Run(tc.field, func(t *testing.T) {
			payload := map[string]any{
				"id_santri": w.Santri1.ID, "periode": "Semester 1",
				"tajwid": 80, "fashahah": 80, "kelancaran": 80,
			}
			payload[tc.field] = tc.value
			status, body := testkit.Do(t, app, fiber.MethodPost, "/api/penilaian", payload)
			assert.Equal(t, fiber.StatusUnprocessableEntity, status)
			assert.Contains(t, body["errors"], tc.field)
		})
	}

	n, err := env.Tables.Penilaian.Count(env.Ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	status, body := testkit.Do(t, app, fiber.MethodPost, "/api/penilaian", map[string]any{
		"id_santri": w.Santri1.ID, "periode": "Semester 1",
		"tajwid": 100, "fashahah": 0, "kelancaran": 100,
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "D", body["data"].(map[string]any)["predikat"])
}
