package routes

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tahfidz_backend/internals/constants"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/testkit"
)

func newServer(t *testing.T) (*fiber.App, *Services) {
	t.Helper()
	env := testkit.NewEnv(t)
	d := Deps{
		Tables:     env.Tables,
		Metrics:    env.Metrics,
		Thresholds: constants.DefaultThresholds(),
		JWTSecret:  "secret-test",
		JWTTTL:     time.Hour,
		Log:        env.Log,
	}
	svc := NewServices(d)
	created, err := svc.User.EnsureAdmin(env.Ctx, "admin", testkit.Password)
	require.NoError(t, err)
	require.True(t, created)

	app := fiber.New(fiber.Config{ErrorHandler: helper.FromFiberError})
	SetupRoutes(app, d, svc)
	return app, svc
}

func get(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestBaseRoutes(t *testing.T) {
	app, _ := newServer(t)

	status, body := testkit.Do(t, app, fiber.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "memory", body["backend"])

	assert.Equal(t, fiber.StatusOK, get(t, app, "/metrics", ""))
}

func TestSetupRoutes_LoginThenBrowse(t *testing.T) {
	app, _ := newServer(t)

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/api/santri", ""))

	status, body := testkit.Do(t, app, fiber.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin",
		"password": testkit.Password,
	})
	require.Equal(t, fiber.StatusOK, status)
	token := body["data"].(map[string]any)["access_token"].(string)

	for _, path := range []string{
		"/api/auth/me",
		"/api/dashboard/stats",
		"/api/pengumuman",
		"/api/users",
		"/api/log-aktivitas",
		"/api/halaqoh",
		"/api/kelas",
		"/api/santri",
		"/api/setoran",
		"/api/absensi",
		"/api/penilaian",
		"/api/ujian",
		"/api/ujian/thresholds",
	} {
		assert.Equal(t, fiber.StatusOK, get(t, app, path, token), path)
	}
}
