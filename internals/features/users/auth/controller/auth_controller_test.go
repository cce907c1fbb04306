package controller

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/users/auth/service"
	helper "tahfidz_backend/internals/helpers"
	authMiddleware "tahfidz_backend/internals/middlewares/auth"
	"tahfidz_backend/internals/testkit"
)

func newAuthApp(t *testing.T) (*testkit.Env, *fiber.App) {
	t.Helper()
	env := testkit.NewEnv(t)
	svc := service.NewAuthService(env.Tables, service.NewTokenIssuer("secret-test", time.Hour), env.Audit, env.Log)
	ctrl := NewAuthController(svc, env.Log)

	app := fiber.New(fiber.Config{ErrorHandler: helper.FromFiberError})
	app.Post("/api/auth/login", ctrl.Login)
	api := app.Group("/api", authMiddleware.AuthMiddleware(svc, env.Log))
	api.Get("/auth/me", ctrl.Me)
	api.Post("/auth/logout", ctrl.Logout)
	api.Post("/auth/change-password", ctrl.ChangePassword)
	return env, app
}

func login(t *testing.T, app *fiber.App, username, password string) (int, map[string]any) {
	t.Helper()
	return testkit.Do(t, app, fiber.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
}

func bearer(t *testing.T, app *fiber.App, method, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestLogin(t *testing.T) {
	env, app := newAuthApp(t)
	env.User(t, constants.RoleAsatidz, "ustadz")

	status, body := login(t, app, "ustadz", "salah")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])

	status, body = login(t, app, "", "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "username")

	status, body = login(t, app, "ustadz", testkit.Password)
	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["access_token"])
	menu := data["menu"].([]any)
	require.Len(t, menu, 1)
	assert.Equal(t, "Manajemen Tahfidz", menu[0].(map[string]any)["title"])
}

func TestMeAndLogout(t *testing.T) {
	env, app := newAuthApp(t)
	env.User(t, constants.RoleAdmin, "admin")

	_, body := login(t, app, "admin", testkit.Password)
	token := body["data"].(map[string]any)["access_token"].(string)

	assert.Equal(t, fiber.StatusUnauthorized, bearer(t, app, fiber.MethodGet, "/api/auth/me", ""))
	assert.Equal(t, fiber.StatusOK, bearer(t, app, fiber.MethodGet, "/api/auth/me", token))
	assert.Equal(t, fiber.StatusOK, bearer(t, app, fiber.MethodPost, "/api/auth/logout", token))
	assert.Equal(t, fiber.StatusUnauthorized, bearer(t, app, fiber.MethodGet, "/api/auth/me", token))
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	env, app := newAuthApp(t)
	env.User(t, constants.RoleWaliSantri, "wali")
	_, body := login(t, app, "wali", testkit.Password)
	token := body["data"].(map[string]any)["access_token"].(string)

	req := httptest.NewRequest(fiber.MethodPost, "/api/auth/change-password",
		strings.NewReader(`{"current_password":"keliru","new_password":"passwordbaru1"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
