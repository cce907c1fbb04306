package route

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tahfidz_backend/internals/features/users/user/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/testkit"
)

func newApp(env *testkit.Env, actor helper.Actor) *fiber.App {
	app := testkit.App(actor)
	UserAdminRoutes(app.Group("/api"), service.NewUserService(env.Tables, env.Audit, env.Log), env.Log)
	return app
}

func TestUserRoutes_Conflicts(t *testing.T) {
	env := testkit.NewEnv(t)
	w := env.World(t)
	admin := newApp(env, testkit.ActorOf(w.Admin))

	status, body := testkit.Do(t, admin, fiber.MethodPost, "/api/users", map[string]any{
		"username": "USTADZ1", "nama": "Ustadz Kembar", "password": "password123", "role": "Asatidz",
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, body["errors"], "username")

	status, _ = testkit.Do(t, admin, fiber.MethodDelete, "/api/users/"+w.Ustadz1.ID.String(), nil)
	assert.Equal(t, fiber.StatusConflict, status)
	status, _ = testkit.Do(t, admin, fiber.MethodDelete, "/api/users/"+w.Wali1.ID.String(), nil)
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = testkit.Do(t, admin, fiber.MethodDelete, "/api/users/"+w.Admin.ID.String(), nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	_, err := env.Tables.Users.Get(env.Ctx, w.Admin.ID)
	require.NoError(t, err)
}

func TestUserRoutes_Access(t *testing.T) {
	env := testkit.NewEnv(t)
	w := env.World(t)

	ustadz := newApp(env, testkit.ActorOf(w.Ustadz1))
	status, body := testkit.Do(t, ustadz, fiber.MethodGet, "/api/users/asatidz", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 2)

	status, _ = testkit.Do(t, ustadz, fiber.MethodGet, "/api/users", nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	wali := newApp(env, testkit.ActorOf(w.Wali1))
	status, _ = testkit.Do(t, wali, fiber.MethodGet, "/api/users/asatidz", nil)
	assert.Equal(t, fiber.StatusForbidden, status)
}
