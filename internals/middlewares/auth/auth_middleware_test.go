package auth

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tahfidz_backend/internals/constants"
	helper "tahfidz_backend/internals/helpers"
)

type fakeVerifier map[string]helper.Actor

func (f fakeVerifier) VerifyToken(_ context.Context, raw string) (helper.Actor, error) {
	if raw == "nonaktif" {
		return helper.Actor{}, helper.ErrForbidden
	}
	a, ok := f[raw]
	if !ok {
		return helper.Actor{}, helper.ErrInvalidCredentials
	}
	return a, nil
}

func newApp() *fiber.App {
	v := fakeVerifier{
		"admin":   {ID: uuid.New(), Role: constants.RoleAdmin, Nama: "Admin"},
		"ustadz":  {ID: uuid.New(), Role: constants.RoleAsatidz, Nama: "Ust. Hasan"},
		"walinya": {ID: uuid.New(), Role: constants.RoleWaliSantri, Nama: "Bapak Umar"},
	}
	app := fiber.New()
	api := app.Group("/api", AuthMiddleware(v, zap.NewNop()))
	api.Get("/halaqoh", OnlyRolesSlice(constants.RoleErrorStaff("halaqoh"), constants.StaffRoles), func(c *fiber.Ctx) error {
		a, err := helper.GetActor(c)
		if err != nil {
			return err
		}
		return c.SendString(a.Role)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	app := newApp()
	cases := []struct {
		name   string
		header string
		cookie string
		status int
	}{
		{"no token", "", "", fiber.StatusUnauthorized},
		{"bad scheme", "Basic admin", "", fiber.StatusUnauthorized},
		{"unknown token", "Bearer palsu", "", fiber.StatusUnauthorized},
		{"inactive user", "Bearer nonaktif", "", fiber.StatusForbidden},
		{"admin allowed", "Bearer admin", "", fiber.StatusOK},
		{"asatidz via cookie", "", "ustadz", fiber.StatusOK},
		{"wali forbidden", "bearer  walinya", "", fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/halaqoh", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.Header.Set("Cookie", "access_token="+tc.cookie)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
