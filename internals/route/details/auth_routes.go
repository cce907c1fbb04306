package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	authRoute "tahfidz_backend/internals/features/users/auth/route"
	authService "tahfidz_backend/internals/features/users/auth/service"
)

// ✅ Tanpa token: /api/auth/login
func AuthPublicRoutes(api fiber.Router, svc *authService.AuthService, log *zap.Logger) {
	authRoute.AuthPublicRoutes(api, svc, log)
}

// ✅ Dengan token: /api/auth/me, /logout, /change-password
func AuthPrivateRoutes(api fiber.Router, svc *authService.AuthService, log *zap.Logger) {
	authRoute.AuthProtectedRoutes(api, svc, log)
}
