package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/features/users/auth/controller"
	"tahfidz_backend/internals/features/users/auth/service"
	rateLimiter "tahfidz_backend/internals/middlewares"
)

// AuthPublicRoutes: /api/auth/login (tanpa token)
func AuthPublicRoutes(api fiber.Router, svc *service.AuthService, log *zap.Logger) {
	authController := controller.NewAuthController(svc, log)

	api.Post("/auth/login", rateLimiter.LoginRateLimiter(), authController.Login)
}

// AuthProtectedRoutes: dipasang setelah AuthMiddleware
func AuthProtectedRoutes(api fiber.Router, svc *service.AuthService, log *zap.Logger) {
	authController := controller.NewAuthController(svc, log)

	auth := api.Group("/auth")
	auth.Post("/logout", authController.Logout)
	auth.Get("/me", authController.Me)
	auth.Post("/change-password", rateLimiter.ChangePasswordRateLimiter(), authController.ChangePassword)
}
