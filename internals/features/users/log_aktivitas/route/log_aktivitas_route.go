package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/users/log_aktivitas/controller"
	"tahfidz_backend/internals/features/users/log_aktivitas/service"
	authMiddleware "tahfidz_backend/internals/middlewares/auth"
)

// LogAktivitasAdminRoutes: hanya baca, tidak ada update/delete.
func LogAktivitasAdminRoutes(api fiber.Router, svc *service.LogAktivitasService, log *zap.Logger) {
	ctrl := controller.NewLogAktivitasController(svc, log)

	api.Get("/log-aktivitas",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("Log Aktivitas"), constants.AdminOnly),
		ctrl.GetLogs,
	)
}
