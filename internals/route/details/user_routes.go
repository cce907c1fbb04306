package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	LogRoutes "tahfidz_backend/internals/features/users/log_aktivitas/route"
	logService "tahfidz_backend/internals/features/users/log_aktivitas/service"
	UserRoutes "tahfidz_backend/internals/features/users/user/route"
	userService "tahfidz_backend/internals/features/users/user/service"
)

// /api/users, /api/users/asatidz, /api/log-aktivitas
func UserPrivateRoutes(api fiber.Router, users *userService.UserService, logs *logService.LogAktivitasService, log *zap.Logger) {
	UserRoutes.UserAdminRoutes(api, users, log)
	LogRoutes.LogAktivitasAdminRoutes(api, logs, log)
}
