package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/home/dashboard/controller"
	"tahfidz_backend/internals/features/home/dashboard/service"
	authMiddleware "tahfidz_backend/internals/middlewares/auth"
)

func DashboardRoutes(api fiber.Router, svc *service.DashboardService, log *zap.Logger) {
	ctrl := controller.NewDashboardController(svc, log)

	g := api.Group("/dashboard",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorMember("Dashboard"), constants.AllRoles),
	)
	g.Get("/menu", ctrl.GetMenu)
	g.Get("/stats", ctrl.GetStats)
}
