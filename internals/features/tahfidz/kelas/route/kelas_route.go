package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/tahfidz/kelas/controller"
	"tahfidz_backend/internals/features/tahfidz/kelas/service"
	authMiddleware "tahfidz_backend/internals/middlewares/auth"
)

func KelasRoutes(api fiber.Router, svc *service.KelasService, log *zap.Logger) {
	ctrl := controller.NewKelasController(svc, log)
	adminOnly := authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("Manajemen Kelas"), constants.AdminOnly)

	g := api.Group("/kelas",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorStaff("Kelas"), constants.StaffRoles),
	)
	g.Get("/", ctrl.GetKelas)
	g.Get("/:id", ctrl.GetKelasByID)
	g.Post("/", adminOnly, ctrl.CreateKelas)
	g.Patch("/:id", adminOnly, ctrl.UpdateKelas)
	g.Put("/:id", adminOnly, ctrl.UpdateKelas)
	g.Delete("/:id", adminOnly, ctrl.DeleteKelas)
}
