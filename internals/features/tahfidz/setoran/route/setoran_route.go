package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/tahfidz/setoran/controller"
	"tahfidz_backend/internals/features/tahfidz/setoran/service"
	authMiddleware "tahfidz_backend/internals/middlewares/auth"
)

// SetoranRoutes: baca semua role (scope di service), catat/ubah/hapus
// admin & asatidz.
func SetoranRoutes(api fiber.Router, svc *service.SetoranService, log *zap.Logger) {
	ctrl := controller.NewSetoranController(svc, log)
	staffOnly := authMiddleware.OnlyRolesSlice(constants.RoleErrorStaff("Setoran"), constants.StaffRoles)

	g := api.Group("/setoran",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorMember("Setoran"), constants.AllRoles),
	)
	g.Get("/", ctrl.GetSetoran)
	g.Get("/:id", ctrl.GetSetoranByID)
	g.Post("/", staffOnly, ctrl.CreateSetoran)
	g.Patch("/:id", staffOnly, ctrl.UpdateSetoran)
	g.Put("/:id", staffOnly, ctrl.UpdateSetoran)
	g.Delete("/:id", staffOnly, ctrl.DeleteSetoran)
}
