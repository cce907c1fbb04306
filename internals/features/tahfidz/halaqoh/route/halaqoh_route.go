package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/tahfidz/halaqoh/controller"
	"tahfidz_backend/internals/features/tahfidz/halaqoh/service"
	authMiddleware "tahfidz_backend/internals/middlewares/auth"
)

// HalaqohRoutes: baca admin/asatidz, ubah hanya admin.
func HalaqohRoutes(api fiber.Router, svc *service.HalaqohService, log *zap.Logger) {
	ctrl := controller.NewHalaqohController(svc, log)
	adminOnly := authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("Manajemen Halaqoh"), constants.AdminOnly)

	g := api.Group("/halaqoh",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorStaff("Halaqoh"), constants.StaffRoles),
	)
	g.Get("/", ctrl.GetHalaqoh)
	g.Get("/:id", ctrl.GetHalaqohByID)
	g.Post("/", adminOnly, ctrl.CreateHalaqoh)
	g.Patch("/:id", adminOnly, ctrl.UpdateHalaqoh)
	g.Put("/:id", adminOnly, ctrl.UpdateHalaqoh)
	g.Delete("/:id", adminOnly, ctrl.DeleteHalaqoh)
}
