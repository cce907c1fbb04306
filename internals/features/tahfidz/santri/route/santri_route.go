package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/tahfidz/santri/controller"
	"tahfidz_backend/internals/features/tahfidz/santri/service"
	authMiddleware "tahfidz_backend/internals/middlewares/auth"
)

// SantriRoutes: semua role boleh baca (dibatasi scope di service),
// tambah/ubah/hapus hanya admin.
func SantriRoutes(api fiber.Router, svc *service.SantriService, log *zap.Logger) {
	ctrl := controller.NewSantriController(svc, log)
	adminOnly := authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("Manajemen Santri"), constants.AdminOnly)

	g := api.Group("/santri",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorMember("Santri"), constants.AllRoles),
	)
	g.Get("/", ctrl.GetSantri)
	g.Get("/:id", ctrl.GetSantriByID)
	g.Post("/", adminOnly, ctrl.CreateSantri)
	g.Patch("/:id", adminOnly, ctrl.UpdateSantri)
	g.Put("/:id", adminOnly, ctrl.UpdateSantri)
	g.Delete("/:id", adminOnly, ctrl.DeleteSantri)
}
