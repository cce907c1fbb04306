package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/home/pengumuman/controller"
	"tahfidz_backend/internals/features/home/pengumuman/service"
	authMiddleware "tahfidz_backend/internals/middlewares/auth"
)

// PengumumanRoutes: semua role membaca pengumuman yang ditujukan padanya,
// kelola hanya admin.
func PengumumanRoutes(api fiber.Router, svc *service.PengumumanService, log *zap.Logger) {
	ctrl := controller.NewPengumumanController(svc, log)
	adminOnly := authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("Pengumuman"), constants.AdminOnly)

	g := api.Group("/pengumuman",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorMember("Pengumuman"), constants.AllRoles),
	)
	g.Get("/", ctrl.GetPengumuman)
	g.Get("/:id", ctrl.GetPengumumanByID)
	g.Post("/", adminOnly, ctrl.CreatePengumuman)
	g.Patch("/:id", adminOnly, ctrl.UpdatePengumuman)
	g.Put("/:id", adminOnly, ctrl.UpdatePengumuman)
	g.Delete("/:id", adminOnly, ctrl.DeletePengumuman)
}
