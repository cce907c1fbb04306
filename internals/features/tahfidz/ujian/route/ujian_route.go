package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/tahfidz/ujian/controller"
	"tahfidz_backend/internals/features/tahfidz/ujian/service"
	authMiddleware "tahfidz_backend/internals/middlewares/auth"
)

func UjianRoutes(api fiber.Router, svc *service.UjianService, log *zap.Logger) {
	ctrl := controller.NewUjianController(svc, log)
	staffOnly := authMiddleware.OnlyRolesSlice(constants.RoleErrorStaff("Ujian"), constants.StaffRoles)

	g := api.Group("/ujian",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorMember("Ujian"), constants.AllRoles),
	)
	g.Get("/", ctrl.GetUjian)
	g.Get("/thresholds", ctrl.GetThresholds)
	g.Get("/progress/:santri_id", ctrl.GetProgress)
	g.Get("/:id", ctrl.GetUjianByID)
	g.Post("/", staffOnly, ctrl.CreateUjian)
	g.Patch("/:id", staffOnly, ctrl.UpdateUjian)
	g.Put("/:id", staffOnly, ctrl.UpdateUjian)
	g.Delete("/:id", staffOnly, ctrl.DeleteUjian)
}
