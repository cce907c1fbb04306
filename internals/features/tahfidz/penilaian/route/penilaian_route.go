package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/tahfidz/penilaian/controller"
	"tahfidz_backend/internals/features/tahfidz/penilaian/service"
	authMiddleware "tahfidz_backend/internals/middlewares/auth"
)

func PenilaianRoutes(api fiber.Router, svc *service.PenilaianService, log *zap.Logger) {
	ctrl := controller.NewPenilaianController(svc, log)
	staffOnly := authMiddleware.OnlyRolesSlice(constants.RoleErrorStaff("Penilaian"), constants.StaffRoles)

	g := api.Group("/penilaian",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorMember("Penilaian"), constants.AllRoles),
	)
	g.Get("/", ctrl.GetPenilaian)
	g.Get("/:id", ctrl.GetPenilaianByID)
	g.Post("/", staffOnly, ctrl.CreatePenilaian)
	g.Patch("/:id", staffOnly, ctrl.UpdatePenilaian)
	g.Put("/:id", staffOnly, ctrl.UpdatePenilaian)
	g.Delete("/:id", staffOnly, ctrl.DeletePenilaian)
}
