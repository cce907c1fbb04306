package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/tahfidz/absensi/controller"
	"tahfidz_backend/internals/features/tahfidz/absensi/service"
	authMiddleware "tahfidz_backend/internals/middlewares/auth"
)

func AbsensiRoutes(api fiber.Router, svc *service.AbsensiService, log *zap.Logger) {
	ctrl := controller.NewAbsensiController(svc, log)
	staffOnly := authMiddleware.OnlyRolesSlice(constants.RoleErrorStaff("Absensi"), constants.StaffRoles)

	g := api.Group("/absensi",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorMember("Absensi"), constants.AllRoles),
	)
	g.Get("/", ctrl.GetAbsensi)
	// rekap sebelum "/:id"
	g.Get("/rekap", staffOnly, ctrl.GetRekap)
	g.Get("/:id", ctrl.GetAbsensiByID)
	g.Post("/", staffOnly, ctrl.CreateAbsensi)
	g.Post("/bulk", staffOnly, ctrl.BulkAbsensi)
	g.Patch("/:id", staffOnly, ctrl.UpdateAbsensi)
	g.Put("/:id", staffOnly, ctrl.UpdateAbsensi)
	g.Delete("/:id", staffOnly, ctrl.DeleteAbsensi)
}
