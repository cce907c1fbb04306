package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/constants"
	userController "tahfidz_backend/internals/features/users/user/controller"
	"tahfidz_backend/internals/features/users/user/service"
	authMiddleware "tahfidz_backend/internals/middlewares/auth"
)

// UserAdminRoutes: /api/users (hanya admin). /asatidz juga boleh dibaca asatidz.
func UserAdminRoutes(api fiber.Router, svc *service.UserService, log *zap.Logger) {
	userCtrl := userController.NewUserController(svc, log)

	api.Get("/users/asatidz",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorStaff("Daftar Asatidz"), constants.StaffRoles),
		userCtrl.GetAsatidz,
	)

	users := api.Group("/users",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("Manajemen User"), constants.AdminOnly),
	)
	users.Get("/", userCtrl.GetUsers)
	users.Get("/:id", userCtrl.GetUser)
	users.Post("/", userCtrl.CreateUser)
	users.Patch("/:id", userCtrl.UpdateUser)
	users.Put("/:id", userCtrl.UpdateUser)
	users.Delete("/:id", userCtrl.DeleteUser)
}
