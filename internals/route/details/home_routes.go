package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	DashboardRoutes "tahfidz_backend/internals/features/home/dashboard/route"
	dashboardService "tahfidz_backend/internals/features/home/dashboard/service"
	PengumumanRoutes "tahfidz_backend/internals/features/home/pengumuman/route"
	pengumumanService "tahfidz_backend/internals/features/home/pengumuman/service"
)

// ✅ Untuk user login: /api/dashboard/*, /api/pengumuman
func HomePrivateRoutes(api fiber.Router, dashboard *dashboardService.DashboardService, pengumuman *pengumumanService.PengumumanService, log *zap.Logger) {
	DashboardRoutes.DashboardRoutes(api, dashboard, log)
	PengumumanRoutes.PengumumanRoutes(api, pengumuman, log)
}
