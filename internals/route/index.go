package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/constants"
	dashboardService "tahfidz_backend/internals/features/home/dashboard/service"
	pengumumanService "tahfidz_backend/internals/features/home/pengumuman/service"
	absensiService "tahfidz_backend/internals/features/tahfidz/absensi/service"
	halaqohService "tahfidz_backend/internals/features/tahfidz/halaqoh/service"
	kelasService "tahfidz_backend/internals/features/tahfidz/kelas/service"
	penilaianService "tahfidz_backend/internals/features/tahfidz/penilaian/service"
	santriService "tahfidz_backend/internals/features/tahfidz/santri/service"
	setoranService "tahfidz_backend/internals/features/tahfidz/setoran/service"
	ujianService "tahfidz_backend/internals/features/tahfidz/ujian/service"
	authService "tahfidz_backend/internals/features/users/auth/service"
	logService "tahfidz_backend/internals/features/users/log_aktivitas/service"
	userService "tahfidz_backend/internals/features/users/user/service"
	"tahfidz_backend/internals/metrics"
	authMiddleware "tahfidz_backend/internals/middlewares/auth"
	"tahfidz_backend/internals/repositories"
	routeDetails "tahfidz_backend/internals/route/details"
)

var startTime time.Time

type Deps struct {
	Tables     *repositories.Tables
	Metrics    *metrics.Metrics
	Thresholds map[string]constants.ThresholdRule
	JWTSecret  string
	JWTTTL     time.Duration
	Log        *zap.Logger
}

// Services: satu instance per proses, dipakai route + scheduler + CLI.
type Services struct {
	Audit      *logService.LogAktivitasService
	Auth       *authService.AuthService
	User       *userService.UserService
	Dashboard  *dashboardService.DashboardService
	Pengumuman *pengumumanService.PengumumanService
	Tahfidz    routeDetails.TahfidzServices
}

func NewServices(d Deps) *Services {
	audit := logService.NewLogAktivitasService(d.Tables, d.Metrics, d.Log)
	return &Services{
		Audit:      audit,
		Auth:       authService.NewAuthService(d.Tables, authService.NewTokenIssuer(d.JWTSecret, d.JWTTTL), audit, d.Log),
		User:       userService.NewUserService(d.Tables, audit, d.Log),
		Dashboard:  dashboardService.NewDashboardService(d.Tables, d.Log),
		Pengumuman: pengumumanService.NewPengumumanService(d.Tables, audit, d.Log),
		Tahfidz: routeDetails.TahfidzServices{
			Halaqoh:   halaqohService.NewHalaqohService(d.Tables, audit, d.Log),
			Kelas:     kelasService.NewKelasService(d.Tables, audit, d.Log),
			Santri:    santriService.NewSantriService(d.Tables, audit, d.Log),
			Setoran:   setoranService.NewSetoranService(d.Tables, d.Thresholds, audit, d.Log),
			Absensi:   absensiService.NewAbsensiService(d.Tables, audit, d.Log),
			Penilaian: penilaianService.NewPenilaianService(d.Tables, audit, d.Log),
			Ujian:     ujianService.NewUjianService(d.Tables, d.Thresholds, audit, d.Log),
		},
	}
}

func SetupRoutes(app *fiber.App, d Deps, svc *Services) {
	startTime = time.Now()
	log := d.Log

	// ===================== BASE =====================
	BaseRoutes(app, d.Tables, d.Metrics)

	// ===================== PUBLIC =====================
	log.Info("[INFO] Setting up AuthRoutes...")
	public := app.Group("/api")
	routeDetails.AuthPublicRoutes(public, svc.Auth, log)

	// ===================== PRIVATE (JWT) =====================
	log.Info("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api", authMiddleware.AuthMiddleware(svc.Auth, log))

	routeDetails.AuthPrivateRoutes(private, svc.Auth, log)

	log.Info("[INFO] Mounting User routes...")
	routeDetails.UserPrivateRoutes(private, svc.User, svc.Audit, log)

	log.Info("[INFO] Mounting Home routes...")
	routeDetails.HomePrivateRoutes(private, svc.Dashboard, svc.Pengumuman, log)

	log.Info("[INFO] Mounting Tahfidz routes...")
	routeDetails.TahfidzPrivateRoutes(private, svc.Tahfidz, log)
}
