package routes

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"tahfidz_backend/internals/metrics"
	"tahfidz_backend/internals/repositories"
)

func BaseRoutes(app *fiber.App, tables *repositories.Tables, m *metrics.Metrics) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Tahfidz backend running 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := tables.Ping(ctx); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		uptime := time.Since(startTime).Seconds()

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"backend":        tables.Backend(),
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(uptime),
			"environment":    os.Getenv("RAILWAY_ENVIRONMENT"),
		})
	})

	if m != nil {
		app.Get("/metrics", m.Handler())
	}
}
