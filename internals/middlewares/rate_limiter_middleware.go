package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "tahfidz_backend/internals/helpers"
)

func limitReached(message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return helper.JsonError(c, fiber.StatusTooManyRequests, message)
	}
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		Next: func(c *fiber.Ctx) bool {
			// health check & scrape prometheus tidak dihitung
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
		LimitReached: limitReached("❌ Terlalu banyak permintaan. Silakan coba lagi nanti."),
	})
}

// Rate limiter untuk login route (lebih ketat)
func LoginRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: limitReached("❌ Terlalu banyak percobaan login. Coba beberapa saat lagi."),
	})
}

// Rate limiter untuk ganti password
func ChangePasswordRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        3,
		Expiration: 10 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			if id, ok := c.Locals(helper.LocUserID).(string); ok && id != "" {
				return id
			}
			return c.IP()
		},
		LimitReached: limitReached("❌ Terlalu banyak percobaan ganti password. Silakan coba lagi dalam 10 menit."),
	})
}
