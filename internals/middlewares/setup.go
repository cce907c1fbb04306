package middlewares

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"

	"tahfidz_backend/internals/metrics"
	"tahfidz_backend/internals/middlewares/logger"
)

type Options struct {
	Origins        []string
	RequestTimeout time.Duration
	AccessLog      bool
}

// SetupMiddlewares memasang middleware global sesuai urutan: recover paling luar,
// lalu request-id, metrics, access log, cors, limiter.
func SetupMiddlewares(app *fiber.App, log *zap.Logger, m *metrics.Metrics, opt Options) {
	if opt.RequestTimeout <= 0 {
		opt.RequestTimeout = 5 * time.Second
	}
	app.Use(RecoveryMiddleware(log))
	app.Use(RequestContext(opt.RequestTimeout))
	if m != nil {
		app.Use(m.Middleware())
	}
	if opt.AccessLog {
		app.Use(logger.LoggerMiddleware(os.Stdout))
	}
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching
	app.Use(CorsMiddleware(opt.Origins))
	app.Use(GlobalRateLimiter())
}
