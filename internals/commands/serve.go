package commands

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tahfidz_backend/internals/configs"
	scheduler "tahfidz_backend/internals/features/users/auth/scheduler"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/metrics"
	middlewares "tahfidz_backend/internals/middlewares"
	routes "tahfidz_backend/internals/route"
)

func newServeCommand(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Jalankan HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), f)
		},
	}
}

func newApp(log *zap.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.ErrorHandler(log),
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		ReadTimeout:             15 * time.Second,
		WriteTimeout:            30 * time.Second,
		IdleTimeout:             90 * time.Second,
	})
}

func runServe(ctx context.Context, f *rootFlags) error {
	rt, err := bootstrap(f)
	if err != nil {
		return err
	}
	defer rt.Close()
	log := rt.log

	thresholds, err := configs.LoadThresholds(rt.cfg.ThresholdsFile)
	if err != nil {
		return err
	}

	m := metrics.New()
	deps := routes.Deps{
		Tables:     rt.tables,
		Metrics:    m,
		Thresholds: thresholds,
		JWTSecret:  rt.cfg.JWTSecret,
		JWTTTL:     rt.cfg.JWTTTL,
		Log:        log,
	}
	svc := routes.NewServices(deps)

	if _, err := svc.User.EnsureAdmin(ctx, rt.cfg.AdminUsername, rt.cfg.AdminPassword); err != nil {
		return err
	}
	// backend memory selalu kosong saat start, seed otomatis bila ada file
	if rt.cfg.SeedFile != "" && rt.tables.Backend() == "memory" {
		if err := applySeedFile(ctx, rt, rt.cfg.SeedFile); err != nil {
			return err
		}
	}

	// ⏱ scheduler setelah store siap
	cron, err := scheduler.StartBlacklistCleanupScheduler(svc.Auth, rt.cfg.BlacklistTTLDays, "", log)
	if err != nil {
		return err
	}
	defer cron.Stop()

	app := newApp(log)
	middlewares.SetupMiddlewares(app, log, m, middlewares.Options{
		Origins:   rt.cfg.AllowedOrigins(),
		AccessLog: f.verbose,
	})
	routes.SetupRoutes(app, deps, svc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("✅ Listening", zap.String("port", rt.cfg.Port), zap.String("backend", rt.tables.Backend()))
		return app.Listen("0.0.0.0:" + rt.cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("🛑 Shutdown...")
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return app.ShutdownWithContext(sctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
