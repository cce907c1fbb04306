// Package commands berisi CLI tahfidz: serve (default), seed, adduser.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tahfidz_backend/internals/configs"
	database "tahfidz_backend/internals/databases"
	"tahfidz_backend/internals/repositories"
)

type rootFlags struct {
	envFile string
	verbose bool
}

// session: konfigurasi + logger + koneksi store, dibangun per perintah.
type session struct {
	cfg    configs.AppConfig
	log    *zap.Logger
	tables *repositories.Tables
	close  func() error
}

func (r *session) Close() {
	if r.close != nil {
		if err := r.close(); err != nil {
			r.log.Warn("⚠️ Gagal menutup koneksi", zap.Error(err))
		}
	}
	_ = r.log.Sync()
}

func bootstrap(f *rootFlags) (*session, error) {
	configs.LoadEnv(f.envFile)
	cfg, err := configs.Load()
	if err != nil {
		return nil, err
	}
	log, err := configs.NewLogger(cfg.LogLevel, f.verbose)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	tables, closeFn, err := database.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, log: log, tables: tables, close: closeFn}, nil
}

func NewRootCommand() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "tahfidz",
		Short:         "Backend dashboard tahfidz (Admin, Asatidz, WaliSantri)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), f)
		},
	}
	cmd.PersistentFlags().StringVar(&f.envFile, "env-file", "", "path file .env (default: .env di working dir)")
	cmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "log level debug")

	cmd.AddCommand(newServeCommand(f), newSeedCommand(f), newAddUserCommand(f))
	return cmd
}

// Execute dipanggil dari main.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
