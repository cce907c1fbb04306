package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tahfidz_backend/internals/seeds"
)

func newSeedCommand(f *rootFlags) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Muat data awal dari file YAML (idempoten)",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(f)
			if err != nil {
				return err
			}
			defer rt.Close()
			if file == "" {
				file = rt.cfg.SeedFile
			}
			if file == "" {
				return fmt.Errorf("--file atau SEED_FILE wajib diisi")
			}
			return applySeedFile(cmd.Context(), rt, file)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path file seed YAML")
	return cmd
}

func applySeedFile(ctx context.Context, rt *session, path string) error {
	rt.log.Info("📥 Membaca file seed", zap.String("file", path))
	f, err := seeds.LoadFile(path)
	if err != nil {
		return err
	}
	res, err := seeds.Apply(ctx, rt.tables, f, rt.log)
	if err != nil {
		return fmt.Errorf("seed gagal: %w", err)
	}
	rt.log.Info("✅ Seed selesai", zap.Any("baru", res))
	return nil
}
