package commands

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tahfidz_backend/internals/constants"
	logService "tahfidz_backend/internals/features/users/log_aktivitas/service"
	"tahfidz_backend/internals/features/users/user/dto"
	userService "tahfidz_backend/internals/features/users/user/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/metrics"
)

func newAddUserCommand(f *rootFlags) *cobra.Command {
	var req dto.CreateUserRequest
	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Tambah user langsung ke database",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Normalize()
			if fields := helper.ValidateStruct(req); fields != nil {
				return fmt.Errorf("input tidak valid: %v", fields)
			}

			rt, err := bootstrap(f)
			if err != nil {
				return err
			}
			defer rt.Close()
			if rt.tables.Backend() == "memory" {
				rt.log.Warn("⚠️ DATA_BACKEND=memory, user hilang saat proses selesai")
			}

			audit := logService.NewLogAktivitasService(rt.tables, metrics.New(), rt.log)
			svc := userService.NewUserService(rt.tables, audit, rt.log)
			u, err := svc.Create(cmd.Context(), helper.Actor{ID: uuid.Nil, Role: constants.RoleAdmin}, req)
			if err != nil {
				return err
			}
			rt.log.Info("👤 User dibuat", zap.String("id", u.ID.String()), zap.String("username", u.Username), zap.String("role", u.Role))
			fmt.Fprintln(cmd.OutOrStdout(), u.ID.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Username, "username", "", "username (min 3)")
	cmd.Flags().StringVar(&req.Nama, "name", "", "nama lengkap")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (min 8)")
	cmd.Flags().StringVar(&req.Role, "role", constants.RoleAsatidz, "role: "+strings.Join(constants.AllRoles, " | "))
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
