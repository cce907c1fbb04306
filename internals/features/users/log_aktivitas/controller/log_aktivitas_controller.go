package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/features/users/log_aktivitas/service"
	helper "tahfidz_backend/internals/helpers"
)

type LogAktivitasController struct {
	svc *service.LogAktivitasService
	log *zap.Logger
}

func NewLogAktivitasController(svc *service.LogAktivitasService, log *zap.Logger) *LogAktivitasController {
	return &LogAktivitasController{svc: svc, log: log}
}

var logSortColumns = map[string]string{
	"created_at": "created_at",
	"aksi":       "aksi",
}

// GET /api/log-aktivitas?user_id=&aksi=&page=&per_page=
func (lc *LogAktivitasController) GetLogs(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	q := p.Query(logSortColumns, "created_at", "aksi")

	userID, err := helper.ParseUUIDQuery(c, "user_id")
	if err != nil {
		return err
	}
	f := service.ListFilter{UserID: userID, Aksi: strings.TrimSpace(c.Query("aksi"))}

	rows, total, err := lc.svc.List(c.UserContext(), f, q)
	if err != nil {
		return helper.JsonFailure(c, lc.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonList(c, "Log aktivitas", rows, p.Pagination(total))
}
