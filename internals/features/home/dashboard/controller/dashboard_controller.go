package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/features/home/dashboard/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/helpers/dbtime"
)

type DashboardController struct {
	svc *service.DashboardService
	log *zap.Logger
}

func NewDashboardController(svc *service.DashboardService, log *zap.Logger) *DashboardController {
	return &DashboardController{svc: svc, log: log}
}

// GET /api/dashboard/menu
func (dc *DashboardController) GetMenu(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Menu", service.MenuFor(actor.Role))
}

// GET /api/dashboard/stats?tanggal=YYYY-MM-DD
func (dc *DashboardController) GetStats(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	tanggal := dbtime.Today()
	if raw := c.Query("tanggal"); raw != "" {
		if tanggal, err = dbtime.ParseDate(raw); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal harus YYYY-MM-DD")
		}
	}

	stats, err := dc.svc.Stats(c.UserContext(), actor, tanggal)
	if err != nil {
		return helper.JsonFailure(c, dc.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonOK(c, "Statistik dashboard", stats)
}
