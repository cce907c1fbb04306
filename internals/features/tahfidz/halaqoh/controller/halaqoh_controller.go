package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/features/tahfidz/halaqoh/dto"
	"tahfidz_backend/internals/features/tahfidz/halaqoh/service"
	helper "tahfidz_backend/internals/helpers"
)

type HalaqohController struct {
	svc *service.HalaqohService
	log *zap.Logger
}

func NewHalaqohController(svc *service.HalaqohService, log *zap.Logger) *HalaqohController {
	return &HalaqohController{svc: svc, log: log}
}

var halaqohSortColumns = map[string]string{
	"nama":       "nama_halaqoh",
	"created_at": "created_at",
}

// GET /api/halaqoh?q=&id_asatidz=&page=&per_page=&sort_by=&order=
func (hc *HalaqohController) GetHalaqoh(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	asatidzID, err := helper.ParseUUIDQuery(c, "id_asatidz")
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "nama", "asc", helper.DefaultOpts)
	q := p.Query(halaqohSortColumns, "nama", "nama_halaqoh")

	rows, total, err := hc.svc.List(c.UserContext(), actor, asatidzID, q)
	if err != nil {
		return helper.JsonFailure(c, hc.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonList(c, "Daftar halaqoh", rows, p.Pagination(total))
}

// GET /api/halaqoh/:id
func (hc *HalaqohController) GetHalaqohByID(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	res, err := hc.svc.Get(c.UserContext(), actor, id)
	if err != nil {
		return helper.JsonFailure(c, hc.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonOK(c, "Detail halaqoh", res)
}

// POST /api/halaqoh
func (hc *HalaqohController) CreateHalaqoh(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateHalaqohRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	req.Normalize()
	if fields := helper.ValidateStruct(req); fields != nil {
		return helper.JsonValidationError(c, fields)
	}

	res, err := hc.svc.Create(c.UserContext(), actor, req)
	if err != nil {
		return helper.JsonFailure(c, hc.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonCreated(c, "Halaqoh berhasil dibuat", res)
}

// PATCH /api/halaqoh/:id
func (hc *HalaqohController) UpdateHalaqoh(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateHalaqohRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	req.Normalize()
	if fields := helper.ValidateStruct(req); fields != nil {
		return helper.JsonValidationError(c, fields)
	}

	res, err := hc.svc.Update(c.UserContext(), actor, id, req)
	if err != nil {
		return helper.JsonFailure(c, hc.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonUpdated(c, "Halaqoh berhasil diperbarui", res)
}

// DELETE /api/halaqoh/:id
func (hc *HalaqohController) DeleteHalaqoh(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := hc.svc.Delete(c.UserContext(), actor, id); err != nil {
		return helper.JsonFailure(c, hc.log, err, helper.MsgDeleteFailed)
	}
	return helper.JsonDeleted(c, "Halaqoh berhasil dihapus", fiber.Map{"id": id})
}
