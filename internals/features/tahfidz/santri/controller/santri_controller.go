package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/features/tahfidz/santri/dto"
	"tahfidz_backend/internals/features/tahfidz/santri/service"
	helper "tahfidz_backend/internals/helpers"
)

type SantriController struct {
	svc *service.SantriService
	log *zap.Logger
}

func NewSantriController(svc *service.SantriService, log *zap.Logger) *SantriController {
	return &SantriController{svc: svc, log: log}
}

var santriSortColumns = map[string]string{
	"nama":          "nama",
	"nis":           "nis",
	"tanggal_masuk": "tanggal_masuk",
	"created_at":    "created_at",
}

// GET /api/santri?q=&id_halaqoh=&id_kelas=&id_wali=&status=&page=&per_page=&sort_by=&order=
func (sc *SantriController) GetSantri(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	var f service.ListFilter
	if f.HalaqohID, err = helper.ParseUUIDQuery(c, "id_halaqoh"); err != nil {
		return err
	}
	if f.KelasID, err = helper.ParseUUIDQuery(c, "id_kelas"); err != nil {
		return err
	}
	if f.WaliID, err = helper.ParseUUIDQuery(c, "id_wali"); err != nil {
		return err
	}
	f.Status = c.Query("status")

	p := helper.ParseFiber(c, "nama", "asc", helper.DefaultOpts)
	q := p.Query(santriSortColumns, "nama", "nama", "nis")

	rows, total, err := sc.svc.List(c.UserContext(), actor, f, q)
	if err != nil {
		return helper.JsonFailure(c, sc.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonList(c, "Daftar santri", rows, p.Pagination(total))
}

// GET /api/santri/:id
func (sc *SantriController) GetSantriByID(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	res, err := sc.svc.Get(c.UserContext(), actor, id)
	if err != nil {
		return helper.JsonFailure(c, sc.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonOK(c, "Detail santri", res)
}

// POST /api/santri
func (sc *SantriController) CreateSantri(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateSantriRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	req.Normalize()
	if fields := helper.ValidateStruct(req); fields != nil {
		return helper.JsonValidationError(c, fields)
	}

	res, err := sc.svc.Create(c.UserContext(), actor, req)
	if err != nil {
		return helper.JsonFailure(c, sc.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonCreated(c, "Santri berhasil ditambahkan", res)
}

// PATCH /api/santri/:id
func (sc *SantriController) UpdateSantri(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateSantriRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	req.Normalize()
	if fields := helper.ValidateStruct(req); fields != nil {
		return helper.JsonValidationError(c, fields)
	}

	res, err := sc.svc.Update(c.UserContext(), actor, id, req)
	if err != nil {
		return helper.JsonFailure(c, sc.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonUpdated(c, "Santri berhasil diperbarui", res)
}

// DELETE /api/santri/:id
func (sc *SantriController) DeleteSantri(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := sc.svc.Delete(c.UserContext(), actor, id); err != nil {
		return helper.JsonFailure(c, sc.log, err, helper.MsgDeleteFailed)
	}
	return helper.JsonDeleted(c, "Santri berhasil dihapus", fiber.Map{"id": id})
}
