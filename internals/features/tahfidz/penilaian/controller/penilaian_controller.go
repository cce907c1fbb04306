package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/features/tahfidz/penilaian/dto"
	"tahfidz_backend/internals/features/tahfidz/penilaian/service"
	helper "tahfidz_backend/internals/helpers"
)

type PenilaianController struct {
	svc *service.PenilaianService
	log *zap.Logger
}

func NewPenilaianController(svc *service.PenilaianService, log *zap.Logger) *PenilaianController {
	return &PenilaianController{svc: svc, log: log}
}

var penilaianSortColumns = map[string]string{
	"periode":    "periode",
	"rata_rata":  "rata_rata",
	"created_at": "created_at",
}

// GET /api/penilaian?id_santri=&periode=&predikat=&q=&page=&per_page=&sort_by=&order=
func (pc *PenilaianController) GetPenilaian(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	var f service.ListFilter
	if f.SantriID, err = helper.ParseUUIDQuery(c, "id_santri"); err != nil {
		return err
	}
	f.Periode = strings.TrimSpace(c.Query("periode"))
	f.Predikat = strings.ToUpper(strings.TrimSpace(c.Query("predikat")))

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	q := p.Query(penilaianSortColumns, "created_at", "periode")

	rows, total, err := pc.svc.List(c.UserContext(), actor, f, q)
	if err != nil {
		return helper.JsonFailure(c, pc.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonList(c, "Daftar penilaian", rows, p.Pagination(total))
}

// GET /api/penilaian/:id
func (pc *PenilaianController) GetPenilaianByID(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	res, err := pc.svc.Get(c.UserContext(), actor, id)
	if err != nil {
		return helper.JsonFailure(c, pc.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonOK(c, "Detail penilaian", res)
}

// POST /api/penilaian
func (pc *PenilaianController) CreatePenilaian(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	var req dto.CreatePenilaianRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	res, err := pc.svc.Create(c.UserContext(), actor, req)
	if err != nil {
		return helper.JsonFailure(c, pc.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonCreated(c, "Penilaian berhasil disimpan", res)
}

// PATCH /api/penilaian/:id
func (pc *PenilaianController) UpdatePenilaian(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdatePenilaianRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	res, err := pc.svc.Update(c.UserContext(), actor, id, req)
	if err != nil {
		return helper.JsonFailure(c, pc.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonUpdated(c, "Penilaian berhasil diperbarui", res)
}

// DELETE /api/penilaian/:id
func (pc *PenilaianController) DeletePenilaian(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := pc.svc.Delete(c.UserContext(), actor, id); err != nil {
		return helper.JsonFailure(c, pc.log, err, helper.MsgDeleteFailed)
	}
	return helper.JsonDeleted(c, "Penilaian berhasil dihapus", fiber.Map{"id": id})
}
