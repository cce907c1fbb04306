package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/features/tahfidz/kelas/dto"
	"tahfidz_backend/internals/features/tahfidz/kelas/service"
	helper "tahfidz_backend/internals/helpers"
)

type KelasController struct {
	svc *service.KelasService
	log *zap.Logger
}

func NewKelasController(svc *service.KelasService, log *zap.Logger) *KelasController {
	return &KelasController{svc: svc, log: log}
}

var kelasSortColumns = map[string]string{
	"nama":       "nama_kelas",
	"kategori":   "kategori",
	"program":    "program",
	"created_at": "created_at",
}

// GET /api/kelas?q=&kategori=&program=
func (kc *KelasController) GetKelas(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "nama", "asc", helper.DefaultOpts)
	q := p.Query(kelasSortColumns, "nama", "nama_kelas")
	f := service.ListFilter{Kategori: c.Query("kategori"), Program: c.Query("program")}

	rows, total, err := kc.svc.List(c.UserContext(), f, q)
	if err != nil {
		return helper.JsonFailure(c, kc.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonList(c, "Daftar kelas", rows, p.Pagination(total))
}

// GET /api/kelas/:id
func (kc *KelasController) GetKelasByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	res, err := kc.svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonFailure(c, kc.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonOK(c, "Detail kelas", res)
}

// POST /api/kelas
func (kc *KelasController) CreateKelas(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateKelasRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	req.Normalize()
	if fields := helper.ValidateStruct(req); fields != nil {
		return helper.JsonValidationError(c, fields)
	}

	res, err := kc.svc.Create(c.UserContext(), actor, req)
	if err != nil {
		return helper.JsonFailure(c, kc.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonCreated(c, "Kelas berhasil dibuat", res)
}

// PATCH /api/kelas/:id
func (kc *KelasController) UpdateKelas(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateKelasRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	res, err := kc.svc.Update(c.UserContext(), actor, id, req)
	if err != nil {
		return helper.JsonFailure(c, kc.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonUpdated(c, "Kelas berhasil diperbarui", res)
}

// DELETE /api/kelas/:id
func (kc *KelasController) DeleteKelas(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := kc.svc.Delete(c.UserContext(), actor, id); err != nil {
		return helper.JsonFailure(c, kc.log, err, helper.MsgDeleteFailed)
	}
	return helper.JsonDeleted(c, "Kelas berhasil dihapus", fiber.Map{"id": id})
}
