package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/features/tahfidz/ujian/dto"
	"tahfidz_backend/internals/features/tahfidz/ujian/service"
	helper "tahfidz_backend/internals/helpers"
)

type UjianController struct {
	svc *service.UjianService
	log *zap.Logger
}

func NewUjianController(svc *service.UjianService, log *zap.Logger) *UjianController {
	return &UjianController{svc: svc, log: log}
}

var ujianSortColumns = map[string]string{
	"tanggal":    "tanggal",
	"tahap":      "tahap",
	"jenis":      "jenis",
	"created_at": "created_at",
}

// GET /api/ujian?id_santri=&jenis=&tahap=&lulus=&page=&per_page=&sort_by=&order=
func (uc *UjianController) GetUjian(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	var f service.ListFilter
	if f.SantriID, err = helper.ParseUUIDQuery(c, "id_santri"); err != nil {
		return err
	}
	f.Jenis = strings.ToLower(strings.TrimSpace(c.Query("jenis")))
	f.Tahap = c.QueryInt("tahap", 0)
	if raw := c.Query("lulus"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "lulus harus true/false")
		}
		f.Lulus = &v
	}

	p := helper.ParseFiber(c, "tanggal", "desc", helper.DefaultOpts)
	q := p.Query(ujianSortColumns, "tanggal")

	rows, total, err := uc.svc.List(c.UserContext(), actor, f, q)
	if err != nil {
		return helper.JsonFailure(c, uc.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonList(c, "Daftar ujian", rows, p.Pagination(total))
}

// GET /api/ujian/thresholds
func (uc *UjianController) GetThresholds(c *fiber.Ctx) error {
	return helper.JsonOK(c, "Tabel ambang kelulusan", uc.svc.Thresholds())
}

// GET /api/ujian/progress/:santri_id
func (uc *UjianController) GetProgress(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	santriID, err := helper.ParseUUIDParam(c, "santri_id")
	if err != nil {
		return err
	}
	res, err := uc.svc.Progress(c.UserContext(), actor, santriID)
	if err != nil {
		return helper.JsonFailure(c, uc.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonOK(c, "Progres ujian santri", res)
}

// GET /api/ujian/:id
func (uc *UjianController) GetUjianByID(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	res, err := uc.svc.Get(c.UserContext(), actor, id)
	if err != nil {
		return helper.JsonFailure(c, uc.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonOK(c, "Detail ujian", res)
}

// POST /api/ujian
func (uc *UjianController) CreateUjian(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateUjianRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	res, err := uc.svc.Create(c.UserContext(), actor, req)
	if err != nil {
		return helper.JsonFailure(c, uc.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonCreated(c, "Ujian berhasil dicatat", res)
}

// PATCH /api/ujian/:id
func (uc *UjianController) UpdateUjian(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateUjianRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	res, err := uc.svc.Update(c.UserContext(), actor, id, req)
	if err != nil {
		return helper.JsonFailure(c, uc.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonUpdated(c, "Ujian berhasil diperbarui", res)
}

// DELETE /api/ujian/:id
func (uc *UjianController) DeleteUjian(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := uc.svc.Delete(c.UserContext(), actor, id); err != nil {
		return helper.JsonFailure(c, uc.log, err, helper.MsgDeleteFailed)
	}
	return helper.JsonDeleted(c, "Ujian berhasil dihapus", fiber.Map{"id": id})
}
