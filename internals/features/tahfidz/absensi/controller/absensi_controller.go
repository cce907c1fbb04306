package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/features/tahfidz/absensi/dto"
	"tahfidz_backend/internals/features/tahfidz/absensi/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/helpers/dbtime"
)

type AbsensiController struct {
	svc *service.AbsensiService
	log *zap.Logger
}

func NewAbsensiController(svc *service.AbsensiService, log *zap.Logger) *AbsensiController {
	return &AbsensiController{svc: svc, log: log}
}

var absensiSortColumns = map[string]string{
	"tanggal":    "tanggal",
	"status":     "status",
	"created_at": "created_at",
}

// GET /api/absensi?id_santri=&tanggal=&status=&page=&per_page=&sort_by=&order=
func (ac *AbsensiController) GetAbsensi(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	var f service.ListFilter
	if f.SantriID, err = helper.ParseUUIDQuery(c, "id_santri"); err != nil {
		return err
	}
	if f.Tanggal, err = helper.ParseDateQuery(c, "tanggal"); err != nil {
		return err
	}
	f.Status = c.Query("status")

	p := helper.ParseFiber(c, "tanggal", "desc", helper.DefaultOpts)
	q := p.Query(absensiSortColumns, "tanggal")

	rows, total, err := ac.svc.List(c.UserContext(), actor, f, q)
	if err != nil {
		return helper.JsonFailure(c, ac.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonList(c, "Daftar absensi", rows, p.Pagination(total))
}

// GET /api/absensi/rekap?tanggal=&id_halaqoh=
func (ac *AbsensiController) GetRekap(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	tanggal := dbtime.Today()
	if d, err := helper.ParseDateQuery(c, "tanggal"); err != nil {
		return err
	} else if d != nil {
		tanggal = *d
	}
	halaqohID, err := helper.ParseUUIDQuery(c, "id_halaqoh")
	if err != nil {
		return err
	}

	res, err := ac.svc.Rekap(c.UserContext(), actor, tanggal, halaqohID)
	if err != nil {
		return helper.JsonFailure(c, ac.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonOK(c, "Rekap absensi", res)
}

// GET /api/absensi/:id
func (ac *AbsensiController) GetAbsensiByID(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	res, err := ac.svc.Get(c.UserContext(), actor, id)
	if err != nil {
		return helper.JsonFailure(c, ac.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonOK(c, "Detail absensi", res)
}

// POST /api/absensi
func (ac *AbsensiController) CreateAbsensi(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateAbsensiRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	res, err := ac.svc.Create(c.UserContext(), actor, req)
	if err != nil {
		return helper.JsonFailure(c, ac.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonCreated(c, "Absensi berhasil dicatat", res)
}

// POST /api/absensi/bulk
func (ac *AbsensiController) BulkAbsensi(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	var req dto.BulkAbsensiRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	res, err := ac.svc.Bulk(c.UserContext(), actor, req)
	if err != nil {
		return helper.JsonFailure(c, ac.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonOK(c, "Absensi berhasil disimpan", res)
}

// PATCH /api/absensi/:id
func (ac *AbsensiController) UpdateAbsensi(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateAbsensiRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	res, err := ac.svc.Update(c.UserContext(), actor, id, req)
	if err != nil {
		return helper.JsonFailure(c, ac.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonUpdated(c, "Absensi berhasil diperbarui", res)
}

// DELETE /api/absensi/:id
func (ac *AbsensiController) DeleteAbsensi(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ac.svc.Delete(c.UserContext(), actor, id); err != nil {
		return helper.JsonFailure(c, ac.log, err, helper.MsgDeleteFailed)
	}
	return helper.JsonDeleted(c, "Absensi berhasil dihapus", fiber.Map{"id": id})
}
