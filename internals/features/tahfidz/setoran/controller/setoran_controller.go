package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/features/tahfidz/setoran/dto"
	"tahfidz_backend/internals/features/tahfidz/setoran/service"
	helper "tahfidz_backend/internals/helpers"
)

type SetoranController struct {
	svc *service.SetoranService
	log *zap.Logger
}

func NewSetoranController(svc *service.SetoranService, log *zap.Logger) *SetoranController {
	return &SetoranController{svc: svc, log: log}
}

var setoranSortColumns = map[string]string{
	"tanggal":    "tanggal",
	"juz":        "juz",
	"surah":      "surah",
	"created_at": "created_at",
}

// GET /api/setoran?id_santri=&id_asatidz=&status=&tanggal=&q=&page=&per_page=&sort_by=&order=
func (sc *SetoranController) GetSetoran(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	var f service.ListFilter
	if f.SantriID, err = helper.ParseUUIDQuery(c, "id_santri"); err != nil {
		return err
	}
	if f.AsatidzID, err = helper.ParseUUIDQuery(c, "id_asatidz"); err != nil {
		return err
	}
	if f.Tanggal, err = helper.ParseDateQuery(c, "tanggal"); err != nil {
		return err
	}
	f.Status = c.Query("status")

	p := helper.ParseFiber(c, "tanggal", "desc", helper.DefaultOpts)
	q := p.Query(setoranSortColumns, "tanggal", "surah")

	rows, total, err := sc.svc.List(c.UserContext(), actor, f, q)
	if err != nil {
		return helper.JsonFailure(c, sc.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonList(c, "Daftar setoran", rows, p.Pagination(total))
}

// GET /api/setoran/:id
func (sc *SetoranController) GetSetoranByID(c *fiber.Ctx) error {
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
	return helper.JsonOK(c, "Detail setoran", res)
}

// POST /api/setoran
func (sc *SetoranController) CreateSetoran(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateSetoranRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	res, err := sc.svc.Create(c.UserContext(), actor, req)
	if err != nil {
		return helper.JsonFailure(c, sc.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonCreated(c, "Setoran berhasil dicatat", res)
}

// PATCH /api/setoran/:id
func (sc *SetoranController) UpdateSetoran(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateSetoranRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	res, err := sc.svc.Update(c.UserContext(), actor, id, req)
	if err != nil {
		return helper.JsonFailure(c, sc.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonUpdated(c, "Setoran berhasil diperbarui", res)
}

// DELETE /api/setoran/:id
func (sc *SetoranController) DeleteSetoran(c *fiber.Ctx) error {
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
	return helper.JsonDeleted(c, "Setoran berhasil dihapus", fiber.Map{"id": id})
}
