package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/features/home/pengumuman/dto"
	"tahfidz_backend/internals/features/home/pengumuman/service"
	helper "tahfidz_backend/internals/helpers"
)

type PengumumanController struct {
	svc *service.PengumumanService
	log *zap.Logger
}

func NewPengumumanController(svc *service.PengumumanService, log *zap.Logger) *PengumumanController {
	return &PengumumanController{svc: svc, log: log}
}

var pengumumanSortColumns = map[string]string{
	"tanggal_terbit": "tanggal_terbit",
	"judul":          "judul",
	"created_at":     "created_at",
}

// GET /api/pengumuman?q=&kategori=&page=&per_page=&sort_by=&order=
func (pc *PengumumanController) GetPengumuman(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "tanggal_terbit", "desc", helper.DefaultOpts)
	q := p.Query(pengumumanSortColumns, "tanggal_terbit", "judul", "isi")

	rows, total, err := pc.svc.List(c.UserContext(), actor, strings.TrimSpace(c.Query("kategori")), q)
	if err != nil {
		return helper.JsonFailure(c, pc.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonList(c, "Daftar pengumuman", rows, p.Pagination(total))
}

// GET /api/pengumuman/:id (id atau slug)
func (pc *PengumumanController) GetPengumumanByID(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	var res dto.PengumumanResponse
	if id, perr := helper.ParseUUIDParam(c, "id"); perr == nil {
		res, err = pc.svc.Get(c.UserContext(), actor, id)
	} else {
		res, err = pc.svc.GetBySlug(c.UserContext(), actor, strings.ToLower(strings.TrimSpace(c.Params("id"))))
	}
	if err != nil {
		return helper.JsonFailure(c, pc.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonOK(c, "Detail pengumuman", res)
}

// POST /api/pengumuman
func (pc *PengumumanController) CreatePengumuman(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	var req dto.CreatePengumumanRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	res, err := pc.svc.Create(c.UserContext(), actor, req)
	if err != nil {
		return helper.JsonFailure(c, pc.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonCreated(c, "Pengumuman berhasil dibuat", res)
}

// PATCH /api/pengumuman/:id
func (pc *PengumumanController) UpdatePengumuman(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdatePengumumanRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	res, err := pc.svc.Update(c.UserContext(), actor, id, req)
	if err != nil {
		return helper.JsonFailure(c, pc.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonUpdated(c, "Pengumuman berhasil diperbarui", res)
}

// DELETE /api/pengumuman/:id
func (pc *PengumumanController) DeletePengumuman(c *fiber.Ctx) error {
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
	return helper.JsonDeleted(c, "Pengumuman berhasil dihapus", fiber.Map{"id": id})
}
