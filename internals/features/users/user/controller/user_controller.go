package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/features/users/user/dto"
	"tahfidz_backend/internals/features/users/user/service"
	helper "tahfidz_backend/internals/helpers"
)

type UserController struct {
	svc *service.UserService
	log *zap.Logger
}

func NewUserController(svc *service.UserService, log *zap.Logger) *UserController {
	return &UserController{svc: svc, log: log}
}

var userSortColumns = map[string]string{
	"nama":       "nama",
	"username":   "username",
	"role":       "role",
	"created_at": "created_at",
}

// GET /api/users?q=&role=&is_active=&page=&per_page=&sort_by=&order=
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "nama", "asc", helper.AdminOpts)
	q := p.Query(userSortColumns, "nama", "username", "nama")

	f := service.ListFilter{Role: c.Query("role")}
	if raw := c.Query("is_active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "is_active harus true/false")
		}
		f.IsActive = &v
	}

	rows, total, err := uc.svc.List(c.UserContext(), f, q)
	if err != nil {
		return helper.JsonFailure(c, uc.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonList(c, "Daftar user", dto.FromModels(rows), p.Pagination(total))
}

// GET /api/users/asatidz
func (uc *UserController) GetAsatidz(c *fiber.Ctx) error {
	rows, err := uc.svc.ListAsatidz(c.UserContext())
	if err != nil {
		return helper.JsonFailure(c, uc.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonOK(c, "Daftar asatidz", dto.FromModels(rows))
}

// GET /api/users/:id
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	u, err := uc.svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonFailure(c, uc.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonOK(c, "Detail user", dto.FromModel(u))
}

// POST /api/users
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	req.Normalize()
	if fields := helper.ValidateStruct(req); fields != nil {
		return helper.JsonValidationError(c, fields)
	}

	u, err := uc.svc.Create(c.UserContext(), actor, req)
	if err != nil {
		return helper.JsonFailure(c, uc.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonCreated(c, "User berhasil dibuat", dto.FromModel(u))
}

// PATCH /api/users/:id
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	req.Normalize()
	if fields := helper.ValidateStruct(req); fields != nil {
		return helper.JsonValidationError(c, fields)
	}

	u, err := uc.svc.Update(c.UserContext(), actor, id, req)
	if err != nil {
		return helper.JsonFailure(c, uc.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonUpdated(c, "User berhasil diperbarui", dto.FromModel(u))
}

// DELETE /api/users/:id
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
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
	return helper.JsonDeleted(c, "User berhasil dihapus", fiber.Map{"id": id})
}
