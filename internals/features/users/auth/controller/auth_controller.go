package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	dashboardService "tahfidz_backend/internals/features/home/dashboard/service"
	"tahfidz_backend/internals/features/users/auth/dto"
	"tahfidz_backend/internals/features/users/auth/service"
	userDTO "tahfidz_backend/internals/features/users/user/dto"
	helper "tahfidz_backend/internals/helpers"
)

const accessCookie = "access_token"

type AuthController struct {
	svc *service.AuthService
	log *zap.Logger
}

func NewAuthController(svc *service.AuthService, log *zap.Logger) *AuthController {
	return &AuthController{svc: svc, log: log}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	req.Normalize()
	if fields := helper.ValidateStruct(req); fields != nil {
		return helper.JsonValidationError(c, fields)
	}

	res, err := ac.svc.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, helper.ErrInvalidCredentials) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Username atau password salah")
		}
		return helper.JsonFailure(c, ac.log, err, "Gagal login")
	}

	c.Cookie(&fiber.Cookie{
		Name:     accessCookie,
		Value:    res.Token,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  res.ExpiresAt,
	})

	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		AccessToken: res.Token,
		ExpiresAt:   res.ExpiresAt,
		User:        userDTO.FromModel(res.User),
		Menu:        dashboardService.MenuFor(res.User.Role),
	})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak ditemukan")
	}
	if err := ac.svc.Logout(c.UserContext(), raw); err != nil {
		return helper.JsonFailure(c, ac.log, err, "Gagal logout")
	}

	c.Cookie(&fiber.Cookie{
		Name:     accessCookie,
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
	})
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	u, err := ac.svc.Me(c.UserContext(), actor)
	if err != nil {
		return helper.JsonFailure(c, ac.log, err, helper.MsgLoadFailed)
	}
	return helper.JsonOK(c, "Data user", dto.MeResponse{
		User: userDTO.FromModel(u),
		Menu: dashboardService.MenuFor(u.Role),
	})
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	if err := ac.svc.ChangePassword(c.UserContext(), actor, req.CurrentPassword, req.NewPassword); err != nil {
		return helper.JsonFailure(c, ac.log, err, helper.MsgSaveFailed)
	}
	return helper.JsonOK(c, "Password berhasil diubah", nil)
}
