// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	helper "tahfidz_backend/internals/helpers"
)

// TokenVerifier memeriksa blacklist, tanda tangan, exp, dan status user.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, raw string) (helper.Actor, error)
}

func AuthMiddleware(v TokenVerifier, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		actor, err := v.VerifyToken(c.UserContext(), tokenString)
		if err != nil {
			switch {
			case errors.Is(err, helper.ErrForbidden):
				return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
			case errors.Is(err, helper.ErrInvalidCredentials):
				log.Debug("token ditolak", zap.String("path", c.Path()), zap.Error(err))
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token tidak valid")
			default:
				log.Error("verifikasi token gagal", zap.Error(err))
				return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
			}
		}

		c.Locals(helper.LocRawToken, tokenString)
		c.Locals(helper.LocUserID, actor.ID.String())
		c.Locals(helper.LocUserRole, actor.Role)
		c.Locals(helper.LocUserName, actor.Nama)
		return c.Next()
	}
}
