// internals/middlewares/auth/claim_utils.go
package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var (
	errNoToken      = errors.New("unauthorized - No token provided")
	errInvalidToken = errors.New("unauthorized - Invalid token format")
)

// extractBearerToken: Authorization header, fallback cookie access_token.
func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		if cookieTok := strings.TrimSpace(c.Cookies("access_token")); cookieTok != "" {
			return strings.Trim(cookieTok, "\"'"), nil
		}
		return "", errNoToken
	}

	// toleransi spasi ganda & case-insensitive
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errInvalidToken
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", errInvalidToken
	}
	return tok, nil
}
