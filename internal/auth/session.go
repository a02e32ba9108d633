package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/developer-portal/pkg/util"
)

// RequireSession guards API endpoints that need an authenticated caller
// but live outside the gate's redirect-based prefixes. Unlike the gate
// it answers 401 JSON instead of redirecting.
func RequireSession(tokens *TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		if token == "" {
			return apperrors.NewUnauthorized("authentication required")
		}
		claim, ok := tokens.Verify(token)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		c.Locals(claimKey, claim)
		return c.Next()
	}
}
