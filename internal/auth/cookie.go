package auth

import (
	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

// SessionCookieMaxAge matches the token lifetime.
const SessionCookieMaxAge = 3600

// SetSessionCookie writes the session carrier. HttpOnly keeps the token
// away from page scripts; Secure is enabled in production only.
func SetSessionCookie(c *fiber.Ctx, token string, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   SessionCookieMaxAge,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSessionCookie expires the carrier. Logout is purely client-side
// state removal; tokens are not revoked server-side.
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
