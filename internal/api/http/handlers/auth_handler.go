package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/developer-portal/internal/api/dto"
	"github.com/spec-kit/developer-portal/internal/auth"
	"github.com/spec-kit/developer-portal/internal/config"
	"github.com/spec-kit/developer-portal/internal/domain"
	"github.com/spec-kit/developer-portal/internal/service"
)

// AuthHandler exposes session endpoints.
type AuthHandler struct {
	auth   *service.AuthService
	appCfg config.AppConfig
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService, appCfg config.AppConfig) *AuthHandler {
	return &AuthHandler{auth: authService, appCfg: appCfg}
}

func userPayload(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          string(user.Role),
		AvatarURL:     user.AvatarURL,
		PhoneVerified: user.PhoneVerified,
	}
}

// Login handles POST /api/auth/login. On success the session cookie is
// set; on failure the response never says whether the email or the
// password was wrong.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	auth.SetSessionCookie(c, token, h.appCfg.IsProduction())

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": userPayload(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	user, token, exp, err := h.auth.Register(c.Context(), req.Name, req.Email, req.PhoneNumber, req.Password)
	if err != nil {
		return err
	}

	auth.SetSessionCookie(c, token, h.appCfg.IsProduction())

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": userPayload(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Me handles GET /api/auth/me: returns the decoded claim for a valid
// session, otherwise 401 with a null user.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	token := c.Cookies(auth.SessionCookieName)
	if token == "" {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"user": nil})
	}

	claim, ok := h.auth.TokenManager().Verify(token)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"user": nil})
	}

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":    claim.SubjectID,
			"name":  claim.Name,
			"email": claim.Email,
			"role":  claim.Role,
		},
	})
}

// Logout handles POST /api/auth/logout: clears the session carrier.
// Tokens are stateless, so nothing is revoked server-side.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	_ = h.auth.Logout(c.Context(), c.Cookies(auth.SessionCookieName))
	auth.ClearSessionCookie(c)
	return c.JSON(fiber.Map{"success": true})
}

// UpdateProfile handles POST /api/users/profile. Requires a valid
// session (enforced by RequireSession on the route).
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	claim, ok := auth.ClaimFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.auth.UpdateProfile(c.Context(), claim.SubjectID, req.Name, req.AvatarURL)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    userPayload(user),
	})
}
