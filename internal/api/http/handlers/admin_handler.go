package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/developer-portal/internal/api/dto"
	"github.com/spec-kit/developer-portal/internal/service"
)

// AdminHandler serves the admin and superadmin areas. Role enforcement
// happens in the gate; these handlers only shape responses.
type AdminHandler struct {
	auth *service.AuthService
	apps *service.AppService
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(authService *service.AuthService, appService *service.AppService) *AdminHandler {
	return &AdminHandler{auth: authService, apps: appService}
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.auth.ListUsers(c.Context())
	if err != nil {
		return err
	}

	payload := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		payload = append(payload, userPayload(user))
	}

	return c.JSON(fiber.Map{"data": payload})
}

// Overview handles GET /superadmin/overview.
func (h *AdminHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.apps.Overview(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"total_users": overview.TotalUsers,
			"total_apps":  overview.TotalApps,
		},
	})
}
