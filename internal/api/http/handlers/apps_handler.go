package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/developer-portal/internal/api/dto"
	"github.com/spec-kit/developer-portal/internal/auth"
	"github.com/spec-kit/developer-portal/internal/domain"
	"github.com/spec-kit/developer-portal/internal/service"
)

// AppsHandler exposes the create-app wizard endpoints inside the
// dashboard area. The gate has already admitted the request; the claim
// in locals identifies the owner.
type AppsHandler struct {
	apps *service.AppService
}

// NewAppsHandler constructs the handler.
func NewAppsHandler(appService *service.AppService) *AppsHandler {
	return &AppsHandler{apps: appService}
}

func appPayload(app *domain.App) dto.AppResponse {
	return dto.AppResponse{
		ID:        app.ID,
		Name:      app.Name,
		Category:  app.Category,
		IconURL:   app.IconURL,
		Status:    string(app.Status),
		CreatedAt: app.CreatedAt,
	}
}

// Create handles POST /dashboard/apps.
func (h *AppsHandler) Create(c *fiber.Ctx) error {
	claim, ok := auth.ClaimFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.CreateAppRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	app, err := h.apps.CreateApp(c.Context(), claim.SubjectID, service.CreateAppParams{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		IconURL:     req.IconURL,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": appPayload(app),
	})
}

// List handles GET /dashboard/apps.
func (h *AppsHandler) List(c *fiber.Ctx) error {
	claim, ok := auth.ClaimFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	apps, err := h.apps.ListApps(c.Context(), claim.SubjectID)
	if err != nil {
		return err
	}

	payload := make([]dto.AppResponse, 0, len(apps))
	for _, app := range apps {
		payload = append(payload, appPayload(app))
	}

	return c.JSON(fiber.Map{"data": payload})
}
