package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/developer-portal/internal/auth"
	"github.com/spec-kit/developer-portal/internal/service"
)

// DashboardHandler serves dashboard aggregates.
type DashboardHandler struct {
	apps        *service.AppService
	leaderboard *service.LeaderboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(appService *service.AppService, leaderboard *service.LeaderboardService) *DashboardHandler {
	return &DashboardHandler{apps: appService, leaderboard: leaderboard}
}

// Summary handles GET /dashboard/summary.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	claim, ok := auth.ClaimFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	summary, err := h.apps.Summary(c.Context(), claim.SubjectID)
	if err != nil {
		return err
	}

	appMetrics := make([]fiber.Map, 0, len(summary.Apps))
	for _, m := range summary.Apps {
		appMetrics = append(appMetrics, fiber.Map{
			"app_id":       m.AppID,
			"name":         m.Name,
			"downloads":    m.Downloads,
			"active_users": m.ActiveUsers,
		})
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"total_apps":   summary.TotalApps,
			"downloads":    summary.Downloads,
			"active_users": summary.ActiveUsers,
			"apps":         appMetrics,
		},
	})
}

// Leaderboard handles GET /dashboard/leaderboard.
func (h *DashboardHandler) Leaderboard(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.leaderboard.Top()})
}
