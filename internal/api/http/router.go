package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/developer-portal/internal/api/http/handlers"
	"github.com/spec-kit/developer-portal/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	OTP       *handlers.OTPHandler
	Apps      *handlers.AppsHandler
	Dashboard *handlers.DashboardHandler
	Admin     *handlers.AdminHandler
	Gate      *auth.Gate
	Tokens    *auth.TokenManager
}

// RegisterRoutes wires HTTP routes. The gate runs in front of every
// request; paths outside its policy table pass through untouched.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", cfg.Auth.Me)

	otpGroup := api.Group("/otp")
	otpGroup.Post("/send", cfg.OTP.Send)
	otpGroup.Post("/resend", cfg.OTP.Resend)
	otpGroup.Post("/verify", cfg.OTP.Verify)
	otpGroup.Get("/status", cfg.OTP.Status)

	api.Post("/users/profile", auth.RequireSession(cfg.Tokens), cfg.Auth.UpdateProfile)

	dashboard := app.Group("/dashboard")
	dashboard.Get("/summary", cfg.Dashboard.Summary)
	dashboard.Get("/leaderboard", cfg.Dashboard.Leaderboard)
	dashboard.Get("/apps", cfg.Apps.List)
	dashboard.Post("/apps", cfg.Apps.Create)

	admin := app.Group("/admin")
	admin.Get("/users", cfg.Admin.ListUsers)

	superadmin := app.Group("/superadmin")
	superadmin.Get("/overview", cfg.Admin.Overview)
}
