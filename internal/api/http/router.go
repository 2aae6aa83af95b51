package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sitiket/tiketops/internal/api/http/handlers"
	"github.com/sitiket/tiketops/internal/auth"
	"github.com/sitiket/tiketops/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Reports        *handlers.ReportsHandler
	Settings       *handlers.SettingsHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Users.Login)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	tickets := api.Group("/tickets")
	tickets.Get("", cfg.Tickets.List)
	tickets.Post("", auth.RequireRole(domain.RoleAdmin, domain.RoleHD), cfg.Tickets.Import)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Tickets.Delete)
	tickets.Post("/:id/progress", auth.RequireRole(domain.RoleAdmin, domain.RoleHD, domain.RoleTA), cfg.Tickets.AddProgress)
	tickets.Post("/:id/assign", auth.RequireRole(domain.RoleAdmin, domain.RoleHD), cfg.Tickets.Assign)
	tickets.Post("/:id/close", auth.RequireRole(domain.RoleAdmin, domain.RoleHD), cfg.Tickets.Close)
	tickets.Get("/:id/whatsapp", cfg.Tickets.WhatsApp)

	reports := api.Group("/reports")
	reports.Get("/by-category", cfg.Reports.ByCategory)
	reports.Get("/by-day", cfg.Reports.ByDay)
	reports.Get("/export", cfg.Reports.ExportCSV)
	reports.Get("/export-summary", cfg.Reports.ExportSummaryCSV)

	settingsGroup := api.Group("/settings")
	settingsGroup.Get("", cfg.Settings.Get)
	settingsGroup.Put("", auth.RequireRole(domain.RoleAdmin), cfg.Settings.Update)
	settingsGroup.Post("/reset", auth.RequireRole(domain.RoleAdmin), cfg.Settings.Reset)
	settingsGroup.Get("/options", cfg.Settings.GetOptions)
	settingsGroup.Put("/options", auth.RequireRole(domain.RoleAdmin), cfg.Settings.UpdateOptions)

	users := api.Group("/users", auth.RequireRole(domain.RoleAdmin))
	users.Get("", cfg.Users.List)
	users.Post("", cfg.Users.Create)
	users.Patch("/:id/active", cfg.Users.SetActive)
}
