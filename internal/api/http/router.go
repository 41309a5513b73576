package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/copconnect/reporting-service/internal/api/http/handlers"
	"github.com/copconnect/reporting-service/internal/auth"
	"github.com/copconnect/reporting-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Reports     *handlers.ReportsHandler
	FAQs        *handlers.FAQHandler
	Guard       *auth.Guard
	AuthLimiter fiber.Handler
	Metrics     fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics)
	}

	limit := cfg.AuthLimiter
	if limit == nil {
		limit = func(c *fiber.Ctx) error { return c.Next() }
	}
	app.Post("/register", limit, cfg.Auth.Register)
	app.Post("/login", limit, cfg.Auth.Login)

	app.Get("/users/police", cfg.Guard.Allow(domain.RolePolice, domain.RoleCommunity), cfg.Auth.ListPolice)

	reports := app.Group("/reports")
	reports.Post("", cfg.Guard.Optional, cfg.Reports.File)
	reports.Get("", cfg.Guard.Allow(domain.RolePolice), cfg.Reports.List)
	reports.Patch("/:id/status", cfg.Guard.Allow(domain.RolePolice), cfg.Reports.UpdateStatus)

	faqs := app.Group("/faqs")
	faqs.Get("", cfg.FAQs.List)
	faqs.Get("/:question", cfg.FAQs.Answer)
	faqs.Post("", cfg.Guard.Allow(domain.RoleCommunity), cfg.FAQs.Create)
}
