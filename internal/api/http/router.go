package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gym-service/internal/api/http/handlers"
	"github.com/spec-kit/gym-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Sessions       *handlers.SessionsHandler
	Students       *handlers.StudentsHandler
	Plans          *handlers.PlansHandler
	Registrations  *handlers.RegistrationsHandler
	Checkins       *handlers.CheckinsHandler
	HelpOrders     *handlers.HelpOrdersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Check-ins and help-order creation are
// kiosk endpoints used by students on premises; everything else that
// mutates state requires an admin session.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Post("/sessions", cfg.Sessions.Create)

	app.Post("/students/:id/checkins", cfg.Checkins.Create)
	app.Get("/students/:id/checkins", cfg.Checkins.List)
	app.Post("/students/:id/help-orders", cfg.HelpOrders.Create)
	app.Get("/students/:id/help-orders", cfg.HelpOrders.ListForStudent)

	admin := app.Group("", cfg.AuthMiddleware.Handle)

	admin.Post("/students", cfg.Students.Create)
	admin.Get("/students", cfg.Students.List)
	admin.Get("/students/:id", cfg.Students.Get)
	admin.Put("/students/:id", cfg.Students.Update)
	admin.Delete("/students/:id", cfg.Students.Delete)

	admin.Post("/plans", cfg.Plans.Create)
	admin.Get("/plans", cfg.Plans.List)
	admin.Get("/plans/:id", cfg.Plans.Get)
	admin.Put("/plans/:id", cfg.Plans.Update)
	admin.Delete("/plans/:id", cfg.Plans.Delete)

	admin.Post("/registrations", cfg.Registrations.Create)
	admin.Get("/registrations", cfg.Registrations.List)
	admin.Get("/registrations/:id", cfg.Registrations.Get)
	admin.Put("/registrations/:id", cfg.Registrations.Update)
	admin.Delete("/registrations/:id", cfg.Registrations.Delete)

	admin.Get("/help-orders", cfg.HelpOrders.ListUnanswered)
	admin.Put("/help-orders/:id/answer", cfg.HelpOrders.Answer)
}
