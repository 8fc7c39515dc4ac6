package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crisis-support-service/internal/api/http/handlers"
	"github.com/spec-kit/crisis-support-service/internal/auth"
	"github.com/spec-kit/crisis-support-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Auth            *handlers.AuthHandler
	Children        *handlers.ChildrenHandler
	Crises          *handlers.CrisesHandler
	Events          *handlers.EventsHandler
	Environments    *handlers.EnvironmentsHandler
	Personalization *handlers.PersonalizationHandler
	AuthMiddleware  *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authProtected.Get("/me", cfg.Auth.Me)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)

	children := app.Group("/children", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	children.Post("", cfg.Children.Create)
	children.Get("/:id", cfg.Children.Get)
	children.Patch("/:id", cfg.Children.Update)
	children.Delete("/:id", auth.RequireProfile(domain.ProfileAdmin), cfg.Children.Delete)
	children.Get("/:id/history", cfg.Crises.History)

	staffOnly := auth.RequireProfile(domain.ProfileAdmin, domain.ProfileSchoolStaff)
	children.Post("/:id/crises", staffOnly, cfg.Crises.RegisterCrisis)
	children.Patch("/:id/crises/:crisisId/efficacy", staffOnly, cfg.Crises.MarkEfficacy)
	children.Post("/:id/interventions", staffOnly, cfg.Crises.RegisterIntervention)

	// the panic button is open to any profile with access to the child
	children.Post("/:id/support-requests", cfg.Crises.RequestSupport)
	children.Patch("/:id/support-requests/:requestId/status", staffOnly, cfg.Crises.UpdateSupportStatus)

	children.Post("/:id/events", cfg.Events.Create)
	children.Get("/:id/events", cfg.Events.List)
	children.Get("/:id/sensory-profile", cfg.Personalization.Get)
	children.Put("/:id/sensory-profile", cfg.Personalization.Update)

	eventsGroup := app.Group("/events", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	eventsGroup.Post("/:eventId/confirm", cfg.Events.Confirm)
	eventsGroup.Post("/:eventId/cancel", cfg.Events.Cancel)

	schools := app.Group("/schools", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	schools.Get("/:schoolId/children", cfg.Children.ListBySchool)
	schools.Get("/:schoolId/environments", cfg.Environments.ListBySchool)

	environments := app.Group("/environments", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	environments.Post("", staffOnly, cfg.Environments.Create)
	environments.Patch("/:envId", staffOnly, cfg.Environments.Update)
	environments.Delete("/:envId", staffOnly, cfg.Environments.Delete)
}
