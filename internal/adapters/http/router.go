// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mwestberg/todo-api/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Global middleware is applied in the order given; authn and the login rate
// limit are attached per route group so health and version stay open.
func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	taskHandler *handlers.TaskHandler,
	healthHandler *handlers.HealthHandler,
	versionHandler *handlers.VersionHandler,
	requireAuth func(http.Handler) http.Handler,
	loginRateLimit func(http.Handler) http.Handler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Operational endpoints (outside /api/v1 prefix, no auth).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)
	r.Get("/version", versionHandler.Version)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		// Credential endpoints: open, but rate limited per client.
		r.Group(func(r chi.Router) {
			r.Use(loginRateLimit)
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
		})

		// Everything else requires a bearer token.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/users/me", userHandler.Me)

			r.Get("/tasks", taskHandler.List)
			r.Post("/tasks", taskHandler.Create)
			// The fixed path must be registered alongside {id}; chi routes
			// literal segments before parameters.
			r.Get("/tasks/summary", taskHandler.Summary)
			r.Get("/tasks/{id}", taskHandler.Get)
			r.Patch("/tasks/{id}", taskHandler.Update)
			r.Delete("/tasks/{id}", taskHandler.Delete)
		})
	})

	return r
}
