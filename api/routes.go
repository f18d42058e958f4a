package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupFrontendRoutes sets up the read-only catalog surface and the contact
// endpoint.
func setupFrontendRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(CallerIdentityMiddleware)
		r.Use(SequenceEchoMiddleware)

		// Project catalog endpoints
		r.Get("/projects", handlers.projectHandler.getProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Get("/filter-options", handlers.projectHandler.getFilterOptions())

		// Contact endpoint
		r.Post("/contact", handlers.contactHandler.submitContact())
	})

	r.Handle("/metrics", promhttp.Handler())
}
