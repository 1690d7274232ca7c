package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public graveyard surface and the gated admin surface.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/graves", handlers.graveHandler.listGraves())
		r.Get("/grave/{graveID}", handlers.graveHandler.getGrave())
		r.Post("/grave", handlers.graveHandler.submitGrave())
		r.Post("/grave/{graveID}/respect", handlers.graveHandler.payRespect())

		r.Get("/respects", handlers.respectsHandler.getRespects())
		r.Post("/respects", handlers.respectsHandler.incrementRespects())

		r.Get("/github-stars", handlers.starsHandler.getStarCount())
	})

	// Admin routes, gated by the shared moderation secret
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.adminOnly)

		r.Get("/admin/graves", handlers.adminHandler.listAllGraves())
		r.Get("/admin/graves/pending", handlers.adminHandler.listPendingGraves())
		r.Post("/admin/grave/{graveID}/moderate", handlers.adminHandler.moderateGrave())
		r.Put("/admin/grave/{graveID}", handlers.adminHandler.updateGrave())
		r.Delete("/admin/grave/{graveID}", handlers.adminHandler.deleteGrave())
	})
}
