package routes

import (
	"github.com/go-chi/chi/v5"

	feedHandlers "Wayfare/internal/api/handlers/feed"
	"Wayfare/internal/api/middleware"
	feedCore "Wayfare/internal/core/feed"
)

// RegisterFeedRoutes registers the feed endpoints. Both work for anonymous
// viewers; the viewer middleware only enriches requests that carry
// credentials. The rate limiter runs after viewer resolution so authenticated
// clients are limited by viewer id rather than by shared IP.
func RegisterFeedRoutes(
	r chi.Router,
	feedService feedCore.Service,
	viewer *middleware.ViewerMiddleware,
	limiter *middleware.RateLimiter,
) {
	getFeedHandler := feedHandlers.NewGetFeedHandler(feedService)
	getAuthorTripsHandler := feedHandlers.NewGetAuthorTripsHandler(feedService)

	r.Group(func(r chi.Router) {
		r.Use(viewer.OptionalViewer)
		r.Use(limiter.Middleware)

		// GET /api/feed - personalized ranked feed
		r.Get("/api/feed", getFeedHandler.HandleGetFeed)

		// GET /api/users/{userID}/trips - profile trip listing
		r.Get("/api/users/{userID}/trips", getAuthorTripsHandler.HandleGetAuthorTrips)
	})
}
