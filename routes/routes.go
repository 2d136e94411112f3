package routes

import (
	"steeraway/internal/handlers"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Car        *handlers.CarHandler
	Booking    *handlers.BookingHandler
	Review     *handlers.ReviewHandler
	Dashboard  *handlers.DashboardHandler
	Newsletter *handlers.NewsletterHandler
}

// SetupRoutes mounts every route group under /api.
func SetupRoutes(r *gin.Engine, h *Handlers, jwtSecret string) {
	api := r.Group("/api")

	SetupAuthRoutes(api, h.Auth, jwtSecret)
	SetupCarRoutes(api, h.Car, h.Review, jwtSecret)
	SetupBookingRoutes(api, h.Booking, jwtSecret)
	SetupNewsletterRoutes(api, h.Newsletter, jwtSecret)
	SetupAdminRoutes(api, h, jwtSecret)
}
