package routes

import (
	"steeraway/internal/handlers"
	"steeraway/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupNewsletterRoutes sets up newsletter subscription routes.
func SetupNewsletterRoutes(r *gin.RouterGroup, newsletterHandler *handlers.NewsletterHandler, jwtSecret string) {
	newsletter := r.Group("/newsletter")
	{
		newsletter.POST("/subscribe", newsletterHandler.Subscribe)
		newsletter.POST("/unsubscribe", newsletterHandler.Unsubscribe)
	}

	admin := r.Group("/newsletter")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/subscribers", newsletterHandler.ListSubscribers)
	}
}
