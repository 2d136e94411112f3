package routes

import (
	"steeraway/internal/handlers"
	"steeraway/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCarRoutes sets up the public catalog and the admin fleet routes.
func SetupCarRoutes(r *gin.RouterGroup, carHandler *handlers.CarHandler, reviewHandler *handlers.ReviewHandler, jwtSecret string) {
	cars := r.Group("/cars")
	{
		cars.GET("", carHandler.ListCars)
		cars.GET("/featured", carHandler.FeaturedCars)
		cars.GET("/brands", carHandler.Brands)
		cars.GET("/:id", carHandler.GetCar)
		cars.GET("/:id/reviews", reviewHandler.GetCarReviews)
	}

	reviews := r.Group("/reviews")
	{
		reviews.GET("/recent", reviewHandler.RecentReviews)
	}
	authed := r.Group("/reviews")
	authed.Use(middleware.AuthRequired(jwtSecret))
	{
		authed.POST("", reviewHandler.CreateReview)
	}

	admin := r.Group("/cars")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.POST("", carHandler.CreateCar)
		admin.PUT("/:id", carHandler.UpdateCar)
		admin.PUT("/:id/pricing", carHandler.UpdatePricing)
		admin.DELETE("/:id", carHandler.DeleteCar)
	}
}
