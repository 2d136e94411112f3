package routes

import (
	"steeraway/internal/handlers"
	"steeraway/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes sets up the booking lifecycle and payment routes.
func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, jwtSecret string) {
	// Public gateway redirect target; correlation is by transaction id.
	r.GET("/payment/confirmation", bookingHandler.PaymentConfirmation)
	r.POST("/payment/confirmation", bookingHandler.PaymentConfirmation)

	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthRequired(jwtSecret))
	{
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("/my", bookingHandler.GetMyBookings)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.PUT("/:id/cancel", bookingHandler.CancelBooking)
		bookings.POST("/:id/payment", bookingHandler.RequestPayment)
	}

	admin := r.Group("/bookings")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("", bookingHandler.ListBookings)
		admin.PUT("/:id/status", bookingHandler.UpdateBookingStatus)
		admin.PUT("/return", bookingHandler.ReturnCar)
	}
}
