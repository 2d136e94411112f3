package handlers

import (
	"steeraway/internal/middleware"
	"steeraway/internal/models"
	"steeraway/internal/services"
	"steeraway/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// CreateBooking books a car for the authenticated user.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.CreateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), userID, &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Car booked successfully", booking)
}

// GetMyBookings lists the authenticated user's bookings.
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	bookings, total, err := h.bookingService.ListUserBookings(c.Request.Context(), userID, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings retrieved successfully", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// GetBooking retrieves one booking. Non-admins can only see their own.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}
	if booking.UserID != userID && c.GetString("user_role") != string(models.UserRoleAdmin) {
		utils.ForbiddenResponse(c)
		return
	}

	utils.SuccessResponse(c, "Booking retrieved successfully", booking)
}

// CancelBooking cancels the authenticated user's own pending booking.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.CancelOwnBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking cancelled successfully", booking)
}

// ListBookings is the admin view over all bookings, optionally filtered
// by status.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	status := models.BookingStatus(c.Query("status"))

	bookings, total, err := h.bookingService.ListBookings(c.Request.Context(), status, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings retrieved successfully", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// UpdateBookingStatus is the admin approve/cancel endpoint.
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	var request services.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	booking, err := h.bookingService.UpdateBookingStatus(c.Request.Context(), bookingID, &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking status updated successfully", booking)
}

// ReturnCar closes out an approved booking with its final cost.
func (h *BookingHandler) ReturnCar(c *gin.Context) {
	var request services.ReturnCarRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	booking, err := h.bookingService.ReturnCar(c.Request.Context(), &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Car returned successfully", booking)
}

// RequestPayment starts the hosted checkout flow for a returned booking.
func (h *BookingHandler) RequestPayment(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	response, err := h.bookingService.RequestPayment(c.Request.Context(), userID, bookingID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Payment initiated successfully", response)
}

// PaymentConfirmation is the gateway redirect target. It is public: the
// merchant transaction id is the only correlation key, and the payment
// is re-verified with the provider before anything is marked paid.
func (h *BookingHandler) PaymentConfirmation(c *gin.Context) {
	transactionID := c.Query("transaction_id")
	if transactionID == "" {
		transactionID = c.Query("mer_txnid")
	}

	confirmation, err := h.bookingService.ConfirmPayment(c.Request.Context(), transactionID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	if !confirmation.Verified {
		utils.SuccessResponse(c, "Payment not completed", confirmation)
		return
	}

	utils.SuccessResponse(c, "Payment confirmed successfully", confirmation)
}
