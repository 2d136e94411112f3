package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"steeraway/internal/models"
	"steeraway/internal/pricing"
	"steeraway/internal/repositories/interfaces"
	"steeraway/internal/utils"
	"steeraway/internal/validators"
	"steeraway/pkg/logger"
	"steeraway/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService interface {
	// Lifecycle
	CreateBooking(ctx context.Context, userID primitive.ObjectID, request *CreateBookingRequest) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID primitive.ObjectID, request *UpdateBookingStatusRequest) (*models.Booking, error)
	CancelOwnBooking(ctx context.Context, userID, bookingID primitive.ObjectID) (*models.Booking, error)
	ReturnCar(ctx context.Context, request *ReturnCarRequest) (*models.Booking, error)

	// Payment
	RequestPayment(ctx context.Context, userID, bookingID primitive.ObjectID) (*PaymentInitResponse, error)
	ConfirmPayment(ctx context.Context, transactionID string) (*PaymentConfirmation, error)

	// Listing
	GetBooking(ctx context.Context, bookingID primitive.ObjectID) (*models.Booking, error)
	ListUserBookings(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	ListBookings(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error)
}

type bookingService struct {
	bookingRepo interfaces.BookingRepository
	carRepo     interfaces.CarRepository
	userRepo    interfaces.UserRepository
	txn         TransactionRunner
	gateway     payment.Gateway
	currency    string
	successURL  string
	failURL     string
	cancelURL   string
	logger      *logger.Logger
}

type CreateBookingRequest struct {
	CarID              string                    `json:"car_id" validate:"required,object_id"`
	Date               string                    `json:"date" validate:"required,date_string"`
	StartTime          string                    `json:"start_time" validate:"required,clock_time"`
	Duration           models.DurationClass      `json:"duration" validate:"required,duration_class"`
	AdditionalFeatures models.AdditionalFeatures `json:"additional_features"`
	NIDOrPassport      string                    `json:"nid_or_passport" validate:"required"`
	DrivingLicense     string                    `json:"driving_license" validate:"required"`
}

type UpdateBookingStatusRequest struct {
	Status models.BookingStatus `json:"status" validate:"required,oneof=Approved Cancelled"`
}

type ReturnCarRequest struct {
	BookingID string `json:"booking_id" validate:"required,object_id"`
	EndDate   string `json:"end_date" validate:"required,date_string"`
	EndTime   string `json:"end_time" validate:"required,clock_time"`
}

type PaymentInitResponse struct {
	TransactionID string `json:"transaction_id"`
	PaymentURL    string `json:"payment_url"`
}

type PaymentConfirmation struct {
	Booking  *models.Booking `json:"booking"`
	Verified bool            `json:"verified"`
	Status   string          `json:"status"`
}

func NewBookingService(
	bookingRepo interfaces.BookingRepository,
	carRepo interfaces.CarRepository,
	userRepo interfaces.UserRepository,
	txn TransactionRunner,
	gateway payment.Gateway,
	currency, successURL, failURL, cancelURL string,
	logger *logger.Logger,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		carRepo:     carRepo,
		userRepo:    userRepo,
		txn:         txn,
		gateway:     gateway,
		currency:    currency,
		successURL:  successURL,
		failURL:     failURL,
		cancelURL:   cancelURL,
		logger:      logger,
	}
}

// CreateBooking claims the car and records the booking in one
// transaction. The initial charge is one unit of the chosen duration
// class; the real window is priced at return time.
func (s *bookingService) CreateBooking(ctx context.Context, userID primitive.ObjectID, request *CreateBookingRequest) (*models.Booking, error) {
	if errs := validators.ValidateStruct(request); len(errs) > 0 {
		return nil, utils.InvalidInputError(errs.Error())
	}

	carID, err := primitive.ObjectIDFromHex(request.CarID)
	if err != nil {
		return nil, utils.InvalidInputError("invalid car id")
	}

	startTime, err := pricing.NormalizeClock(request.StartTime)
	if err != nil {
		return nil, err
	}

	var booking *models.Booking
	err = s.runTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.userRepo.GetByID(txCtx, userID); err != nil {
			return err
		}

		car, err := s.carRepo.GetByID(txCtx, carID)
		if err != nil {
			return err
		}

		baseCost, err := pricing.RentalCost(pricing.Window{}, request.Duration, car.Pricing)
		if err != nil {
			return err
		}
		additional := pricing.AddOnCosts(request.AdditionalFeatures, car.Pricing)

		// The status guard on this update is the double-booking barrier.
		if err := s.carRepo.ClaimAvailable(txCtx, carID); err != nil {
			return err
		}

		booking = &models.Booking{
			UserID:             userID,
			CarID:              carID,
			Date:               request.Date,
			StartTime:          startTime,
			Duration:           request.Duration,
			AdditionalFeatures: request.AdditionalFeatures,
			BaseCost:           baseCost,
			AdditionalCosts:    additional,
			TotalCost:          baseCost + additional.Sum(),
			PaymentStatus:      models.PaymentStatusPending,
			NIDOrPassport:      request.NIDOrPassport,
			DrivingLicense:     request.DrivingLicense,
			Status:             models.BookingStatusPending,
		}

		return s.bookingRepo.Create(txCtx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogBookingEvent(booking.ID, utils.EventBookingCreated, map[string]interface{}{
		"car_id":     carID.Hex(),
		"duration":   request.Duration,
		"total_cost": booking.TotalCost,
	})

	return booking, nil
}

// UpdateBookingStatus is the admin approve/cancel path. Cancelling
// releases the car back to the pool in the same transaction.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID primitive.ObjectID, request *UpdateBookingStatusRequest) (*models.Booking, error) {
	if errs := validators.ValidateStruct(request); len(errs) > 0 {
		return nil, utils.InvalidInputError(errs.Error())
	}

	var booking *models.Booking
	err := s.runTransaction(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			return err
		}

		if booking.IsTerminal() {
			return utils.InvalidStateError(fmt.Sprintf("booking is already %s", booking.Status))
		}
		if request.Status == models.BookingStatusApproved && booking.Status != models.BookingStatusPending {
			return utils.InvalidStateError("only pending bookings can be approved")
		}

		if err := s.bookingRepo.Update(txCtx, bookingID, map[string]interface{}{"status": request.Status}); err != nil {
			return err
		}

		if request.Status == models.BookingStatusCancelled {
			if err := s.carRepo.UpdateStatus(txCtx, booking.CarID, models.CarStatusAvailable); err != nil {
				return err
			}
		}

		booking.Status = request.Status
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := utils.EventBookingApproved
	if request.Status == models.BookingStatusCancelled {
		event = utils.EventBookingCancelled
	}
	s.logger.LogBookingEvent(bookingID, event, nil)

	return booking, nil
}

// CancelOwnBooking lets a customer back out of their own booking while
// it is still pending.
func (s *bookingService) CancelOwnBooking(ctx context.Context, userID, bookingID primitive.ObjectID) (*models.Booking, error) {
	var booking *models.Booking
	err := s.runTransaction(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			return err
		}

		if booking.UserID != userID {
			return utils.ForbiddenError("you can only cancel your own bookings")
		}
		if booking.Status == models.BookingStatusApproved {
			return utils.ForbiddenError("approved bookings can only be cancelled by an admin")
		}
		if booking.Status != models.BookingStatusPending {
			return utils.InvalidStateError(fmt.Sprintf("cannot cancel a %s booking", booking.Status))
		}

		if err := s.bookingRepo.Update(txCtx, bookingID, map[string]interface{}{"status": models.BookingStatusCancelled}); err != nil {
			return err
		}
		if err := s.carRepo.UpdateStatus(txCtx, booking.CarID, models.CarStatusAvailable); err != nil {
			return err
		}

		booking.Status = models.BookingStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogBookingEvent(bookingID, utils.EventBookingCancelled, map[string]interface{}{
		"cancelled_by": "user",
	})

	return booking, nil
}

// ReturnCar closes out a booking: the final cost is computed from the
// actual window, the booking becomes Returned, and the car goes back to
// available, all atomically. Only terminal bookings are rejected.
func (s *bookingService) ReturnCar(ctx context.Context, request *ReturnCarRequest) (*models.Booking, error) {
	if errs := validators.ValidateStruct(request); len(errs) > 0 {
		return nil, utils.InvalidInputError(errs.Error())
	}

	bookingID, err := primitive.ObjectIDFromHex(request.BookingID)
	if err != nil {
		return nil, utils.InvalidInputError("invalid booking id")
	}

	var booking *models.Booking
	err = s.runTransaction(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			return err
		}

		if booking.Status == models.BookingStatusReturned {
			return utils.InvalidStateError("booking is already returned")
		}
		if booking.Status == models.BookingStatusCancelled {
			return utils.InvalidStateError("cannot return a cancelled booking")
		}

		car, err := s.carRepo.GetByID(txCtx, booking.CarID)
		if err != nil {
			return err
		}

		endTime, err := pricing.NormalizeClock(request.EndTime)
		if err != nil {
			return err
		}

		quote, err := pricing.CalculateQuote(
			booking.Date, booking.StartTime,
			request.EndDate, endTime,
			booking.Duration, booking.AdditionalFeatures, car.Pricing,
		)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":           models.BookingStatusReturned,
			"end_date":         request.EndDate,
			"end_time":         endTime,
			"base_cost":        quote.BaseCost,
			"additional_costs": quote.AdditionalCosts,
			"total_cost":       quote.TotalCost,
		}
		if err := s.bookingRepo.Update(txCtx, bookingID, updates); err != nil {
			return err
		}
		if err := s.carRepo.UpdateStatus(txCtx, booking.CarID, models.CarStatusAvailable); err != nil {
			return err
		}

		booking.Status = models.BookingStatusReturned
		booking.EndDate = request.EndDate
		booking.EndTime = endTime
		booking.BaseCost = quote.BaseCost
		booking.AdditionalCosts = quote.AdditionalCosts
		booking.TotalCost = quote.TotalCost
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogBookingEvent(bookingID, utils.EventCarReturned, map[string]interface{}{
		"total_cost": booking.TotalCost,
	})

	return booking, nil
}

// RequestPayment issues a fresh merchant transaction id for a returned
// booking and hands the customer off to the gateway.
func (s *bookingService) RequestPayment(ctx context.Context, userID, bookingID primitive.ObjectID) (*PaymentInitResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID {
		return nil, utils.ForbiddenError("you can only pay for your own bookings")
	}
	if booking.PaymentStatus == models.PaymentStatusPaid {
		return nil, utils.InvalidStateError("booking is already paid")
	}
	if booking.Status != models.BookingStatusReturned {
		return nil, utils.InvalidStateError("payment is only due after the car is returned")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	transactionID := utils.GenerateTransactionID()
	if err := s.bookingRepo.Update(ctx, bookingID, map[string]interface{}{"transaction_id": transactionID}); err != nil {
		return nil, err
	}

	response, err := s.gateway.Initiate(ctx, &payment.PaymentRequest{
		TransactionID:   transactionID,
		BookingID:       bookingID.Hex(),
		Amount:          booking.TotalCost,
		Currency:        s.currency,
		Description:     "Car rental payment",
		CustomerName:    user.Name,
		CustomerEmail:   user.Email,
		CustomerPhone:   user.Phone,
		CustomerAddress: user.Address,
		SuccessURL:      s.successURL,
		FailURL:         s.failURL,
		CancelURL:       s.cancelURL,
	})
	if err != nil {
		return nil, utils.PaymentGatewayError("failed to initiate payment", err)
	}

	s.logger.LogPaymentEvent(bookingID, utils.EventPaymentInitiated, transactionID, booking.TotalCost)

	return &PaymentInitResponse{
		TransactionID: transactionID,
		PaymentURL:    response.PaymentURL,
	}, nil
}

// ConfirmPayment correlates a gateway callback back to its booking via
// the merchant transaction id and re-verifies with the provider before
// marking anything paid.
func (s *bookingService) ConfirmPayment(ctx context.Context, transactionID string) (*PaymentConfirmation, error) {
	if transactionID == "" {
		return nil, utils.InvalidInputError("missing transaction id")
	}

	booking, err := s.bookingRepo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	result, err := s.gateway.Verify(ctx, transactionID)
	if err != nil {
		return nil, utils.PaymentGatewayError("failed to verify payment", err)
	}

	// A failed verification cancels the booking; the payment status is
	// left Pending so the record shows the charge never went through.
	if !result.Verified {
		if booking.PaymentStatus != models.PaymentStatusPaid {
			err = s.runTransaction(ctx, func(txCtx context.Context) error {
				return s.bookingRepo.Update(txCtx, booking.ID, map[string]interface{}{
					"status": models.BookingStatusCancelled,
				})
			})
			if err != nil {
				return nil, err
			}
			booking.Status = models.BookingStatusCancelled
		}

		return &PaymentConfirmation{
			Booking:  booking,
			Verified: false,
			Status:   result.Status,
		}, nil
	}

	if booking.PaymentStatus != models.PaymentStatusPaid {
		now := time.Now()
		err = s.runTransaction(ctx, func(txCtx context.Context) error {
			return s.bookingRepo.Update(txCtx, booking.ID, map[string]interface{}{
				"payment_status": models.PaymentStatusPaid,
				"paid_at":        now,
			})
		})
		if err != nil {
			return nil, err
		}
		booking.PaymentStatus = models.PaymentStatusPaid
		booking.PaidAt = &now

		s.logger.LogPaymentEvent(booking.ID, utils.EventPaymentVerified, transactionID, booking.TotalCost)
	}

	return &PaymentConfirmation{
		Booking:  booking,
		Verified: true,
		Status:   result.Status,
	}, nil
}

// Listing
func (s *bookingService) GetBooking(ctx context.Context, bookingID primitive.ObjectID) (*models.Booking, error) {
	return s.bookingRepo.GetByID(ctx, bookingID)
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.ListByUser(ctx, userID, params)
}

func (s *bookingService) ListBookings(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.List(ctx, status, params)
}

// runTransaction keeps domain errors intact and tags everything else as
// an aborted transaction.
func (s *bookingService) runTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	err := s.txn.RunTransaction(ctx, fn)
	if err == nil {
		return nil
	}

	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return utils.TransactionAbortedError(err)
}
