package services

import (
	"context"
	"testing"

	"steeraway/internal/models"
	"steeraway/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var bookingTestSheet = models.PricingSheet{
	HourlyRate:     10,
	DailyRate:      100,
	WeeklyRate:     500,
	MonthlyRate:    1500,
	InsurancePrice: 50,
	ChildSeatPrice: 20,
	GPSPrice:       30,
}

func newTestBookingService(carRepo *fakeCarRepo, bookingRepo *fakeBookingRepo, userRepo *fakeUserRepo, gateway *fakeGateway) BookingService {
	return NewBookingService(
		bookingRepo, carRepo, userRepo,
		passthroughTxn{}, gateway,
		"BDT",
		"http://localhost/success", "http://localhost/fail", "http://localhost/cancel",
		testLogger(),
	)
}

func availableCar() *models.Car {
	return &models.Car{
		ID:      primitive.NewObjectID(),
		Name:    "Corolla Cross",
		Brand:   "Toyota",
		Status:  models.CarStatusAvailable,
		Pricing: bookingTestSheet,
	}
}

func TestCreateBooking(t *testing.T) {
	car := availableCar()
	carRepo := newFakeCarRepo(car)
	bookingRepo := newFakeBookingRepo()
	user := &models.User{ID: primitive.NewObjectID(), Name: "Arif", Email: "arif@example.com"}

	svc := newTestBookingService(carRepo, bookingRepo, newFakeUserRepo(user), &fakeGateway{})

	booking, err := svc.CreateBooking(context.Background(), user.ID, &CreateBookingRequest{
		CarID:              car.ID.Hex(),
		Date:               "2024-01-01",
		StartTime:          "9:00",
		Duration:           models.DurationDaily,
		AdditionalFeatures: models.AdditionalFeatures{Insurance: true},
		NIDOrPassport:      "A1234567",
		DrivingLicense:     "DL-99",
	})
	require.NoError(t, err)

	// initial charge is one unit of the duration class
	assert.Equal(t, 100.0, booking.BaseCost)
	assert.Equal(t, 150.0, booking.TotalCost)
	assert.Equal(t, "09:00", booking.StartTime)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)

	assert.Equal(t, models.CarStatusBooked, carRepo.cars[car.ID].Status)
	assert.Len(t, bookingRepo.bookings, 1)
}

func TestCreateBooking_CarAlreadyBooked(t *testing.T) {
	car := availableCar()
	car.Status = models.CarStatusBooked
	carRepo := newFakeCarRepo(car)
	bookingRepo := newFakeBookingRepo()
	user := &models.User{ID: primitive.NewObjectID(), Email: "arif@example.com"}

	svc := newTestBookingService(carRepo, bookingRepo, newFakeUserRepo(user), &fakeGateway{})

	_, err := svc.CreateBooking(context.Background(), user.ID, &CreateBookingRequest{
		CarID:          car.ID.Hex(),
		Date:           "2024-01-01",
		StartTime:      "09:00",
		Duration:       models.DurationDaily,
		NIDOrPassport:  "A1234567",
		DrivingLicense: "DL-99",
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))

	// nothing was written
	assert.Empty(t, bookingRepo.bookings)
	assert.Equal(t, models.CarStatusBooked, carRepo.cars[car.ID].Status)
}

func TestCreateBooking_InvalidRequest(t *testing.T) {
	svc := newTestBookingService(newFakeCarRepo(), newFakeBookingRepo(), newFakeUserRepo(), &fakeGateway{})

	_, err := svc.CreateBooking(context.Background(), primitive.NewObjectID(), &CreateBookingRequest{
		CarID:          "not-an-id",
		Date:           "2024-01-01",
		StartTime:      "09:00",
		Duration:       models.DurationDaily,
		NIDOrPassport:  "A1234567",
		DrivingLicense: "DL-99",
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))
}

func TestCreateBooking_UnknownUser(t *testing.T) {
	car := availableCar()
	carRepo := newFakeCarRepo(car)
	bookingRepo := newFakeBookingRepo()

	svc := newTestBookingService(carRepo, bookingRepo, newFakeUserRepo(), &fakeGateway{})

	_, err := svc.CreateBooking(context.Background(), primitive.NewObjectID(), &CreateBookingRequest{
		CarID:          car.ID.Hex(),
		Date:           "2024-01-01",
		StartTime:      "09:00",
		Duration:       models.DurationDaily,
		NIDOrPassport:  "A1234567",
		DrivingLicense: "DL-99",
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	// the car was never claimed
	assert.Equal(t, models.CarStatusAvailable, carRepo.cars[car.ID].Status)
	assert.Empty(t, bookingRepo.bookings)
}

func TestUpdateBookingStatus_Approve(t *testing.T) {
	car := availableCar()
	car.Status = models.CarStatusBooked
	booking := &models.Booking{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		CarID:  car.ID,
		Status: models.BookingStatusPending,
	}
	carRepo := newFakeCarRepo(car)
	bookingRepo := newFakeBookingRepo(booking)

	svc := newTestBookingService(carRepo, bookingRepo, newFakeUserRepo(), &fakeGateway{})

	updated, err := svc.UpdateBookingStatus(context.Background(), booking.ID, &UpdateBookingStatusRequest{
		Status: models.BookingStatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusApproved, updated.Status)

	// approval does not release the car
	assert.Equal(t, models.CarStatusBooked, carRepo.cars[car.ID].Status)
}

func TestUpdateBookingStatus_CancelReleasesCar(t *testing.T) {
	car := availableCar()
	car.Status = models.CarStatusBooked
	booking := &models.Booking{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		CarID:  car.ID,
		Status: models.BookingStatusApproved,
	}
	carRepo := newFakeCarRepo(car)
	bookingRepo := newFakeBookingRepo(booking)

	svc := newTestBookingService(carRepo, bookingRepo, newFakeUserRepo(), &fakeGateway{})

	updated, err := svc.UpdateBookingStatus(context.Background(), booking.ID, &UpdateBookingStatusRequest{
		Status: models.BookingStatusCancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, updated.Status)
	assert.Equal(t, models.CarStatusAvailable, carRepo.cars[car.ID].Status)
}

func TestUpdateBookingStatus_TerminalIsFinal(t *testing.T) {
	booking := &models.Booking{
		ID:     primitive.NewObjectID(),
		CarID:  primitive.NewObjectID(),
		Status: models.BookingStatusReturned,
	}
	svc := newTestBookingService(newFakeCarRepo(), newFakeBookingRepo(booking), newFakeUserRepo(), &fakeGateway{})

	_, err := svc.UpdateBookingStatus(context.Background(), booking.ID, &UpdateBookingStatusRequest{
		Status: models.BookingStatusCancelled,
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindInvalidState, utils.KindOf(err))
}

func TestCancelOwnBooking(t *testing.T) {
	car := availableCar()
	car.Status = models.CarStatusBooked
	userID := primitive.NewObjectID()
	booking := &models.Booking{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		CarID:  car.ID,
		Status: models.BookingStatusPending,
	}
	carRepo := newFakeCarRepo(car)

	svc := newTestBookingService(carRepo, newFakeBookingRepo(booking), newFakeUserRepo(), &fakeGateway{})

	updated, err := svc.CancelOwnBooking(context.Background(), userID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, updated.Status)
	assert.Equal(t, models.CarStatusAvailable, carRepo.cars[car.ID].Status)
}

func TestCancelOwnBooking_OtherUsersBooking(t *testing.T) {
	booking := &models.Booking{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		CarID:  primitive.NewObjectID(),
		Status: models.BookingStatusPending,
	}
	svc := newTestBookingService(newFakeCarRepo(), newFakeBookingRepo(booking), newFakeUserRepo(), &fakeGateway{})

	_, err := svc.CancelOwnBooking(context.Background(), primitive.NewObjectID(), booking.ID)
	require.Error(t, err)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
}

func TestCancelOwnBooking_ApprovedBooking(t *testing.T) {
	userID := primitive.NewObjectID()
	booking := &models.Booking{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		CarID:  primitive.NewObjectID(),
		Status: models.BookingStatusApproved,
	}
	svc := newTestBookingService(newFakeCarRepo(), newFakeBookingRepo(booking), newFakeUserRepo(), &fakeGateway{})

	_, err := svc.CancelOwnBooking(context.Background(), userID, booking.ID)
	require.Error(t, err)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
}

func TestCancelOwnBooking_TerminalBooking(t *testing.T) {
	userID := primitive.NewObjectID()
	booking := &models.Booking{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		CarID:  primitive.NewObjectID(),
		Status: models.BookingStatusReturned,
	}
	svc := newTestBookingService(newFakeCarRepo(), newFakeBookingRepo(booking), newFakeUserRepo(), &fakeGateway{})

	_, err := svc.CancelOwnBooking(context.Background(), userID, booking.ID)
	require.Error(t, err)
	assert.Equal(t, utils.KindInvalidState, utils.KindOf(err))
}

func TestReturnCar(t *testing.T) {
	car := availableCar()
	car.Status = models.CarStatusBooked
	booking := &models.Booking{
		ID:                 primitive.NewObjectID(),
		UserID:             primitive.NewObjectID(),
		CarID:              car.ID,
		Date:               "2024-01-01",
		StartTime:          "09:00",
		Duration:           models.DurationDaily,
		AdditionalFeatures: models.AdditionalFeatures{Insurance: true},
		BaseCost:           100,
		TotalCost:          150,
		Status:             models.BookingStatusApproved,
	}
	carRepo := newFakeCarRepo(car)
	bookingRepo := newFakeBookingRepo(booking)

	svc := newTestBookingService(carRepo, bookingRepo, newFakeUserRepo(), &fakeGateway{})

	// 2 days 2 hours -> 3 billable days
	returned, err := svc.ReturnCar(context.Background(), &ReturnCarRequest{
		BookingID: booking.ID.Hex(),
		EndDate:   "2024-01-03",
		EndTime:   "11:00",
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusReturned, returned.Status)
	assert.Equal(t, 300.0, returned.BaseCost)
	assert.Equal(t, 350.0, returned.TotalCost)
	assert.Equal(t, "2024-01-03", returned.EndDate)
	assert.Equal(t, models.CarStatusAvailable, carRepo.cars[car.ID].Status)

	stored, err := bookingRepo.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, 350.0, stored.TotalCost)
}

func TestReturnCar_TerminalBooking(t *testing.T) {
	for _, status := range []models.BookingStatus{
		models.BookingStatusCancelled,
		models.BookingStatusReturned,
	} {
		booking := &models.Booking{
			ID:        primitive.NewObjectID(),
			CarID:     primitive.NewObjectID(),
			Date:      "2024-01-01",
			StartTime: "09:00",
			Duration:  models.DurationDaily,
			Status:    status,
		}
		svc := newTestBookingService(newFakeCarRepo(), newFakeBookingRepo(booking), newFakeUserRepo(), &fakeGateway{})

		_, err := svc.ReturnCar(context.Background(), &ReturnCarRequest{
			BookingID: booking.ID.Hex(),
			EndDate:   "2024-01-02",
			EndTime:   "09:00",
		})
		require.Error(t, err, "status %s", status)
		assert.Equal(t, utils.KindInvalidState, utils.KindOf(err))
	}
}

func TestRequestPayment(t *testing.T) {
	userID := primitive.NewObjectID()
	user := &models.User{ID: userID, Name: "Arif", Email: "arif@example.com", Phone: "0170000000"}
	booking := &models.Booking{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		CarID:         primitive.NewObjectID(),
		TotalCost:     350,
		Status:        models.BookingStatusReturned,
		PaymentStatus: models.PaymentStatusPending,
	}
	bookingRepo := newFakeBookingRepo(booking)
	gateway := &fakeGateway{}

	svc := newTestBookingService(newFakeCarRepo(), bookingRepo, newFakeUserRepo(user), gateway)

	response, err := svc.RequestPayment(context.Background(), userID, booking.ID)
	require.NoError(t, err)

	assert.Contains(t, response.TransactionID, utils.TransactionIDPrefix)
	assert.Contains(t, response.PaymentURL, response.TransactionID)

	stored, err := bookingRepo.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, response.TransactionID, stored.TransactionID)

	require.NotNil(t, gateway.lastRequest)
	assert.Equal(t, 350.0, gateway.lastRequest.Amount)
	assert.Equal(t, "BDT", gateway.lastRequest.Currency)
}

func TestRequestPayment_BeforeReturn(t *testing.T) {
	userID := primitive.NewObjectID()
	booking := &models.Booking{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		CarID:         primitive.NewObjectID(),
		Status:        models.BookingStatusApproved,
		PaymentStatus: models.PaymentStatusPending,
	}
	svc := newTestBookingService(newFakeCarRepo(), newFakeBookingRepo(booking), newFakeUserRepo(), &fakeGateway{})

	_, err := svc.RequestPayment(context.Background(), userID, booking.ID)
	require.Error(t, err)
	assert.Equal(t, utils.KindInvalidState, utils.KindOf(err))
}

func TestConfirmPayment_Verified(t *testing.T) {
	booking := &models.Booking{
		ID:            primitive.NewObjectID(),
		UserID:        primitive.NewObjectID(),
		CarID:         primitive.NewObjectID(),
		TotalCost:     350,
		Status:        models.BookingStatusReturned,
		PaymentStatus: models.PaymentStatusPending,
		TransactionID: "TXN-abc123",
	}
	bookingRepo := newFakeBookingRepo(booking)

	svc := newTestBookingService(newFakeCarRepo(), bookingRepo, newFakeUserRepo(), &fakeGateway{verified: true})

	confirmation, err := svc.ConfirmPayment(context.Background(), "TXN-abc123")
	require.NoError(t, err)

	assert.True(t, confirmation.Verified)
	assert.Equal(t, models.PaymentStatusPaid, confirmation.Booking.PaymentStatus)
	require.NotNil(t, confirmation.Booking.PaidAt)

	stored, err := bookingRepo.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)
}

func TestConfirmPayment_NotVerified(t *testing.T) {
	booking := &models.Booking{
		ID:            primitive.NewObjectID(),
		UserID:        primitive.NewObjectID(),
		CarID:         primitive.NewObjectID(),
		Status:        models.BookingStatusReturned,
		PaymentStatus: models.PaymentStatusPending,
		TransactionID: "TXN-abc123",
	}
	bookingRepo := newFakeBookingRepo(booking)

	svc := newTestBookingService(newFakeCarRepo(), bookingRepo, newFakeUserRepo(), &fakeGateway{verified: false})

	confirmation, err := svc.ConfirmPayment(context.Background(), "TXN-abc123")
	require.NoError(t, err)
	assert.False(t, confirmation.Verified)
	assert.Equal(t, models.BookingStatusCancelled, confirmation.Booking.Status)

	// the payment status stays Pending; only the booking is cancelled
	stored, err := bookingRepo.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, stored.PaymentStatus)
	assert.Equal(t, models.BookingStatusCancelled, stored.Status)
}

func TestConfirmPayment_UnknownTransaction(t *testing.T) {
	svc := newTestBookingService(newFakeCarRepo(), newFakeBookingRepo(), newFakeUserRepo(), &fakeGateway{verified: true})

	_, err := svc.ConfirmPayment(context.Background(), "TXN-missing")
	require.Error(t, err)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}
