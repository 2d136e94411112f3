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

func newTestReviewService(reviewRepo *fakeReviewRepo, carRepo *fakeCarRepo, bookingRepo *fakeBookingRepo) ReviewService {
	return NewReviewService(reviewRepo, carRepo, bookingRepo, passthroughTxn{}, testLogger())
}

func reviewableCar() (*models.Car, *models.Booking, primitive.ObjectID) {
	userID := primitive.NewObjectID()
	car := &models.Car{
		ID:     primitive.NewObjectID(),
		Name:   "X-Trail",
		Brand:  "Nissan",
		Status: models.CarStatusAvailable,
		RatingStats: models.RatingStats{
			AverageRating: 4.0,
			TotalRatings:  3,
			RatingDistribution: models.RatingDistribution{
				Three: 1, Four: 1, Five: 1,
			},
		},
	}
	booking := &models.Booking{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		CarID:  car.ID,
		Status: models.BookingStatusReturned,
	}
	return car, booking, userID
}

func TestRecordReview(t *testing.T) {
	car, booking, userID := reviewableCar()
	carRepo := newFakeCarRepo(car)
	reviewRepo := &fakeReviewRepo{}

	svc := newTestReviewService(reviewRepo, carRepo, newFakeBookingRepo(booking))

	review, err := svc.RecordReview(context.Background(), userID, &CreateReviewRequest{
		CarID:   car.ID.Hex(),
		Date:    "2024-02-10",
		Rating:  5,
		Comment: "Smooth ride, no surprises.",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, review.Rating)
	assert.Len(t, reviewRepo.reviews, 1)

	// (4.0*3 + 5) / 4 = 4.25, rounded half up to one decimal
	stats := carRepo.cars[car.ID].RatingStats
	assert.Equal(t, 4.3, stats.AverageRating)
	assert.Equal(t, int64(4), stats.TotalRatings)
	assert.Equal(t, int64(2), stats.RatingDistribution.Five)
}

func TestRecordReview_Duplicate(t *testing.T) {
	car, booking, userID := reviewableCar()
	carRepo := newFakeCarRepo(car)
	reviewRepo := &fakeReviewRepo{
		reviews: []*models.Review{{
			ID:     primitive.NewObjectID(),
			UserID: userID,
			CarID:  car.ID,
			Rating: 4,
		}},
	}

	svc := newTestReviewService(reviewRepo, carRepo, newFakeBookingRepo(booking))

	_, err := svc.RecordReview(context.Background(), userID, &CreateReviewRequest{
		CarID:   car.ID.Hex(),
		Date:    "2024-02-10",
		Rating:  5,
		Comment: "Trying to rate twice.",
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindDuplicateReview, utils.KindOf(err))

	// the aggregate must not move on a rejected review
	assert.Equal(t, 4.0, carRepo.cars[car.ID].RatingStats.AverageRating)
	assert.Equal(t, int64(3), carRepo.cars[car.ID].RatingStats.TotalRatings)
	assert.Len(t, reviewRepo.reviews, 1)
}

func TestRecordReview_WithoutBooking(t *testing.T) {
	car, _, _ := reviewableCar()
	carRepo := newFakeCarRepo(car)

	svc := newTestReviewService(&fakeReviewRepo{}, carRepo, newFakeBookingRepo())

	_, err := svc.RecordReview(context.Background(), primitive.NewObjectID(), &CreateReviewRequest{
		CarID:   car.ID.Hex(),
		Date:    "2024-02-10",
		Rating:  5,
		Comment: "Never booked this one.",
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
}

func TestRecordReview_UnknownCar(t *testing.T) {
	svc := newTestReviewService(&fakeReviewRepo{}, newFakeCarRepo(), newFakeBookingRepo())

	_, err := svc.RecordReview(context.Background(), primitive.NewObjectID(), &CreateReviewRequest{
		CarID:   primitive.NewObjectID().Hex(),
		Date:    "2024-02-10",
		Rating:  3,
		Comment: "Car does not exist.",
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestRecordReview_InvalidRating(t *testing.T) {
	car, booking, userID := reviewableCar()

	svc := newTestReviewService(&fakeReviewRepo{}, newFakeCarRepo(car), newFakeBookingRepo(booking))

	_, err := svc.RecordReview(context.Background(), userID, &CreateReviewRequest{
		CarID:   car.ID.Hex(),
		Date:    "2024-02-10",
		Rating:  6,
		Comment: "Too enthusiastic.",
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))
}
