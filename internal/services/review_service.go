package services

import (
	"context"
	"errors"

	"steeraway/internal/models"
	"steeraway/internal/repositories/interfaces"
	"steeraway/internal/utils"
	"steeraway/internal/validators"
	"steeraway/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewService interface {
	RecordReview(ctx context.Context, userID primitive.ObjectID, request *CreateReviewRequest) (*models.Review, error)
	ListCarReviews(ctx context.Context, carID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Review, int64, error)
	RecentReviews(ctx context.Context, limit int) ([]*models.Review, error)
}

type reviewService struct {
	reviewRepo  interfaces.ReviewRepository
	carRepo     interfaces.CarRepository
	bookingRepo interfaces.BookingRepository
	txn         TransactionRunner
	logger      *logger.Logger
}

type CreateReviewRequest struct {
	CarID   string `json:"car_id" validate:"required,object_id"`
	Date    string `json:"date" validate:"required,date_string"`
	Rating  int    `json:"rating" validate:"required,rating_value"`
	Comment string `json:"comment" validate:"required"`
}

func NewReviewService(
	reviewRepo interfaces.ReviewRepository,
	carRepo interfaces.CarRepository,
	bookingRepo interfaces.BookingRepository,
	txn TransactionRunner,
	logger *logger.Logger,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		carRepo:     carRepo,
		bookingRepo: bookingRepo,
		txn:         txn,
		logger:      logger,
	}
}

// RecordReview stores the review and folds it into the car's rating
// aggregate in one transaction, so the distribution total and the stored
// average can never disagree with the review collection.
func (s *reviewService) RecordReview(ctx context.Context, userID primitive.ObjectID, request *CreateReviewRequest) (*models.Review, error) {
	if errs := validators.ValidateStruct(request); len(errs) > 0 {
		return nil, utils.InvalidInputError(errs.Error())
	}

	carID, err := primitive.ObjectIDFromHex(request.CarID)
	if err != nil {
		return nil, utils.InvalidInputError("invalid car id")
	}

	var review *models.Review
	var newAverage float64
	err = s.runTransaction(ctx, func(txCtx context.Context) error {
		car, err := s.carRepo.GetByID(txCtx, carID)
		if err != nil {
			return err
		}

		hasBooking, err := s.bookingRepo.HasBookingForCar(txCtx, userID, carID)
		if err != nil {
			return err
		}
		if !hasBooking {
			return utils.ForbiddenError("you can only review cars you have booked")
		}

		if _, err := s.reviewRepo.GetByUserAndCar(txCtx, userID, carID); err == nil {
			return utils.DuplicateReviewError("user has already reviewed this car")
		} else if utils.KindOf(err) != utils.KindNotFound {
			return err
		}

		review = &models.Review{
			UserID:  userID,
			CarID:   carID,
			Date:    request.Date,
			Rating:  request.Rating,
			Comment: request.Comment,
		}
		if err := s.reviewRepo.Create(txCtx, review); err != nil {
			return err
		}

		stats, err := car.RatingStats.Apply(request.Rating)
		if err != nil {
			return utils.InvalidInputError(err.Error())
		}
		newAverage = stats.AverageRating

		return s.carRepo.UpdateRatingStats(txCtx, carID, stats)
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogReviewEvent(carID, request.Rating, newAverage)

	return review, nil
}

func (s *reviewService) ListCarReviews(ctx context.Context, carID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Review, int64, error) {
	return s.reviewRepo.ListByCar(ctx, carID, params)
}

func (s *reviewService) RecentReviews(ctx context.Context, limit int) ([]*models.Review, error) {
	return s.reviewRepo.Recent(ctx, limit)
}

func (s *reviewService) runTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
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
