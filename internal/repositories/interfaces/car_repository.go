package interfaces

import (
	"context"

	"steeraway/internal/models"
	"steeraway/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarFilter narrows catalog listings. Nil bounds are open ended.
type CarFilter struct {
	Brand      string
	Status     models.CarStatus
	IsElectric *bool
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  *float64
}

type CarRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, car *models.Car) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error

	// Catalog queries
	List(ctx context.Context, filter *CarFilter, params *utils.PaginationParams) ([]*models.Car, int64, error)
	Related(ctx context.Context, id primitive.ObjectID, brand string, limit int) ([]*models.Car, error)
	Brands(ctx context.Context) ([]string, error)
	TopRated(ctx context.Context, limit int) ([]*models.Car, error)

	// Booking lifecycle
	ClaimAvailable(ctx context.Context, id primitive.ObjectID) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CarStatus) error
	UpdateRatingStats(ctx context.Context, id primitive.ObjectID, stats models.RatingStats) error

	// Dashboard statistics
	CountByStatus(ctx context.Context) (map[models.CarStatus]int64, error)
	CountByFuelType(ctx context.Context) (map[models.FuelType]int64, error)
}
