package interfaces

import (
	"context"

	"steeraway/internal/models"
	"steeraway/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByUserAndCar(ctx context.Context, userID, carID primitive.ObjectID) (*models.Review, error)
	ListByCar(ctx context.Context, carID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Review, int64, error)
	Recent(ctx context.Context, limit int) ([]*models.Review, error)
}
