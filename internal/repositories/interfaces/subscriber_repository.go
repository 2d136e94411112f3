package interfaces

import (
	"context"

	"steeraway/internal/models"
	"steeraway/internal/utils"
)

type SubscriberRepository interface {
	Upsert(ctx context.Context, email string) (*models.Subscriber, error)
	Unsubscribe(ctx context.Context, email string) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Subscriber, int64, error)
	Count(ctx context.Context) (int64, error)
}
