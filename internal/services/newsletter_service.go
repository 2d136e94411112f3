package services

import (
	"context"

	"steeraway/internal/models"
	"steeraway/internal/repositories/interfaces"
	"steeraway/internal/utils"
	"steeraway/internal/validators"
	"steeraway/pkg/logger"
)

type NewsletterService interface {
	Subscribe(ctx context.Context, request *SubscribeRequest) (*models.Subscriber, error)
	Unsubscribe(ctx context.Context, email string) error
	ListSubscribers(ctx context.Context, params *utils.PaginationParams) ([]*models.Subscriber, int64, error)
}

type newsletterService struct {
	subscriberRepo interfaces.SubscriberRepository
	logger         *logger.Logger
}

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func NewNewsletterService(subscriberRepo interfaces.SubscriberRepository, logger *logger.Logger) NewsletterService {
	return &newsletterService{
		subscriberRepo: subscriberRepo,
		logger:         logger,
	}
}

func (s *newsletterService) Subscribe(ctx context.Context, request *SubscribeRequest) (*models.Subscriber, error) {
	if errs := validators.ValidateStruct(request); len(errs) > 0 {
		return nil, utils.InvalidInputError(errs.Error())
	}

	return s.subscriberRepo.Upsert(ctx, request.Email)
}

func (s *newsletterService) Unsubscribe(ctx context.Context, email string) error {
	if email == "" {
		return utils.InvalidInputError("missing email")
	}
	return s.subscriberRepo.Unsubscribe(ctx, email)
}

func (s *newsletterService) ListSubscribers(ctx context.Context, params *utils.PaginationParams) ([]*models.Subscriber, int64, error) {
	return s.subscriberRepo.List(ctx, params)
}
