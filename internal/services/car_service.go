package services

import (
	"context"

	"steeraway/internal/models"
	"steeraway/internal/repositories/interfaces"
	"steeraway/internal/utils"
	"steeraway/internal/validators"
	"steeraway/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CarService interface {
	CreateCar(ctx context.Context, request *CreateCarRequest) (*models.Car, error)
	GetCar(ctx context.Context, carID primitive.ObjectID) (*CarDetail, error)
	ListCars(ctx context.Context, filter *interfaces.CarFilter, params *utils.PaginationParams) ([]*models.Car, int64, error)
	UpdateCar(ctx context.Context, carID primitive.ObjectID, request *UpdateCarRequest) (*models.Car, error)
	UpdatePricing(ctx context.Context, carID primitive.ObjectID, sheet models.PricingSheet) (*models.Car, error)
	DeleteCar(ctx context.Context, carID primitive.ObjectID) error
	Brands(ctx context.Context) ([]string, error)
	FeaturedCars(ctx context.Context) ([]*models.Car, error)
}

type carService struct {
	carRepo interfaces.CarRepository
	logger  *logger.Logger
}

type CreateCarRequest struct {
	Name           string                `json:"name" validate:"required"`
	Brand          string                `json:"brand" validate:"required"`
	Model          string                `json:"model" validate:"required"`
	Year           string                `json:"year" validate:"required"`
	Description    string                `json:"description" validate:"required"`
	Color          string                `json:"color" validate:"required"`
	IsElectric     bool                  `json:"is_electric"`
	Features       []string              `json:"features"`
	Specifications models.Specifications `json:"specifications" validate:"required"`
	Pricing        models.PricingSheet   `json:"pricing" validate:"required"`
	Images         []string              `json:"images"`
}

type UpdateCarRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Features    []string `json:"features"`
	Images      []string `json:"images"`
}

// CarDetail is a catalog detail view: the car plus a handful of cars of
// the same brand.
type CarDetail struct {
	Car     *models.Car   `json:"car"`
	Related []*models.Car `json:"related"`
}

func NewCarService(carRepo interfaces.CarRepository, logger *logger.Logger) CarService {
	return &carService{
		carRepo: carRepo,
		logger:  logger,
	}
}

func (s *carService) CreateCar(ctx context.Context, request *CreateCarRequest) (*models.Car, error) {
	if errs := validators.ValidateStruct(request); len(errs) > 0 {
		return nil, utils.InvalidInputError(errs.Error())
	}
	if !request.Pricing.Valid() {
		return nil, utils.InvalidConfigurationError("invalid pricing rates")
	}

	car := &models.Car{
		Name:           request.Name,
		Brand:          request.Brand,
		Model:          request.Model,
		Year:           request.Year,
		Description:    request.Description,
		Color:          request.Color,
		IsElectric:     request.IsElectric,
		Status:         models.CarStatusAvailable,
		Features:       request.Features,
		Specifications: request.Specifications,
		Pricing:        request.Pricing,
		Images:         request.Images,
	}
	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, err
	}

	s.logger.WithCarID(car.ID).Info("Car added to catalog")

	return car, nil
}

func (s *carService) GetCar(ctx context.Context, carID primitive.ObjectID) (*CarDetail, error) {
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	related, err := s.carRepo.Related(ctx, carID, car.Brand, utils.RelatedCarsLimit)
	if err != nil {
		return nil, err
	}

	return &CarDetail{Car: car, Related: related}, nil
}

func (s *carService) ListCars(ctx context.Context, filter *interfaces.CarFilter, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	return s.carRepo.List(ctx, filter, params)
}

func (s *carService) UpdateCar(ctx context.Context, carID primitive.ObjectID, request *UpdateCarRequest) (*models.Car, error) {
	updates := map[string]interface{}{}
	if request.Name != "" {
		updates["name"] = request.Name
	}
	if request.Description != "" {
		updates["description"] = request.Description
	}
	if request.Color != "" {
		updates["color"] = request.Color
	}
	if request.Features != nil {
		updates["features"] = request.Features
	}
	if request.Images != nil {
		updates["images"] = request.Images
	}

	if len(updates) > 0 {
		if err := s.carRepo.Update(ctx, carID, updates); err != nil {
			return nil, err
		}
	}

	return s.carRepo.GetByID(ctx, carID)
}

// UpdatePricing swaps the whole rate sheet at once. Partial sheets are
// rejected so a booking can never be priced against a half-updated one.
func (s *carService) UpdatePricing(ctx context.Context, carID primitive.ObjectID, sheet models.PricingSheet) (*models.Car, error) {
	if !sheet.Valid() {
		return nil, utils.InvalidConfigurationError("invalid pricing rates")
	}

	if err := s.carRepo.Update(ctx, carID, map[string]interface{}{"pricing": sheet}); err != nil {
		return nil, err
	}

	return s.carRepo.GetByID(ctx, carID)
}

func (s *carService) DeleteCar(ctx context.Context, carID primitive.ObjectID) error {
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return err
	}
	if car.Status == models.CarStatusBooked {
		return utils.InvalidStateError("cannot delete a booked car")
	}

	return s.carRepo.SoftDelete(ctx, carID)
}

func (s *carService) Brands(ctx context.Context) ([]string, error) {
	return s.carRepo.Brands(ctx)
}

func (s *carService) FeaturedCars(ctx context.Context) ([]*models.Car, error) {
	return s.carRepo.TopRated(ctx, utils.FeaturedCarsLimit)
}
