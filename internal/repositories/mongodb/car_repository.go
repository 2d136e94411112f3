package mongodb

import (
	"context"
	"fmt"
	"time"

	"steeraway/internal/models"
	"steeraway/internal/repositories/interfaces"
	"steeraway/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultCarCacheTTL = 10 * time.Minute

type carRepository struct {
	collection *mongo.Collection
	cache      CacheService
	cacheTTL   time.Duration
}

func NewCarRepository(db *mongo.Database, cache CacheService, cacheTTL time.Duration) interfaces.CarRepository {
	if cacheTTL <= 0 {
		cacheTTL = defaultCarCacheTTL
	}
	return &carRepository{
		collection: db.Collection("cars"),
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// Basic CRUD operations
func (r *carRepository) Create(ctx context.Context, car *models.Car) error {
	car.ID = primitive.NewObjectID()
	car.CreatedAt = time.Now()
	car.UpdatedAt = time.Now()
	if car.Status == "" {
		car.Status = models.CarStatusAvailable
	}

	_, err := r.collection.InsertOne(ctx, car)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.ConflictError(fmt.Sprintf("car %q already exists", car.Name))
		}
		return fmt.Errorf("failed to create car: %w", err)
	}

	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	cacheKey := utils.CacheCarPrefix + id.Hex()

	var cached models.Car
	if r.cache != nil {
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var car models.Car
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&car)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NotFoundError("car")
		}
		return nil, fmt.Errorf("failed to get car: %w", err)
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, cacheKey, &car, r.cacheTTL)
	}

	return &car, nil
}

func (r *carRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update car: %w", err)
	}
	if result.MatchedCount == 0 {
		return utils.NotFoundError("car")
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *carRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}
	if result.MatchedCount == 0 {
		return utils.NotFoundError("car")
	}

	r.invalidate(ctx, id)
	return nil
}

// Catalog queries
func (r *carRepository) List(ctx context.Context, filter *interfaces.CarFilter, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	query := bson.M{"is_deleted": false}

	if filter != nil {
		if filter.Brand != "" {
			query["brand"] = filter.Brand
		}
		if filter.Status != "" {
			query["status"] = filter.Status
		}
		if filter.IsElectric != nil {
			query["is_electric"] = *filter.IsElectric
		}
		for k, v := range utils.RangeFilter("pricing.daily_rate", filter.MinPrice, filter.MaxPrice) {
			query[k] = v
		}
		for k, v := range utils.RangeFilter("rating_stats.average_rating", filter.MinRating, nil) {
			query[k] = v
		}
	}

	if search := params.GetSearchFilter([]string{"name", "brand", "model", "description"}); len(search) > 0 {
		query["$or"] = search["$or"]
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count cars: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cars: %w", err)
	}
	defer cursor.Close(ctx)

	var cars []*models.Car
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, 0, fmt.Errorf("failed to decode cars: %w", err)
	}

	return cars, total, nil
}

func (r *carRepository) Related(ctx context.Context, id primitive.ObjectID, brand string, limit int) ([]*models.Car, error) {
	filter := bson.M{
		"_id":        bson.M{"$ne": id},
		"brand":      brand,
		"is_deleted": false,
	}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "rating_stats.average_rating", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find related cars: %w", err)
	}
	defer cursor.Close(ctx)

	var cars []*models.Car
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, fmt.Errorf("failed to decode related cars: %w", err)
	}

	return cars, nil
}

func (r *carRepository) Brands(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "brand", bson.M{"is_deleted": false})
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	brands := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			brands = append(brands, s)
		}
	}

	return brands, nil
}

func (r *carRepository) TopRated(ctx context.Context, limit int) ([]*models.Car, error) {
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{
			{Key: "rating_stats.average_rating", Value: -1},
			{Key: "rating_stats.total_ratings", Value: -1},
		})

	cursor, err := r.collection.Find(ctx, bson.M{"is_deleted": false}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find top rated cars: %w", err)
	}
	defer cursor.Close(ctx)

	var cars []*models.Car
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, fmt.Errorf("failed to decode top rated cars: %w", err)
	}

	return cars, nil
}

// Booking lifecycle

// ClaimAvailable atomically flips an available car to booked. The status
// guard in the filter is what makes two concurrent bookings of the same
// car impossible: the second update matches zero documents.
func (r *carRepository) ClaimAvailable(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.CarStatusAvailable, "is_deleted": false},
		bson.M{"$set": bson.M{"status": models.CarStatusBooked, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to claim car: %w", err)
	}
	if result.MatchedCount == 0 {
		return utils.ConflictError(utils.ErrCarUnavailable)
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *carRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CarStatus) error {
	return r.Update(ctx, id, map[string]interface{}{"status": status})
}

func (r *carRepository) UpdateRatingStats(ctx context.Context, id primitive.ObjectID, stats models.RatingStats) error {
	return r.Update(ctx, id, map[string]interface{}{"rating_stats": stats})
}

// Dashboard statistics
func (r *carRepository) CountByStatus(ctx context.Context) (map[models.CarStatus]int64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"is_deleted": false}},
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count cars by status: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[models.CarStatus]int64)
	for cursor.Next(ctx) {
		var row struct {
			Status models.CarStatus `bson:"_id"`
			Count  int64            `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode car status counts: %w", err)
		}
		counts[row.Status] = row.Count
	}

	return counts, cursor.Err()
}

func (r *carRepository) CountByFuelType(ctx context.Context) (map[models.FuelType]int64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"is_deleted": false}},
		{"$group": bson.M{"_id": "$specifications.fuel_type", "count": bson.M{"$sum": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count cars by fuel type: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[models.FuelType]int64)
	for cursor.Next(ctx) {
		var row struct {
			FuelType models.FuelType `bson:"_id"`
			Count    int64           `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode fuel type counts: %w", err)
		}
		counts[row.FuelType] = row.Count
	}

	return counts, cursor.Err()
}

func (r *carRepository) invalidate(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		_ = r.cache.Delete(ctx, utils.CacheCarPrefix+id.Hex())
	}
}
