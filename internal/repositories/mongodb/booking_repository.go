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

type bookingRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewBookingRepository(db *mongo.Database, cache CacheService) interfaces.BookingRepository {
	return &bookingRepository{
		collection: db.Collection("bookings"),
		cache:      cache,
	}
}

// Basic CRUD operations
func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()
	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}
	if booking.PaymentStatus == "" {
		booking.PaymentStatus = models.PaymentStatusPending
	}

	_, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NotFoundError("booking")
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return utils.NotFoundError("booking")
	}

	if r.cache != nil {
		_ = r.cache.Delete(ctx, utils.CacheBookingPrefix+id.Hex())
	}

	return nil
}

// Payment correlation
func (r *bookingRepository) GetByTransactionID(ctx context.Context, transactionID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"transaction_id": transactionID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NotFoundError("booking")
		}
		return nil, fmt.Errorf("failed to get booking by transaction: %w", err)
	}

	return &booking, nil
}

// Listing
func (r *bookingRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.list(ctx, bson.M{"user": userID}, params)
}

func (r *bookingRepository) List(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.list(ctx, filter, params)
}

func (r *bookingRepository) HasBookingForCar(ctx context.Context, userID, carID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user": userID, "car": carID})
	if err != nil {
		return false, fmt.Errorf("failed to check bookings for car: %w", err)
	}
	return count > 0, nil
}

func (r *bookingRepository) list(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, total, nil
}

// Dashboard statistics
func (r *bookingRepository) CountByStatus(ctx context.Context) (map[models.BookingStatus]int64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[models.BookingStatus]int64)
	for cursor.Next(ctx) {
		var row struct {
			Status models.BookingStatus `bson:"_id"`
			Count  int64                `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode booking status counts: %w", err)
		}
		counts[row.Status] = row.Count
	}

	return counts, cursor.Err()
}

func (r *bookingRepository) CountByPaymentStatus(ctx context.Context) (map[models.PaymentStatus]int64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$payment_status", "count": bson.M{"$sum": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings by payment status: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[models.PaymentStatus]int64)
	for cursor.Next(ctx) {
		var row struct {
			Status models.PaymentStatus `bson:"_id"`
			Count  int64                `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode payment status counts: %w", err)
		}
		counts[row.Status] = row.Count
	}

	return counts, cursor.Err()
}

func (r *bookingRepository) TotalRevenue(ctx context.Context) (float64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"payment_status": models.PaymentStatusPaid}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$total_cost"}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		var row struct {
			Total float64 `bson:"total"`
		}
		if err := cursor.Decode(&row); err != nil {
			return 0, fmt.Errorf("failed to decode revenue: %w", err)
		}
		return row.Total, nil
	}

	return 0, cursor.Err()
}

func (r *bookingRepository) RevenueByMonth(ctx context.Context, months int) ([]*interfaces.MonthlyRevenue, error) {
	since := utils.StartOfMonth(time.Now().UTC().AddDate(0, -(months - 1), 0))

	pipeline := []bson.M{
		{"$match": bson.M{
			"payment_status": models.PaymentStatusPaid,
			"paid_at":        bson.M{"$gte": since},
		}},
		{"$group": bson.M{
			"_id":      bson.M{"year": bson.M{"$year": "$paid_at"}, "month": bson.M{"$month": "$paid_at"}},
			"revenue":  bson.M{"$sum": "$total_cost"},
			"bookings": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"_id.year": 1, "_id.month": 1}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var results []*interfaces.MonthlyRevenue
	for cursor.Next(ctx) {
		var row struct {
			ID struct {
				Year  int `bson:"year"`
				Month int `bson:"month"`
			} `bson:"_id"`
			Revenue  float64 `bson:"revenue"`
			Bookings int64   `bson:"bookings"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode monthly revenue: %w", err)
		}
		results = append(results, &interfaces.MonthlyRevenue{
			Month:    utils.MonthLabel(time.Date(row.ID.Year, time.Month(row.ID.Month), 1, 0, 0, 0, 0, time.UTC)),
			Revenue:  row.Revenue,
			Bookings: row.Bookings,
		})
	}

	return results, cursor.Err()
}

func (r *bookingRepository) RevenueByDay(ctx context.Context, days int) ([]*interfaces.DailyRevenue, error) {
	since := utils.StartOfDay(time.Now().UTC().AddDate(0, 0, -(days - 1)))

	pipeline := []bson.M{
		{"$match": bson.M{
			"payment_status": models.PaymentStatusPaid,
			"paid_at":        bson.M{"$gte": since},
		}},
		{"$group": bson.M{
			"_id":      bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$paid_at"}},
			"revenue":  bson.M{"$sum": "$total_cost"},
			"bookings": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"_id": 1}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var results []*interfaces.DailyRevenue
	for cursor.Next(ctx) {
		var row struct {
			Date     string  `bson:"_id"`
			Revenue  float64 `bson:"revenue"`
			Bookings int64   `bson:"bookings"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode daily revenue: %w", err)
		}
		results = append(results, &interfaces.DailyRevenue{
			Date:     row.Date,
			Revenue:  row.Revenue,
			Bookings: row.Bookings,
		})
	}

	return results, cursor.Err()
}

func (r *bookingRepository) StatsByUser(ctx context.Context, userID primitive.ObjectID) (*interfaces.UserBookingStats, error) {
	paid := bson.M{"$eq": []interface{}{"$payment_status", models.PaymentStatusPaid}}

	pipeline := []bson.M{
		{"$match": bson.M{"user": userID}},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": 1},
			"active": bson.M{"$sum": bson.M{"$cond": []interface{}{
				bson.M{"$in": []interface{}{"$status", []models.BookingStatus{
					models.BookingStatusPending, models.BookingStatusApproved,
				}}}, 1, 0,
			}}},
			"total_spent": bson.M{"$sum": bson.M{"$cond": []interface{}{paid, "$total_cost", 0}}},
			"base_spent":  bson.M{"$sum": bson.M{"$cond": []interface{}{paid, "$base_cost", 0}}},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user stats: %w", err)
	}
	defer cursor.Close(ctx)

	stats := &interfaces.UserBookingStats{}
	if cursor.Next(ctx) {
		var row struct {
			Total      int64   `bson:"total"`
			Active     int64   `bson:"active"`
			TotalSpent float64 `bson:"total_spent"`
			BaseSpent  float64 `bson:"base_spent"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode user stats: %w", err)
		}
		stats.TotalBookings = row.Total
		stats.ActiveBookings = row.Active
		stats.TotalSpent = row.TotalSpent
		stats.BaseSpent = row.BaseSpent
		stats.AddOnSpent = row.TotalSpent - row.BaseSpent
	}

	return stats, cursor.Err()
}

func (r *bookingRepository) Recent(ctx context.Context, limit int) ([]*models.Booking, error) {
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find recent bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode recent bookings: %w", err)
	}

	return bookings, nil
}
