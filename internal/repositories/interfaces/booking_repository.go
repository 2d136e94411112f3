package interfaces

import (
	"context"

	"steeraway/internal/models"
	"steeraway/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MonthlyRevenue is one month's paid booking revenue, labeled "Jan",
// "Feb" and so on.
type MonthlyRevenue struct {
	Month    string  `json:"month" bson:"month"`
	Revenue  float64 `json:"revenue" bson:"revenue"`
	Bookings int64   `json:"bookings" bson:"bookings"`
}

// DailyRevenue is one day's paid booking revenue, keyed "2024-01-31".
type DailyRevenue struct {
	Date     string  `json:"date" bson:"date"`
	Revenue  float64 `json:"revenue" bson:"revenue"`
	Bookings int64   `json:"bookings" bson:"bookings"`
}

// UserBookingStats summarizes one customer's booking history. Spending
// figures only count paid bookings.
type UserBookingStats struct {
	TotalBookings  int64   `json:"total_bookings"`
	ActiveBookings int64   `json:"active_bookings"`
	TotalSpent     float64 `json:"total_spent"`
	BaseSpent      float64 `json:"base_spent"`
	AddOnSpent     float64 `json:"addon_spent"`
}

type BookingRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// Payment correlation
	GetByTransactionID(ctx context.Context, transactionID string) (*models.Booking, error)

	// Listing
	ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	List(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	HasBookingForCar(ctx context.Context, userID, carID primitive.ObjectID) (bool, error)

	// Dashboard statistics
	CountByStatus(ctx context.Context) (map[models.BookingStatus]int64, error)
	CountByPaymentStatus(ctx context.Context) (map[models.PaymentStatus]int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
	RevenueByMonth(ctx context.Context, months int) ([]*MonthlyRevenue, error)
	RevenueByDay(ctx context.Context, days int) ([]*DailyRevenue, error)
	Recent(ctx context.Context, limit int) ([]*models.Booking, error)
	StatsByUser(ctx context.Context, userID primitive.ObjectID) (*UserBookingStats, error)
}
