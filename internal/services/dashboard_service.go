package services

import (
	"context"

	"steeraway/internal/models"
	"steeraway/internal/repositories/interfaces"
	"steeraway/internal/utils"
	"steeraway/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	UserStats(ctx context.Context, userID primitive.ObjectID) (*interfaces.UserBookingStats, error)
}

type dashboardService struct {
	bookingRepo    interfaces.BookingRepository
	carRepo        interfaces.CarRepository
	userRepo       interfaces.UserRepository
	subscriberRepo interfaces.SubscriberRepository
	logger         *logger.Logger
}

type DashboardStats struct {
	TotalUsers        int64                           `json:"total_users"`
	TotalSubscribers  int64                           `json:"total_subscribers"`
	TotalRevenue      float64                         `json:"total_revenue"`
	CarsByStatus      map[models.CarStatus]int64      `json:"cars_by_status"`
	CarsByFuelType    map[models.FuelType]int64       `json:"cars_by_fuel_type"`
	BookingsByStatus  map[models.BookingStatus]int64  `json:"bookings_by_status"`
	BookingsByPayment map[models.PaymentStatus]int64  `json:"bookings_by_payment"`
	MonthlyRevenue    []*interfaces.MonthlyRevenue    `json:"monthly_revenue"`
	DailyRevenue      []*interfaces.DailyRevenue      `json:"daily_revenue"`
	RecentBookings    []*models.Booking               `json:"recent_bookings"`
}

func NewDashboardService(
	bookingRepo interfaces.BookingRepository,
	carRepo interfaces.CarRepository,
	userRepo interfaces.UserRepository,
	subscriberRepo interfaces.SubscriberRepository,
	logger *logger.Logger,
) DashboardService {
	return &dashboardService{
		bookingRepo:    bookingRepo,
		carRepo:        carRepo,
		userRepo:       userRepo,
		subscriberRepo: subscriberRepo,
		logger:         logger,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalSubscribers, err := s.subscriberRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalRevenue, err := s.bookingRepo.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}

	carsByStatus, err := s.carRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	bookingsByStatus, err := s.bookingRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	carsByFuelType, err := s.carRepo.CountByFuelType(ctx)
	if err != nil {
		return nil, err
	}

	bookingsByPayment, err := s.bookingRepo.CountByPaymentStatus(ctx)
	if err != nil {
		return nil, err
	}

	monthlyRevenue, err := s.bookingRepo.RevenueByMonth(ctx, 12)
	if err != nil {
		return nil, err
	}

	dailyRevenue, err := s.bookingRepo.RevenueByDay(ctx, 30)
	if err != nil {
		return nil, err
	}

	recentBookings, err := s.bookingRepo.Recent(ctx, utils.RecentBookingsLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalUsers:        totalUsers,
		TotalSubscribers:  totalSubscribers,
		TotalRevenue:      totalRevenue,
		CarsByStatus:      carsByStatus,
		CarsByFuelType:    carsByFuelType,
		BookingsByStatus:  bookingsByStatus,
		BookingsByPayment: bookingsByPayment,
		MonthlyRevenue:    monthlyRevenue,
		DailyRevenue:      dailyRevenue,
		RecentBookings:    recentBookings,
	}, nil
}

// UserStats summarizes the calling customer's own booking history.
func (s *dashboardService) UserStats(ctx context.Context, userID primitive.ObjectID) (*interfaces.UserBookingStats, error) {
	return s.bookingRepo.StatsByUser(ctx, userID)
}
