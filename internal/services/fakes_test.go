package services

import (
	"context"
	"time"

	"steeraway/internal/models"
	"steeraway/internal/repositories/interfaces"
	"steeraway/internal/utils"
	"steeraway/pkg/logger"
	"steeraway/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// passthroughTxn runs the function directly; atomicity is the
// database's concern, not the service logic under test.
type passthroughTxn struct{}

func (passthroughTxn) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testLogger() *logger.Logger {
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stderr"})
	if err != nil {
		panic(err)
	}
	return log
}

// fakeCarRepo is an in-memory CarRepository.
type fakeCarRepo struct {
	cars map[primitive.ObjectID]*models.Car
}

func newFakeCarRepo(cars ...*models.Car) *fakeCarRepo {
	repo := &fakeCarRepo{cars: make(map[primitive.ObjectID]*models.Car)}
	for _, car := range cars {
		repo.cars[car.ID] = car
	}
	return repo
}

func (r *fakeCarRepo) Create(ctx context.Context, car *models.Car) error {
	car.ID = primitive.NewObjectID()
	r.cars[car.ID] = car
	return nil
}

func (r *fakeCarRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	car, ok := r.cars[id]
	if !ok || car.IsDeleted {
		return nil, utils.NotFoundError("car")
	}
	copied := *car
	return &copied, nil
}

func (r *fakeCarRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	car, ok := r.cars[id]
	if !ok {
		return utils.NotFoundError("car")
	}
	if pricing, ok := updates["pricing"].(models.PricingSheet); ok {
		car.Pricing = pricing
	}
	return nil
}

func (r *fakeCarRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	car, ok := r.cars[id]
	if !ok {
		return utils.NotFoundError("car")
	}
	car.IsDeleted = true
	return nil
}

func (r *fakeCarRepo) List(ctx context.Context, filter *interfaces.CarFilter, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	var cars []*models.Car
	for _, car := range r.cars {
		cars = append(cars, car)
	}
	return cars, int64(len(cars)), nil
}

func (r *fakeCarRepo) Related(ctx context.Context, id primitive.ObjectID, brand string, limit int) ([]*models.Car, error) {
	return nil, nil
}

func (r *fakeCarRepo) Brands(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (r *fakeCarRepo) TopRated(ctx context.Context, limit int) ([]*models.Car, error) {
	return nil, nil
}

func (r *fakeCarRepo) ClaimAvailable(ctx context.Context, id primitive.ObjectID) error {
	car, ok := r.cars[id]
	if !ok || car.IsDeleted || car.Status != models.CarStatusAvailable {
		return utils.ConflictError(utils.ErrCarUnavailable)
	}
	car.Status = models.CarStatusBooked
	return nil
}

func (r *fakeCarRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CarStatus) error {
	car, ok := r.cars[id]
	if !ok {
		return utils.NotFoundError("car")
	}
	car.Status = status
	return nil
}

func (r *fakeCarRepo) UpdateRatingStats(ctx context.Context, id primitive.ObjectID, stats models.RatingStats) error {
	car, ok := r.cars[id]
	if !ok {
		return utils.NotFoundError("car")
	}
	car.RatingStats = stats
	return nil
}

func (r *fakeCarRepo) CountByStatus(ctx context.Context) (map[models.CarStatus]int64, error) {
	counts := make(map[models.CarStatus]int64)
	for _, car := range r.cars {
		counts[car.Status]++
	}
	return counts, nil
}

func (r *fakeCarRepo) CountByFuelType(ctx context.Context) (map[models.FuelType]int64, error) {
	counts := make(map[models.FuelType]int64)
	for _, car := range r.cars {
		counts[car.Specifications.FuelType]++
	}
	return counts, nil
}

// fakeBookingRepo is an in-memory BookingRepository.
type fakeBookingRepo struct {
	bookings map[primitive.ObjectID]*models.Booking
}

func newFakeBookingRepo(bookings ...*models.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[primitive.ObjectID]*models.Booking)}
	for _, booking := range bookings {
		repo.bookings[booking.ID] = booking
	}
	return repo
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, utils.NotFoundError("booking")
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	booking, ok := r.bookings[id]
	if !ok {
		return utils.NotFoundError("booking")
	}
	for key, value := range updates {
		switch key {
		case "status":
			booking.Status = value.(models.BookingStatus)
		case "payment_status":
			booking.PaymentStatus = value.(models.PaymentStatus)
		case "transaction_id":
			booking.TransactionID = value.(string)
		case "paid_at":
			paidAt := value.(time.Time)
			booking.PaidAt = &paidAt
		case "end_date":
			booking.EndDate = value.(string)
		case "end_time":
			booking.EndTime = value.(string)
		case "base_cost":
			booking.BaseCost = value.(float64)
		case "additional_costs":
			booking.AdditionalCosts = value.(models.AdditionalCosts)
		case "total_cost":
			booking.TotalCost = value.(float64)
		}
	}
	return nil
}

func (r *fakeBookingRepo) GetByTransactionID(ctx context.Context, transactionID string) (*models.Booking, error) {
	for _, booking := range r.bookings {
		if booking.TransactionID == transactionID && transactionID != "" {
			copied := *booking
			return &copied, nil
		}
	}
	return nil, utils.NotFoundError("booking")
}

func (r *fakeBookingRepo) ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	var bookings []*models.Booking
	for _, booking := range r.bookings {
		if booking.UserID == userID {
			bookings = append(bookings, booking)
		}
	}
	return bookings, int64(len(bookings)), nil
}

func (r *fakeBookingRepo) List(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	var bookings []*models.Booking
	for _, booking := range r.bookings {
		if status == "" || booking.Status == status {
			bookings = append(bookings, booking)
		}
	}
	return bookings, int64(len(bookings)), nil
}

func (r *fakeBookingRepo) HasBookingForCar(ctx context.Context, userID, carID primitive.ObjectID) (bool, error) {
	for _, booking := range r.bookings {
		if booking.UserID == userID && booking.CarID == carID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) CountByStatus(ctx context.Context) (map[models.BookingStatus]int64, error) {
	counts := make(map[models.BookingStatus]int64)
	for _, booking := range r.bookings {
		counts[booking.Status]++
	}
	return counts, nil
}

func (r *fakeBookingRepo) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	for _, booking := range r.bookings {
		if booking.PaymentStatus == models.PaymentStatusPaid {
			total += booking.TotalCost
		}
	}
	return total, nil
}

func (r *fakeBookingRepo) CountByPaymentStatus(ctx context.Context) (map[models.PaymentStatus]int64, error) {
	counts := make(map[models.PaymentStatus]int64)
	for _, booking := range r.bookings {
		counts[booking.PaymentStatus]++
	}
	return counts, nil
}

func (r *fakeBookingRepo) RevenueByMonth(ctx context.Context, months int) ([]*interfaces.MonthlyRevenue, error) {
	return nil, nil
}

func (r *fakeBookingRepo) RevenueByDay(ctx context.Context, days int) ([]*interfaces.DailyRevenue, error) {
	return nil, nil
}

func (r *fakeBookingRepo) StatsByUser(ctx context.Context, userID primitive.ObjectID) (*interfaces.UserBookingStats, error) {
	stats := &interfaces.UserBookingStats{}
	for _, booking := range r.bookings {
		if booking.UserID != userID {
			continue
		}
		stats.TotalBookings++
		if booking.Status == models.BookingStatusPending || booking.Status == models.BookingStatusApproved {
			stats.ActiveBookings++
		}
		if booking.PaymentStatus == models.PaymentStatusPaid {
			stats.TotalSpent += booking.TotalCost
			stats.BaseSpent += booking.BaseCost
		}
	}
	stats.AddOnSpent = stats.TotalSpent - stats.BaseSpent
	return stats, nil
}

func (r *fakeBookingRepo) Recent(ctx context.Context, limit int) ([]*models.Booking, error) {
	return nil, nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, utils.NotFoundError("user")
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, utils.NotFoundError("user")
}

func (r *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if _, ok := r.users[id]; !ok {
		return utils.NotFoundError("user")
	}
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	user, ok := r.users[id]
	if !ok {
		return utils.NotFoundError("user")
	}
	user.Password = hashedPassword
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	var users []*models.User
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, int64(len(users)), nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// fakeReviewRepo is an in-memory ReviewRepository.
type fakeReviewRepo struct {
	reviews []*models.Review
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *models.Review) error {
	for _, existing := range r.reviews {
		if existing.UserID == review.UserID && existing.CarID == review.CarID {
			return utils.DuplicateReviewError("user has already reviewed this car")
		}
	}
	review.ID = primitive.NewObjectID()
	r.reviews = append(r.reviews, review)
	return nil
}

func (r *fakeReviewRepo) GetByUserAndCar(ctx context.Context, userID, carID primitive.ObjectID) (*models.Review, error) {
	for _, review := range r.reviews {
		if review.UserID == userID && review.CarID == carID {
			return review, nil
		}
	}
	return nil, utils.NotFoundError("review")
}

func (r *fakeReviewRepo) ListByCar(ctx context.Context, carID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Review, int64, error) {
	var reviews []*models.Review
	for _, review := range r.reviews {
		if review.CarID == carID {
			reviews = append(reviews, review)
		}
	}
	return reviews, int64(len(reviews)), nil
}

func (r *fakeReviewRepo) Recent(ctx context.Context, limit int) ([]*models.Review, error) {
	return r.reviews, nil
}

// fakeSubscriberRepo is an in-memory SubscriberRepository.
type fakeSubscriberRepo struct {
	subscribers map[string]*models.Subscriber
}

func newFakeSubscriberRepo(emails ...string) *fakeSubscriberRepo {
	repo := &fakeSubscriberRepo{subscribers: make(map[string]*models.Subscriber)}
	for _, email := range emails {
		repo.subscribers[email] = &models.Subscriber{
			ID:           primitive.NewObjectID(),
			Email:        email,
			IsSubscribed: true,
			SubscribedAt: time.Now(),
		}
	}
	return repo
}

func (r *fakeSubscriberRepo) Upsert(ctx context.Context, email string) (*models.Subscriber, error) {
	subscriber, ok := r.subscribers[email]
	if !ok {
		subscriber = &models.Subscriber{ID: primitive.NewObjectID(), Email: email}
		r.subscribers[email] = subscriber
	}
	subscriber.IsSubscribed = true
	subscriber.SubscribedAt = time.Now()
	return subscriber, nil
}

func (r *fakeSubscriberRepo) Unsubscribe(ctx context.Context, email string) error {
	subscriber, ok := r.subscribers[email]
	if !ok {
		return utils.NotFoundError("subscriber")
	}
	subscriber.IsSubscribed = false
	return nil
}

func (r *fakeSubscriberRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Subscriber, int64, error) {
	var subscribers []*models.Subscriber
	for _, subscriber := range r.subscribers {
		if subscriber.IsSubscribed {
			subscribers = append(subscribers, subscriber)
		}
	}
	return subscribers, int64(len(subscribers)), nil
}

func (r *fakeSubscriberRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	for _, subscriber := range r.subscribers {
		if subscriber.IsSubscribed {
			count++
		}
	}
	return count, nil
}

// fakeGateway scripts the provider's answers.
type fakeGateway struct {
	initiateErr error
	verified    bool
	verifyErr   error

	lastRequest *payment.PaymentRequest
}

func (g *fakeGateway) Initiate(ctx context.Context, request *payment.PaymentRequest) (*payment.GatewayResponse, error) {
	if g.initiateErr != nil {
		return nil, g.initiateErr
	}
	g.lastRequest = request
	return &payment.GatewayResponse{
		TransactionID: request.TransactionID,
		PaymentURL:    "https://pay.example.com/" + request.TransactionID,
		Provider:      "fake",
	}, nil
}

func (g *fakeGateway) Verify(ctx context.Context, transactionID string) (*payment.VerificationResult, error) {
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	status := "Failed"
	if g.verified {
		status = "Successful"
	}
	return &payment.VerificationResult{
		TransactionID: transactionID,
		Verified:      g.verified,
		Status:        status,
	}, nil
}
