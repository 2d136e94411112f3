package utils

import "time"

// Application Constants
const (
	AppName    = "SteerAway"
	AppVersion = "1.0.0"

	// Default values
	DefaultLanguage = "en"
	DefaultCurrency = "BDT"
	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8
	PasswordMaxLength  = 128
	BcryptCost         = 12

	// Booking Constants
	MinRating              = 1
	MaxRating              = 5
	TransactionIDPrefix    = "TXN-"
	TransactionIDHexLength = 16

	// Rate Limiting
	DefaultRateLimit = 100
	LoginRateLimit   = 5

	// Dashboard
	DashboardWindow       = 30 * 24 * time.Hour
	RecentBookingsLimit   = 10
	FeaturedCarsLimit     = 3
	RelatedCarsLimit      = 4
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrUserNotFound       = "user not found"
	ErrUserExists         = "user already exists"
	ErrInvalidToken       = "invalid token"
	ErrTokenExpired       = "token expired"
	ErrInvalidInput       = "invalid input"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrNotFound           = "not found"
	ErrConflict           = "conflict"
	ErrValidationFailed   = "validation failed"
	ErrPaymentFailed      = "payment failed"
	ErrCarNotFound        = "car not found"
	ErrCarUnavailable     = "car is unavailable"
	ErrBookingNotFound    = "booking not found"
)

// Cache Keys
const (
	CacheUserPrefix    = "user:"
	CacheCarPrefix     = "car:"
	CacheBookingPrefix = "booking:"
	CacheRateLimitPrefix = "rate_limit:"
)

// Event Types
const (
	EventUserRegistered   = "user_registered"
	EventUserLogin        = "user_login"
	EventBookingCreated   = "booking_created"
	EventBookingApproved  = "booking_approved"
	EventBookingCancelled = "booking_cancelled"
	EventCarReturned      = "car_returned"
	EventPaymentInitiated = "payment_initiated"
	EventPaymentVerified  = "payment_verified"
	EventReviewCreated    = "review_created"
)
