package models

import (
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CarStatus string
type Transmission string
type FuelType string

const (
	CarStatusAvailable CarStatus = "available"
	CarStatusReserved  CarStatus = "reserved"
	CarStatusBooked    CarStatus = "booked"

	TransmissionAutomatic Transmission = "automatic"
	TransmissionManual    Transmission = "manual"

	FuelTypePetrol   FuelType = "petrol"
	FuelTypeDiesel   FuelType = "diesel"
	FuelTypeElectric FuelType = "electric"
	FuelTypeHybrid   FuelType = "hybrid"
)

type Car struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name" validate:"required"`
	Brand          string             `json:"brand" bson:"brand" validate:"required"`
	Model          string             `json:"model" bson:"model" validate:"required"`
	Year           string             `json:"year" bson:"year" validate:"required"`
	Description    string             `json:"description" bson:"description" validate:"required"`
	Color          string             `json:"color" bson:"color" validate:"required"`
	IsElectric     bool               `json:"is_electric" bson:"is_electric"`
	Status         CarStatus          `json:"status" bson:"status" default:"available"`
	Features       []string           `json:"features" bson:"features"`
	Specifications Specifications     `json:"specifications" bson:"specifications"`
	Pricing        PricingSheet       `json:"pricing" bson:"pricing" validate:"required"`
	Images         []string           `json:"images" bson:"images"`
	RatingStats    RatingStats        `json:"rating_stats" bson:"rating_stats"`
	IsDeleted      bool               `json:"is_deleted" bson:"is_deleted" default:"false"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

type Specifications struct {
	Transmission    Transmission `json:"transmission" bson:"transmission" validate:"required,oneof=automatic manual"`
	FuelType        FuelType     `json:"fuel_type" bson:"fuel_type" validate:"required,oneof=petrol diesel electric hybrid"`
	SeatingCapacity int          `json:"seating_capacity" bson:"seating_capacity" validate:"required,min=1"`
	Mileage         float64      `json:"mileage" bson:"mileage" validate:"required,min=0"`
}

// PricingSheet holds the tiered rates a booking is billed against. All
// rates are flat non-negative amounts in the platform currency.
type PricingSheet struct {
	BasePrice      float64 `json:"base_price" bson:"base_price" validate:"min=0"`
	HourlyRate     float64 `json:"hourly_rate" bson:"hourly_rate" validate:"required,min=0"`
	DailyRate      float64 `json:"daily_rate" bson:"daily_rate" validate:"required,min=0"`
	WeeklyRate     float64 `json:"weekly_rate" bson:"weekly_rate" validate:"required,min=0"`
	MonthlyRate    float64 `json:"monthly_rate" bson:"monthly_rate" validate:"required,min=0"`
	InsurancePrice float64 `json:"insurance_price" bson:"insurance_price" validate:"min=0"`
	ChildSeatPrice float64 `json:"child_seat_price" bson:"child_seat_price" validate:"min=0"`
	GPSPrice       float64 `json:"gps_price" bson:"gps_price" validate:"min=0"`
}

// Valid reports whether every rate is a finite non-negative number.
func (p PricingSheet) Valid() bool {
	for _, rate := range []float64{
		p.BasePrice, p.HourlyRate, p.DailyRate, p.WeeklyRate,
		p.MonthlyRate, p.InsurancePrice, p.ChildSeatPrice, p.GPSPrice,
	} {
		if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
			return false
		}
	}
	return true
}

// RatingDistribution counts reviews per star value. The key domain is
// exactly 1..5; there is no zero bucket.
type RatingDistribution struct {
	One   int64 `json:"1" bson:"1"`
	Two   int64 `json:"2" bson:"2"`
	Three int64 `json:"3" bson:"3"`
	Four  int64 `json:"4" bson:"4"`
	Five  int64 `json:"5" bson:"5"`
}

func (d RatingDistribution) Count(rating int) int64 {
	switch rating {
	case 1:
		return d.One
	case 2:
		return d.Two
	case 3:
		return d.Three
	case 4:
		return d.Four
	case 5:
		return d.Five
	}
	return 0
}

func (d RatingDistribution) Total() int64 {
	return d.One + d.Two + d.Three + d.Four + d.Five
}

type RatingStats struct {
	AverageRating      float64            `json:"average_rating" bson:"average_rating"`
	TotalRatings       int64              `json:"total_ratings" bson:"total_ratings"`
	RatingDistribution RatingDistribution `json:"rating_distribution" bson:"rating_distribution"`
}

// Apply folds one new rating into the running aggregate and returns the
// updated stats. The average is rounded half-up to one decimal place.
// Invariant preserved: the distribution total always equals TotalRatings.
func (s RatingStats) Apply(rating int) (RatingStats, error) {
	if rating < 1 || rating > 5 {
		return s, fmt.Errorf("rating %d outside 1..5", rating)
	}

	next := s
	switch rating {
	case 1:
		next.RatingDistribution.One++
	case 2:
		next.RatingDistribution.Two++
	case 3:
		next.RatingDistribution.Three++
	case 4:
		next.RatingDistribution.Four++
	case 5:
		next.RatingDistribution.Five++
	}

	newTotal := s.TotalRatings + 1
	next.TotalRatings = newTotal
	next.AverageRating = round1((s.AverageRating*float64(s.TotalRatings) + float64(rating)) / float64(newTotal))

	return next, nil
}

// round1 rounds half-up to one decimal place.
func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
