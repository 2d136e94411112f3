package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string
type PaymentStatus string
type DurationClass string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusApproved  BookingStatus = "Approved"
	BookingStatusCancelled BookingStatus = "Cancelled"
	BookingStatusReturned  BookingStatus = "Returned"

	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"

	DurationHourly  DurationClass = "hourly"
	DurationDaily   DurationClass = "daily"
	DurationWeekly  DurationClass = "weekly"
	DurationMonthly DurationClass = "monthly"
)

type AdditionalFeatures struct {
	Insurance bool `json:"insurance" bson:"insurance"`
	GPS       bool `json:"gps" bson:"gps"`
	ChildSeat bool `json:"child_seat" bson:"child_seat"`
}

type AdditionalCosts struct {
	InsuranceCost float64 `json:"insurance_cost" bson:"insurance_cost"`
	GPSCost       float64 `json:"gps_cost" bson:"gps_cost"`
	ChildSeatCost float64 `json:"child_seat_cost" bson:"child_seat_cost"`
}

func (c AdditionalCosts) Sum() float64 {
	return c.InsuranceCost + c.GPSCost + c.ChildSeatCost
}

// Booking is the single source of truth for one rental's lifecycle.
// Costs are computed and cached at creation and again at return time;
// they are never recomputed on read. A booking is never physically
// deleted: cancellation is a status transition.
type Booking struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID             primitive.ObjectID `json:"user_id" bson:"user" validate:"required"`
	CarID              primitive.ObjectID `json:"car_id" bson:"car" validate:"required"`
	Date               string             `json:"date" bson:"date" validate:"required"`
	StartTime          string             `json:"start_time" bson:"start_time" validate:"required"`
	EndDate            string             `json:"end_date" bson:"end_date"`
	EndTime            string             `json:"end_time" bson:"end_time"`
	Duration           DurationClass      `json:"duration" bson:"duration" validate:"required"`
	AdditionalFeatures AdditionalFeatures `json:"additional_features" bson:"additional_features"`
	BaseCost           float64            `json:"base_cost" bson:"base_cost"`
	AdditionalCosts    AdditionalCosts    `json:"additional_costs" bson:"additional_costs"`
	TotalCost          float64            `json:"total_cost" bson:"total_cost"`
	PaymentStatus      PaymentStatus      `json:"payment_status" bson:"payment_status" default:"Pending"`
	TransactionID      string             `json:"transaction_id" bson:"transaction_id"`
	PaidAt             *time.Time         `json:"paid_at" bson:"paid_at"`
	NIDOrPassport      string             `json:"nid_or_passport" bson:"nid_or_passport" validate:"required"`
	DrivingLicense     string             `json:"driving_license" bson:"driving_license" validate:"required"`
	Status             BookingStatus      `json:"status" bson:"status" default:"Pending"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
}

// IsTerminal reports whether no further lifecycle transition is allowed.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusReturned || b.Status == BookingStatusCancelled
}
