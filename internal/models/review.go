package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is written once and never updated. At most one review exists
// per (user, car) pair; its creation mutates the car's rating aggregate
// in the same transaction.
type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user" validate:"required"`
	CarID     primitive.ObjectID `json:"car_id" bson:"car" validate:"required"`
	Date      string             `json:"date" bson:"date" validate:"required"`
	Rating    int                `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Comment   string             `json:"comment" bson:"comment" validate:"required"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
