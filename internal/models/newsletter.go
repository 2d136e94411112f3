package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Subscriber struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email" validate:"required,email"`
	IsSubscribed bool               `json:"is_subscribed" bson:"is_subscribed" default:"true"`
	SubscribedAt time.Time          `json:"subscribed_at" bson:"subscribed_at"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}
