package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

type User struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name              string             `json:"name" bson:"name" validate:"required"`
	Email             string             `json:"email" bson:"email" validate:"required,email"`
	Password          string             `json:"-" bson:"password"`
	Role              UserRole           `json:"role" bson:"role" default:"user"`
	Phone             string             `json:"phone" bson:"phone"`
	Address           string             `json:"address" bson:"address"`
	Preferences       string             `json:"preferences" bson:"preferences"`
	PasswordChangedAt *time.Time         `json:"password_changed_at" bson:"password_changed_at"`
	IsDeleted         bool               `json:"is_deleted" bson:"is_deleted" default:"false"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}
