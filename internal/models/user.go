package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user record can hold.
const (
	RoleUser       = "user"
	RoleRestaurant = "restaurant"
	RoleCharity    = "charity"
	RoleAdmin      = "admin"
)

// ValidRole reports whether role is one of the known role literals.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleRestaurant, RoleCharity, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	Name      string             `bson:"name" json:"name"`
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	LastLogIn time.Time          `bson:"last_log_in" json:"last_log_in"`
}
