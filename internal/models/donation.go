package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation lifecycle states.
const (
	DonationAvailable = "available"
	DonationRequested = "requested"
	DonationAccepted  = "accepted"
	DonationRejected  = "rejected"
	DonationPickedUp  = "picked_up"
)

// ValidDonationStatus reports whether status is a known donation state.
func ValidDonationStatus(status string) bool {
	switch status {
	case DonationAvailable, DonationRequested, DonationAccepted, DonationRejected, DonationPickedUp:
		return true
	}
	return false
}

// Restaurant is the embedded supplier block on a donation.
type Restaurant struct {
	Name     string `bson:"name" json:"name" validate:"required"`
	Email    string `bson:"email" json:"email" validate:"required,email"`
	Location string `bson:"location" json:"location" validate:"required"`
}

type Donation struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title        string             `bson:"title" json:"title" validate:"required"`
	Type         string             `bson:"type" json:"type" validate:"required"`
	Quantity     string             `bson:"quantity" json:"quantity" validate:"required"`
	PickupWindow string             `bson:"pickup_window" json:"pickupWindow" validate:"required"`
	Restaurant   Restaurant         `bson:"restaurant" json:"restaurant"`
	Image        string             `bson:"image" json:"image" validate:"required"`
	Status       string             `bson:"status" json:"status"`
	Approved     bool               `bson:"approved" json:"approved"`
	Featured     bool               `bson:"featured" json:"featured"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}
