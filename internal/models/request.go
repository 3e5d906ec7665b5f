package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request lifecycle states.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
	RequestPickedUp = "picked_up"
)

// Request is a charity's claim against one donation. The restaurant drives
// pending->accepted/rejected, the charity drives accepted->picked_up.
type Request struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	DonationID      primitive.ObjectID `bson:"donation_id" json:"donationId"`
	RestaurantName  string             `bson:"restaurant_name" json:"restaurantName"`
	RestaurantEmail string             `bson:"restaurant_email" json:"restaurantEmail"`
	CharityEmail    string             `bson:"charity_email" json:"charityEmail"`
	CharityName     string             `bson:"charity_name" json:"charityName"`
	DonationTitle   string             `bson:"donation_title" json:"donationTitle"`
	Description     string             `bson:"description" json:"requestDescription" validate:"required"`
	PickupTime      string             `bson:"pickup_time" json:"pickupTime" validate:"required"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	PickupDate      time.Time          `bson:"pickup_date,omitempty" json:"pickupDate,omitempty"`
}
