package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite is unique per (email, donation_id).
type Favorite struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email       string             `bson:"email" json:"email"`
	DonationID  primitive.ObjectID `bson:"donation_id" json:"donationId"`
	FavoritedAt time.Time          `bson:"favorited_at" json:"favoritedAt"`
}
