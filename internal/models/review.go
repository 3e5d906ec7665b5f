package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	DonationID primitive.ObjectID `bson:"donation_id" json:"donationId"`
	UserEmail  string             `bson:"user_email" json:"userEmail"`
	UserName   string             `bson:"user_name" json:"userName"`
	Comment    string             `bson:"comment" json:"comment" validate:"required"`
	Rating     int                `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
