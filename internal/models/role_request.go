package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleRequest states.
const (
	RoleRequestPending  = "pending"
	RoleRequestApproved = "approved"
	RoleRequestRejected = "rejected"
)

// RoleRequest is a paid application to be elevated to another role.
type RoleRequest struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email         string             `bson:"email" json:"email"`
	Role          string             `bson:"role" json:"role"`
	Organization  string             `bson:"organization" json:"organization" validate:"required"`
	Mission       string             `bson:"mission" json:"mission" validate:"required"`
	Status        string             `bson:"status" json:"status"`
	TransactionID string             `bson:"transaction_id" json:"transactionId"`
	AmountCents   int64              `bson:"amount_cents" json:"amount"`
	Date          time.Time          `bson:"date" json:"date"`
}
