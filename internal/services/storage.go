package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ismail-dev-code/meal-giver-server/internal/models"
)

// ErrNotFound is returned by stores when the referenced document is absent.
var ErrNotFound = errors.New("not found")

// UserStore persists user records keyed by email.
type UserStore interface {
	// Upsert inserts the user when the email is new, otherwise refreshes
	// last_log_in only. Reports whether a new record was inserted.
	Upsert(ctx context.Context, user models.User) (models.User, bool, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	SetRole(ctx context.Context, email, role string) error
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, email string) error
}

// DonationStore persists donation offers.
type DonationStore interface {
	Insert(ctx context.Context, d *models.Donation) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Donation, error)
	// UpdateFields applies a field-wise patch and stamps updated_at.
	UpdateFields(ctx context.Context, id primitive.ObjectID, set map[string]interface{}) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, approvedOnly bool) ([]models.Donation, error)
	Featured(ctx context.Context, limit int64) ([]models.Donation, error)
}

// RequestStore persists pickup requests. The conditional methods are the
// compare-and-set primitives the matcher's exclusivity rule is built on.
type RequestStore interface {
	Insert(ctx context.Context, r *models.Request) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Request, error)
	// HasActive reports whether a non-rejected request exists for the
	// (donation, charity) pair.
	HasActive(ctx context.Context, donationID primitive.ObjectID, charityEmail string) (bool, error)
	// CompareAndSetStatus transitions id from->to; false when the current
	// status no longer matches from.
	CompareAndSetStatus(ctx context.Context, id primitive.ObjectID, from, to string) (bool, error)
	// RejectSiblings forces every request for donationID except exceptID to
	// rejected, regardless of prior state.
	RejectSiblings(ctx context.Context, donationID, exceptID primitive.ObjectID) error
	// ConfirmPickup transitions id accepted->picked_up stamping pickup_date;
	// false when the request is not accepted.
	ConfirmPickup(ctx context.Context, id primitive.ObjectID, at time.Time) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ByRestaurant(ctx context.Context, restaurantEmail string) ([]models.Request, error)
	ByCharity(ctx context.Context, charityEmail string) ([]models.Request, error)
	ByCharityAndStatus(ctx context.Context, charityEmail string, statuses []string) ([]models.Request, error)
}

// RoleRequestStore persists role elevation applications.
type RoleRequestStore interface {
	Insert(ctx context.Context, rr *models.RoleRequest) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.RoleRequest, error)
	// HasActive reports whether a pending-or-approved application exists for
	// the email.
	HasActive(ctx context.Context, email string) (bool, error)
	// CompareAndSetStatus transitions id pending->status; false on a
	// conflicting current state.
	CompareAndSetStatus(ctx context.Context, id primitive.ObjectID, from, to string) (bool, error)
	List(ctx context.Context, statusFilter string) ([]models.RoleRequest, error)
	ByEmail(ctx context.Context, email string) ([]models.RoleRequest, error)
}

// FavoriteStore persists the favorites journal.
type FavoriteStore interface {
	Insert(ctx context.Context, f *models.Favorite) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Favorite, error)
	Exists(ctx context.Context, email string, donationID primitive.ObjectID) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ByEmail(ctx context.Context, email string) ([]models.Favorite, error)
}

// ReviewStore persists donation reviews.
type ReviewStore interface {
	Insert(ctx context.Context, r *models.Review) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ByDonation(ctx context.Context, donationID primitive.ObjectID) ([]models.Review, error)
}
