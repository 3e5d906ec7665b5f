package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ismail-dev-code/meal-giver-server/internal/auth"
	"github.com/ismail-dev-code/meal-giver-server/internal/httperr"
	"github.com/ismail-dev-code/meal-giver-server/internal/logger"
	"github.com/ismail-dev-code/meal-giver-server/internal/models"
)

// DonationInput is the create payload. Restaurant email is taken from the
// verified identity, never from the body.
type DonationInput struct {
	Title          string `json:"title" validate:"required"`
	Type           string `json:"type" validate:"required"`
	Quantity       string `json:"quantity" validate:"required"`
	PickupWindow   string `json:"pickupWindow" validate:"required"`
	RestaurantName string `json:"restaurantName" validate:"required"`
	Location       string `json:"location" validate:"required"`
	Image          string `json:"image" validate:"required"`
}

// DonationPatch is a field-wise update; nil fields are left untouched.
type DonationPatch struct {
	Title        *string `json:"title"`
	Type         *string `json:"type"`
	Quantity     *string `json:"quantity"`
	PickupWindow *string `json:"pickupWindow"`
	Location     *string `json:"location"`
	Image        *string `json:"image"`
}

// DonationService owns the donation state machine:
// available -> requested -> {accepted, rejected} -> picked_up.
type DonationService struct {
	donations DonationStore
}

func NewDonationService(donations DonationStore) *DonationService {
	return &DonationService{donations: donations}
}

// Create posts a new donation offer for the calling restaurant.
func (s *DonationService) Create(ctx context.Context, identity auth.Identity, in DonationInput) (models.Donation, error) {
	if err := checkRequired(in); err != nil {
		return models.Donation{}, err
	}

	now := time.Now()
	d := models.Donation{
		Title:        in.Title,
		Type:         in.Type,
		Quantity:     in.Quantity,
		PickupWindow: in.PickupWindow,
		Restaurant: models.Restaurant{
			Name:     in.RestaurantName,
			Email:    identity.Email,
			Location: in.Location,
		},
		Image:     in.Image,
		Status:    models.DonationAvailable,
		Approved:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.donations.Insert(ctx, &d); err != nil {
		return models.Donation{}, httperr.Internal("failed to create donation")
	}
	logger.Info().Str("donation", d.ID.Hex()).Str("restaurant", identity.Email).Msg("donation created")
	return d, nil
}

// Update applies a field-wise patch. Rejected donations are read-only to
// their owner; only an admin can still touch them.
func (s *DonationService) Update(ctx context.Context, id primitive.ObjectID, patch DonationPatch, actorEmail, actorRole string) (models.Donation, error) {
	d, err := s.load(ctx, id)
	if err != nil {
		return models.Donation{}, err
	}
	if err := s.authorizeOwner(d, actorEmail, actorRole); err != nil {
		return models.Donation{}, err
	}
	if d.Status == models.DonationRejected && actorRole != models.RoleAdmin {
		return models.Donation{}, httperr.Forbidden("rejected donations cannot be modified")
	}

	set := map[string]interface{}{}
	apply := func(field string, v *string) error {
		if v == nil {
			return nil
		}
		if *v == "" {
			return httperr.InvalidInput("field " + field + " may not be blank")
		}
		set[field] = *v
		return nil
	}
	for _, f := range []struct {
		name string
		val  *string
	}{
		{"title", patch.Title},
		{"type", patch.Type},
		{"quantity", patch.Quantity},
		{"pickup_window", patch.PickupWindow},
		{"restaurant.location", patch.Location},
		{"image", patch.Image},
	} {
		if err := apply(f.name, f.val); err != nil {
			return models.Donation{}, err
		}
	}
	if len(set) == 0 {
		return d, nil
	}

	if err := s.donations.UpdateFields(ctx, id, set); err != nil {
		return models.Donation{}, httperr.Internal("failed to update donation")
	}
	return s.load(ctx, id)
}

// SetApproval is the admin approval/featuring surface.
func (s *DonationService) SetApproval(ctx context.Context, id primitive.ObjectID, approved, featured bool) error {
	err := s.donations.UpdateFields(ctx, id, map[string]interface{}{
		"approved": approved,
		"featured": featured,
	})
	if errors.Is(err, ErrNotFound) {
		return httperr.NotFound("donation not found")
	}
	if err != nil {
		return httperr.Internal("failed to update approval")
	}
	return nil
}

// SetStatus moves the donation to an explicit state.
func (s *DonationService) SetStatus(ctx context.Context, id primitive.ObjectID, status, actorEmail, actorRole string) error {
	if !models.ValidDonationStatus(status) {
		return httperr.InvalidInput("unknown donation status: " + status)
	}
	d, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeOwner(d, actorEmail, actorRole); err != nil {
		return err
	}
	if err := s.donations.SetStatus(ctx, id, status); err != nil {
		return httperr.Internal("failed to update status")
	}
	return nil
}

// Delete removes the donation. Owner or admin only.
func (s *DonationService) Delete(ctx context.Context, id primitive.ObjectID, actorEmail, actorRole string) (models.Donation, error) {
	d, err := s.load(ctx, id)
	if err != nil {
		return models.Donation{}, err
	}
	if err := s.authorizeOwner(d, actorEmail, actorRole); err != nil {
		return models.Donation{}, err
	}
	if err := s.donations.Delete(ctx, id); err != nil {
		return models.Donation{}, httperr.Internal("failed to delete donation")
	}
	logger.Info().Str("donation", id.Hex()).Str("actor", actorEmail).Msg("donation deleted")
	return d, nil
}

func (s *DonationService) Get(ctx context.Context, id primitive.ObjectID) (models.Donation, error) {
	return s.load(ctx, id)
}

func (s *DonationService) List(ctx context.Context, approvedOnly bool) ([]models.Donation, error) {
	donations, err := s.donations.List(ctx, approvedOnly)
	if err != nil {
		return nil, httperr.Internal("failed to list donations")
	}
	return donations, nil
}

func (s *DonationService) Featured(ctx context.Context, limit int64) ([]models.Donation, error) {
	if limit <= 0 {
		limit = 8
	}
	donations, err := s.donations.Featured(ctx, limit)
	if err != nil {
		return nil, httperr.Internal("failed to list featured donations")
	}
	return donations, nil
}

func (s *DonationService) load(ctx context.Context, id primitive.ObjectID) (models.Donation, error) {
	d, err := s.donations.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return models.Donation{}, httperr.NotFound("donation not found")
	}
	if err != nil {
		return models.Donation{}, httperr.Internal("failed to load donation")
	}
	return d, nil
}

func (s *DonationService) authorizeOwner(d models.Donation, actorEmail, actorRole string) error {
	if actorRole == models.RoleAdmin {
		return nil
	}
	if d.Restaurant.Email != actorEmail {
		return httperr.Forbidden("not the owner of this donation")
	}
	return nil
}
