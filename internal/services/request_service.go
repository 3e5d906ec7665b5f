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
	"github.com/ismail-dev-code/meal-giver-server/internal/utils"
)

// Actions on a request.
const (
	ActionAccept = "accept"
	ActionReject = "reject"
	ActionCancel = "cancel"
	ActionPickup = "pickup"
)

// transition is one allowed (state, action, role) triple. The request is a
// split-ownership entity: which actor may move it depends on where it is.
type transition struct {
	state  string
	action string
	role   string
}

var allowedTransitions = map[transition]bool{
	{models.RequestPending, ActionAccept, models.RoleRestaurant}: true,
	{models.RequestPending, ActionReject, models.RoleRestaurant}: true,
	{models.RequestPending, ActionCancel, models.RoleCharity}:    true,
	{models.RequestAccepted, ActionPickup, models.RoleCharity}:   true,
}

func transitionAllowed(state, action, role string) bool {
	return allowedTransitions[transition{state, action, role}]
}

// RequestInput is the submit payload.
type RequestInput struct {
	Description string `json:"requestDescription" validate:"required"`
	PickupTime  string `json:"pickupTime" validate:"required"`
	CharityName string `json:"charityName"`
}

// RequestService is the matcher: one donation, at most one accepted request.
// All resolutions for a donation run under that donation's mutex, and every
// status move is a compare-and-set, so two concurrent accepts cannot both
// succeed.
type RequestService struct {
	requests  RequestStore
	donations DonationStore
	locks     *utils.KeyedMutex
}

func NewRequestService(requests RequestStore, donations DonationStore) *RequestService {
	return &RequestService{
		requests:  requests,
		donations: donations,
		locks:     utils.NewKeyedMutex(),
	}
}

// Submit files a charity's claim against a donation. A second claim by the
// same charity is rejected while an earlier one is still pending or accepted.
func (s *RequestService) Submit(ctx context.Context, donationID primitive.ObjectID, identity auth.Identity, in RequestInput) (models.Request, error) {
	if err := checkRequired(in); err != nil {
		return models.Request{}, err
	}

	d, err := s.donations.FindByID(ctx, donationID)
	if errors.Is(err, ErrNotFound) {
		return models.Request{}, httperr.NotFound("donation not found")
	}
	if err != nil {
		return models.Request{}, httperr.Internal("failed to load donation")
	}

	active, err := s.requests.HasActive(ctx, donationID, identity.Email)
	if err != nil {
		return models.Request{}, httperr.Internal("failed to check existing requests")
	}
	if active {
		return models.Request{}, httperr.Conflict("you already have an active request for this donation")
	}

	charityName := in.CharityName
	if charityName == "" {
		charityName = identity.Name
	}
	r := models.Request{
		DonationID:      donationID,
		RestaurantName:  d.Restaurant.Name,
		RestaurantEmail: d.Restaurant.Email,
		CharityEmail:    identity.Email,
		CharityName:     charityName,
		DonationTitle:   d.Title,
		Description:     in.Description,
		PickupTime:      in.PickupTime,
		Status:          models.RequestPending,
		CreatedAt:       time.Now(),
	}
	if err := s.requests.Insert(ctx, &r); err != nil {
		return models.Request{}, httperr.Internal("failed to create request")
	}

	if d.Status == models.DonationAvailable {
		if err := s.donations.SetStatus(ctx, donationID, models.DonationRequested); err != nil {
			logger.Warn().Err(err).Str("donation", donationID.Hex()).Msg("failed to mark donation requested")
		}
	}

	logger.Info().Str("request", r.ID.Hex()).Str("donation", donationID.Hex()).
		Str("charity", identity.Email).Msg("request submitted")
	return r, nil
}

// Resolve is the restaurant's accept/reject decision. Accepting one request
// forces every sibling for the same donation to rejected in the same
// serialized scope.
func (s *RequestService) Resolve(ctx context.Context, requestID primitive.ObjectID, action, actorEmail string) (models.Request, error) {
	if action != ActionAccept && action != ActionReject {
		return models.Request{}, httperr.InvalidInput("action must be accept or reject")
	}

	r, err := s.load(ctx, requestID)
	if err != nil {
		return models.Request{}, err
	}
	if r.RestaurantEmail != actorEmail {
		return models.Request{}, httperr.Forbidden("request belongs to another restaurant")
	}
	if !transitionAllowed(r.Status, action, models.RoleRestaurant) {
		return models.Request{}, httperr.Conflict("request is no longer pending")
	}

	key := r.DonationID.Hex()
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	if action == ActionReject {
		ok, err := s.requests.CompareAndSetStatus(ctx, requestID, models.RequestPending, models.RequestRejected)
		if err != nil {
			return models.Request{}, httperr.Internal("failed to reject request")
		}
		if !ok {
			return models.Request{}, httperr.Conflict("request is no longer pending")
		}
		r.Status = models.RequestRejected
		return r, nil
	}

	ok, err := s.requests.CompareAndSetStatus(ctx, requestID, models.RequestPending, models.RequestAccepted)
	if err != nil {
		return models.Request{}, httperr.Internal("failed to accept request")
	}
	if !ok {
		// Lost the race or already resolved. The invariant holds either way.
		return models.Request{}, httperr.Conflict("request is no longer pending")
	}

	if err := s.requests.RejectSiblings(ctx, r.DonationID, requestID); err != nil {
		// Roll the accept back rather than persist a half-applied match.
		if _, revertErr := s.requests.CompareAndSetStatus(ctx, requestID, models.RequestAccepted, models.RequestPending); revertErr != nil {
			logger.Error().Err(revertErr).Str("request", requestID.Hex()).Msg("failed to revert accept")
		}
		return models.Request{}, httperr.Internal("failed to resolve sibling requests")
	}

	if err := s.donations.SetStatus(ctx, r.DonationID, models.DonationAccepted); err != nil {
		logger.Warn().Err(err).Str("donation", key).Msg("failed to mark donation accepted")
	}

	r.Status = models.RequestAccepted
	logger.Info().Str("request", requestID.Hex()).Str("donation", key).Msg("request accepted")
	return r, nil
}

// Cancel withdraws a pending request. Only its charity, only while pending.
func (s *RequestService) Cancel(ctx context.Context, requestID primitive.ObjectID, actorEmail string) error {
	r, err := s.load(ctx, requestID)
	if err != nil {
		return err
	}
	if r.CharityEmail != actorEmail {
		return httperr.Forbidden("request belongs to another charity")
	}
	if !transitionAllowed(r.Status, ActionCancel, models.RoleCharity) {
		return httperr.Forbidden("only pending requests can be cancelled")
	}
	if err := s.requests.Delete(ctx, requestID); err != nil {
		return httperr.Internal("failed to cancel request")
	}
	return nil
}

// ConfirmPickup is the charity's final transition, accepted -> picked_up.
func (s *RequestService) ConfirmPickup(ctx context.Context, requestID primitive.ObjectID, actorEmail string) (models.Request, error) {
	r, err := s.load(ctx, requestID)
	if err != nil {
		return models.Request{}, err
	}
	if r.CharityEmail != actorEmail {
		return models.Request{}, httperr.Forbidden("request belongs to another charity")
	}
	if !transitionAllowed(r.Status, ActionPickup, models.RoleCharity) {
		return models.Request{}, httperr.Forbidden("only accepted requests can be picked up")
	}

	now := time.Now()
	ok, err := s.requests.ConfirmPickup(ctx, requestID, now)
	if err != nil {
		return models.Request{}, httperr.Internal("failed to confirm pickup")
	}
	if !ok {
		return models.Request{}, httperr.Conflict("request is no longer accepted")
	}

	if err := s.donations.SetStatus(ctx, r.DonationID, models.DonationPickedUp); err != nil {
		logger.Warn().Err(err).Str("donation", r.DonationID.Hex()).Msg("failed to mark donation picked up")
	}

	r.Status = models.RequestPickedUp
	r.PickupDate = now
	return r, nil
}

func (s *RequestService) load(ctx context.Context, id primitive.ObjectID) (models.Request, error) {
	r, err := s.requests.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return models.Request{}, httperr.NotFound("request not found")
	}
	if err != nil {
		return models.Request{}, httperr.Internal("failed to load request")
	}
	return r, nil
}
