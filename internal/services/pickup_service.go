package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/ismail-dev-code/meal-giver-server/internal/httperr"
	"github.com/ismail-dev-code/meal-giver-server/internal/models"
)

// PickupView joins a request with its donation for the charity-facing
// received feed.
type PickupView struct {
	Request  models.Request  `json:"request"`
	Donation models.Donation `json:"donation"`
}

// PickupService derives the restaurant and charity facing views of the
// request flow. Read-only; all mutation lives in RequestService.
type PickupService struct {
	requests  RequestStore
	donations DonationStore
}

func NewPickupService(requests RequestStore, donations DonationStore) *PickupService {
	return &PickupService{requests: requests, donations: donations}
}

// RestaurantInbox lists requests filed against the restaurant's donations.
func (s *PickupService) RestaurantInbox(ctx context.Context, restaurantEmail string) ([]models.Request, error) {
	requests, err := s.requests.ByRestaurant(ctx, restaurantEmail)
	if err != nil {
		return nil, httperr.Internal("failed to load requests")
	}
	sortNewestFirst(requests, func(r models.Request) time.Time { return r.CreatedAt })
	return requests, nil
}

// CharityRequests lists every request the charity has filed.
func (s *PickupService) CharityRequests(ctx context.Context, charityEmail string) ([]models.Request, error) {
	requests, err := s.requests.ByCharity(ctx, charityEmail)
	if err != nil {
		return nil, httperr.Internal("failed to load requests")
	}
	sortNewestFirst(requests, func(r models.Request) time.Time { return r.CreatedAt })
	return requests, nil
}

// CharityPickups lists the charity's accepted and completed pickups.
func (s *PickupService) CharityPickups(ctx context.Context, charityEmail string) ([]models.Request, error) {
	requests, err := s.requests.ByCharityAndStatus(ctx, charityEmail,
		[]string{models.RequestAccepted, models.RequestPickedUp})
	if err != nil {
		return nil, httperr.Internal("failed to load pickups")
	}
	sortNewestFirst(requests, func(r models.Request) time.Time { return r.CreatedAt })
	return requests, nil
}

// CharityReceived lists completed pickups joined with their donations,
// newest pickup first.
func (s *PickupService) CharityReceived(ctx context.Context, charityEmail string) ([]PickupView, error) {
	requests, err := s.requests.ByCharityAndStatus(ctx, charityEmail, []string{models.RequestPickedUp})
	if err != nil {
		return nil, httperr.Internal("failed to load received donations")
	}
	sortNewestFirst(requests, func(r models.Request) time.Time { return r.PickupDate })

	views := make([]PickupView, 0, len(requests))
	for _, r := range requests {
		d, err := s.donations.FindByID(ctx, r.DonationID)
		if errors.Is(err, ErrNotFound) {
			// Donation deleted after pickup; the request still tells the story.
			views = append(views, PickupView{Request: r})
			continue
		}
		if err != nil {
			return nil, httperr.Internal("failed to load donation")
		}
		views = append(views, PickupView{Request: r, Donation: d})
	}
	return views, nil
}

// sortNewestFirst orders by the given timestamp descending, tie-broken by id
// descending so the order is total and pagination stays deterministic.
func sortNewestFirst(requests []models.Request, ts func(models.Request) time.Time) {
	sort.SliceStable(requests, func(i, j int) bool {
		ti, tj := ts(requests[i]), ts(requests[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return requests[i].ID.Hex() > requests[j].ID.Hex()
	})
}
