package services

import (
	"context"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ismail-dev-code/meal-giver-server/internal/auth"
	"github.com/ismail-dev-code/meal-giver-server/internal/httperr"
	"github.com/ismail-dev-code/meal-giver-server/internal/models"
)

const (
	testRestaurant = "resto@example.com"
	testCharityA   = "charity-a@example.com"
	testCharityB   = "charity-b@example.com"
)

func newMatcher(t *testing.T) (*RequestService, *fakeRequestStore, *fakeDonationStore, primitive.ObjectID) {
	t.Helper()
	donations := newFakeDonationStore()
	requests := newFakeRequestStore()

	d := models.Donation{
		Title:    "Surplus bread",
		Type:     "bakery",
		Quantity: "20 loaves",
		Restaurant: models.Restaurant{
			Name:  "Test Resto",
			Email: testRestaurant,
		},
		Status: models.DonationAvailable,
	}
	if err := donations.Insert(context.Background(), &d); err != nil {
		t.Fatalf("insert donation: %v", err)
	}
	return NewRequestService(requests, donations), requests, donations, d.ID
}

func submit(t *testing.T, svc *RequestService, donationID primitive.ObjectID, charity string) models.Request {
	t.Helper()
	r, err := svc.Submit(context.Background(), donationID, auth.Identity{Email: charity, Name: charity},
		RequestInput{Description: "we can pick up tonight", PickupTime: "18:00"})
	if err != nil {
		t.Fatalf("submit for %s: %v", charity, err)
	}
	return r
}

func TestSubmitMissingFields(t *testing.T) {
	svc, _, _, donationID := newMatcher(t)

	_, err := svc.Submit(context.Background(), donationID, auth.Identity{Email: testCharityA}, RequestInput{})
	if !httperr.IsKind(err, httperr.KindInvalidInput) {
		t.Fatalf("expected invalid_input, got %v", err)
	}
}

func TestSubmitUnknownDonation(t *testing.T) {
	svc, _, _, _ := newMatcher(t)

	_, err := svc.Submit(context.Background(), primitive.NewObjectID(), auth.Identity{Email: testCharityA},
		RequestInput{Description: "d", PickupTime: "18:00"})
	if !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestSubmitDuplicateConflicts(t *testing.T) {
	svc, _, _, donationID := newMatcher(t)

	submit(t, svc, donationID, testCharityA)

	_, err := svc.Submit(context.Background(), donationID, auth.Identity{Email: testCharityA},
		RequestInput{Description: "second try", PickupTime: "19:00"})
	if !httperr.IsKind(err, httperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSubmitAfterRejectionSucceeds(t *testing.T) {
	svc, _, _, donationID := newMatcher(t)

	first := submit(t, svc, donationID, testCharityA)
	if _, err := svc.Resolve(context.Background(), first.ID, ActionReject, testRestaurant); err != nil {
		t.Fatalf("reject: %v", err)
	}

	if _, err := svc.Submit(context.Background(), donationID, auth.Identity{Email: testCharityA},
		RequestInput{Description: "trying again", PickupTime: "20:00"}); err != nil {
		t.Fatalf("resubmit after rejection: %v", err)
	}
}

func TestSubmitMarksDonationRequested(t *testing.T) {
	svc, _, donations, donationID := newMatcher(t)

	submit(t, svc, donationID, testCharityA)

	d, err := donations.FindByID(context.Background(), donationID)
	if err != nil {
		t.Fatalf("find donation: %v", err)
	}
	if d.Status != models.DonationRequested {
		t.Fatalf("donation status = %q, want %q", d.Status, models.DonationRequested)
	}
}

func TestResolveInvalidAction(t *testing.T) {
	svc, _, _, donationID := newMatcher(t)
	r := submit(t, svc, donationID, testCharityA)

	_, err := svc.Resolve(context.Background(), r.ID, "approve", testRestaurant)
	if !httperr.IsKind(err, httperr.KindInvalidInput) {
		t.Fatalf("expected invalid_input, got %v", err)
	}
}

func TestResolveWrongRestaurant(t *testing.T) {
	svc, _, _, donationID := newMatcher(t)
	r := submit(t, svc, donationID, testCharityA)

	_, err := svc.Resolve(context.Background(), r.ID, ActionAccept, "other-resto@example.com")
	if !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestAcceptRejectsSiblings(t *testing.T) {
	svc, requests, donations, donationID := newMatcher(t)
	ra := submit(t, svc, donationID, testCharityA)
	rb := submit(t, svc, donationID, testCharityB)

	resolved, err := svc.Resolve(context.Background(), ra.ID, ActionAccept, testRestaurant)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if resolved.Status != models.RequestAccepted {
		t.Fatalf("accepted request status = %q", resolved.Status)
	}

	sibling, err := requests.FindByID(context.Background(), rb.ID)
	if err != nil {
		t.Fatalf("find sibling: %v", err)
	}
	if sibling.Status != models.RequestRejected {
		t.Fatalf("sibling status = %q, want rejected", sibling.Status)
	}

	d, err := donations.FindByID(context.Background(), donationID)
	if err != nil {
		t.Fatalf("find donation: %v", err)
	}
	if d.Status != models.DonationAccepted {
		t.Fatalf("donation status = %q, want accepted", d.Status)
	}

	// Accepting the already-rejected sibling must fail, not create a second
	// accepted request.
	if _, err := svc.Resolve(context.Background(), rb.ID, ActionAccept, testRestaurant); !httperr.IsKind(err, httperr.KindConflict) {
		t.Fatalf("expected conflict on stale accept, got %v", err)
	}
	if n := requests.acceptedCount(donationID); n != 1 {
		t.Fatalf("accepted count = %d, want 1", n)
	}
}

func TestConcurrentAcceptsOneWinner(t *testing.T) {
	svc, requests, _, donationID := newMatcher(t)

	ids := make([]primitive.ObjectID, 0, 8)
	charities := []string{
		testCharityA, testCharityB,
		"c3@example.com", "c4@example.com",
		"c5@example.com", "c6@example.com",
		"c7@example.com", "c8@example.com",
	}
	for _, charity := range charities {
		ids = append(ids, submit(t, svc, donationID, charity).ID)
	}

	var wg sync.WaitGroup
	accepted := make(chan primitive.ObjectID, len(ids))
	for _, id := range ids {
		wg.Add(1)
		go func(id primitive.ObjectID) {
			defer wg.Done()
			if _, err := svc.Resolve(context.Background(), id, ActionAccept, testRestaurant); err == nil {
				accepted <- id
			} else if !httperr.IsKind(err, httperr.KindConflict) {
				t.Errorf("unexpected error for %s: %v", id.Hex(), err)
			}
		}(id)
	}
	wg.Wait()
	close(accepted)

	winners := 0
	for range accepted {
		winners++
	}
	if winners != 1 {
		t.Fatalf("winners = %d, want exactly 1", winners)
	}
	if n := requests.acceptedCount(donationID); n != 1 {
		t.Fatalf("accepted count = %d, want 1", n)
	}
	for _, id := range ids {
		r, err := requests.FindByID(context.Background(), id)
		if err != nil {
			t.Fatalf("find %s: %v", id.Hex(), err)
		}
		if r.Status != models.RequestAccepted && r.Status != models.RequestRejected {
			t.Fatalf("request %s ended in %q", id.Hex(), r.Status)
		}
	}
}

func TestCancel(t *testing.T) {
	svc, requests, _, donationID := newMatcher(t)
	r := submit(t, svc, donationID, testCharityA)

	if err := svc.Cancel(context.Background(), r.ID, testCharityB); !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}

	if err := svc.Cancel(context.Background(), r.ID, testCharityA); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := requests.FindByID(context.Background(), r.ID); err != ErrNotFound {
		t.Fatalf("cancelled request still present: %v", err)
	}
}

func TestCancelNonPending(t *testing.T) {
	svc, _, _, donationID := newMatcher(t)
	r := submit(t, svc, donationID, testCharityA)

	if _, err := svc.Resolve(context.Background(), r.ID, ActionAccept, testRestaurant); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := svc.Cancel(context.Background(), r.ID, testCharityA); !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("expected forbidden for accepted request, got %v", err)
	}
}

func TestConfirmPickup(t *testing.T) {
	svc, _, donations, donationID := newMatcher(t)
	r := submit(t, svc, donationID, testCharityA)

	// Not yet accepted.
	if _, err := svc.ConfirmPickup(context.Background(), r.ID, testCharityA); !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("expected forbidden before acceptance, got %v", err)
	}

	if _, err := svc.Resolve(context.Background(), r.ID, ActionAccept, testRestaurant); err != nil {
		t.Fatalf("accept: %v", err)
	}

	// Wrong charity.
	if _, err := svc.ConfirmPickup(context.Background(), r.ID, testCharityB); !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}

	confirmed, err := svc.ConfirmPickup(context.Background(), r.ID, testCharityA)
	if err != nil {
		t.Fatalf("confirm pickup: %v", err)
	}
	if confirmed.Status != models.RequestPickedUp {
		t.Fatalf("status = %q, want picked_up", confirmed.Status)
	}
	if confirmed.PickupDate.IsZero() {
		t.Fatal("pickup date not stamped")
	}

	d, err := donations.FindByID(context.Background(), donationID)
	if err != nil {
		t.Fatalf("find donation: %v", err)
	}
	if d.Status != models.DonationPickedUp {
		t.Fatalf("donation status = %q, want picked_up", d.Status)
	}
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		state, action, role string
		want                bool
	}{
		{models.RequestPending, ActionAccept, models.RoleRestaurant, true},
		{models.RequestPending, ActionReject, models.RoleRestaurant, true},
		{models.RequestPending, ActionCancel, models.RoleCharity, true},
		{models.RequestAccepted, ActionPickup, models.RoleCharity, true},
		{models.RequestPending, ActionAccept, models.RoleCharity, false},
		{models.RequestPending, ActionPickup, models.RoleCharity, false},
		{models.RequestAccepted, ActionAccept, models.RoleRestaurant, false},
		{models.RequestAccepted, ActionCancel, models.RoleCharity, false},
		{models.RequestRejected, ActionPickup, models.RoleCharity, false},
		{models.RequestPickedUp, ActionPickup, models.RoleCharity, false},
		{models.RequestPending, ActionCancel, models.RoleAdmin, false},
	}
	for _, tc := range cases {
		if got := transitionAllowed(tc.state, tc.action, tc.role); got != tc.want {
			t.Errorf("transitionAllowed(%s, %s, %s) = %v, want %v", tc.state, tc.action, tc.role, got, tc.want)
		}
	}
}
