package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ismail-dev-code/meal-giver-server/internal/models"
)

// In-memory stores with the same conditional-update semantics as the Mongo
// implementations. All methods lock, so compare-and-set is atomic here too.

type fakeDonationStore struct {
	mu        sync.Mutex
	donations map[primitive.ObjectID]models.Donation
}

func newFakeDonationStore() *fakeDonationStore {
	return &fakeDonationStore{donations: make(map[primitive.ObjectID]models.Donation)}
}

func (s *fakeDonationStore) Insert(_ context.Context, d *models.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	s.donations[d.ID] = *d
	return nil
}

func (s *fakeDonationStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.donations[id]
	if !ok {
		return models.Donation{}, ErrNotFound
	}
	return d, nil
}

func (s *fakeDonationStore) UpdateFields(_ context.Context, id primitive.ObjectID, set map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.donations[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range set {
		switch k {
		case "title":
			d.Title = v.(string)
		case "type":
			d.Type = v.(string)
		case "quantity":
			d.Quantity = v.(string)
		case "pickup_window":
			d.PickupWindow = v.(string)
		case "restaurant.location":
			d.Restaurant.Location = v.(string)
		case "image":
			d.Image = v.(string)
		case "status":
			d.Status = v.(string)
		case "approved":
			d.Approved = v.(bool)
		case "featured":
			d.Featured = v.(bool)
		}
	}
	d.UpdatedAt = time.Now()
	s.donations[id] = d
	return nil
}

func (s *fakeDonationStore) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	return s.UpdateFields(ctx, id, map[string]interface{}{"status": status})
}

func (s *fakeDonationStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.donations[id]; !ok {
		return ErrNotFound
	}
	delete(s.donations, id)
	return nil
}

func (s *fakeDonationStore) List(_ context.Context, approvedOnly bool) ([]models.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Donation
	for _, d := range s.donations {
		if approvedOnly && !d.Approved {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *fakeDonationStore) Featured(_ context.Context, limit int64) ([]models.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Donation
	for _, d := range s.donations {
		if d.Featured && d.Approved && int64(len(out)) < limit {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeRequestStore struct {
	mu       sync.Mutex
	requests map[primitive.ObjectID]models.Request
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{requests: make(map[primitive.ObjectID]models.Request)}
}

func (s *fakeRequestStore) Insert(_ context.Context, r *models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	s.requests[r.ID] = *r
	return nil
}

func (s *fakeRequestStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return models.Request{}, ErrNotFound
	}
	return r, nil
}

func (s *fakeRequestStore) HasActive(_ context.Context, donationID primitive.ObjectID, charityEmail string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.requests {
		if r.DonationID == donationID && r.CharityEmail == charityEmail && r.Status != models.RequestRejected {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeRequestStore) CompareAndSetStatus(_ context.Context, id primitive.ObjectID, from, to string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok || r.Status != from {
		return false, nil
	}
	r.Status = to
	s.requests[id] = r
	return true, nil
}

func (s *fakeRequestStore) RejectSiblings(_ context.Context, donationID, exceptID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, r := range s.requests {
		if r.DonationID == donationID && id != exceptID {
			r.Status = models.RequestRejected
			s.requests[id] = r
		}
	}
	return nil
}

func (s *fakeRequestStore) ConfirmPickup(_ context.Context, id primitive.ObjectID, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok || r.Status != models.RequestAccepted {
		return false, nil
	}
	r.Status = models.RequestPickedUp
	r.PickupDate = at
	s.requests[id] = r
	return true, nil
}

func (s *fakeRequestStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[id]; !ok {
		return ErrNotFound
	}
	delete(s.requests, id)
	return nil
}

func (s *fakeRequestStore) ByRestaurant(_ context.Context, restaurantEmail string) ([]models.Request, error) {
	return s.filter(func(r models.Request) bool { return r.RestaurantEmail == restaurantEmail })
}

func (s *fakeRequestStore) ByCharity(_ context.Context, charityEmail string) ([]models.Request, error) {
	return s.filter(func(r models.Request) bool { return r.CharityEmail == charityEmail })
}

func (s *fakeRequestStore) ByCharityAndStatus(_ context.Context, charityEmail string, statuses []string) ([]models.Request, error) {
	return s.filter(func(r models.Request) bool {
		if r.CharityEmail != charityEmail {
			return false
		}
		for _, st := range statuses {
			if r.Status == st {
				return true
			}
		}
		return false
	})
}

func (s *fakeRequestStore) filter(keep func(models.Request) bool) ([]models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Request
	for _, r := range s.requests {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// acceptedCount reports how many requests for donationID are accepted.
func (s *fakeRequestStore) acceptedCount(donationID primitive.ObjectID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if r.DonationID == donationID && r.Status == models.RequestAccepted {
			n++
		}
	}
	return n
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (s *fakeUserStore) Upsert(_ context.Context, user models.User) (models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if existing, ok := s.users[user.Email]; ok {
		existing.LastLogIn = now
		s.users[user.Email] = existing
		return existing, false, nil
	}
	user.ID = primitive.NewObjectID()
	user.Role = models.RoleUser
	user.CreatedAt = now
	user.LastLogIn = now
	s.users[user.Email] = user
	return user, true, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (s *fakeUserStore) SetRole(_ context.Context, email, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return ErrNotFound
	}
	u.Role = role
	s.users[email] = u
	return nil
}

func (s *fakeUserStore) List(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeUserStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; !ok {
		return ErrNotFound
	}
	delete(s.users, email)
	return nil
}

type fakeRoleRequestStore struct {
	mu           sync.Mutex
	roleRequests map[primitive.ObjectID]models.RoleRequest
}

func newFakeRoleRequestStore() *fakeRoleRequestStore {
	return &fakeRoleRequestStore{roleRequests: make(map[primitive.ObjectID]models.RoleRequest)}
}

func (s *fakeRoleRequestStore) Insert(_ context.Context, rr *models.RoleRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rr.ID.IsZero() {
		rr.ID = primitive.NewObjectID()
	}
	s.roleRequests[rr.ID] = *rr
	return nil
}

func (s *fakeRoleRequestStore) FindByID(_ context.Context, id primitive.ObjectID) (models.RoleRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rr, ok := s.roleRequests[id]
	if !ok {
		return models.RoleRequest{}, ErrNotFound
	}
	return rr, nil
}

func (s *fakeRoleRequestStore) HasActive(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rr := range s.roleRequests {
		if rr.Email == email && rr.Status != models.RoleRequestRejected {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeRoleRequestStore) CompareAndSetStatus(_ context.Context, id primitive.ObjectID, from, to string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rr, ok := s.roleRequests[id]
	if !ok || rr.Status != from {
		return false, nil
	}
	rr.Status = to
	s.roleRequests[id] = rr
	return true, nil
}

func (s *fakeRoleRequestStore) List(_ context.Context, statusFilter string) ([]models.RoleRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.RoleRequest
	for _, rr := range s.roleRequests {
		if statusFilter == "" || rr.Status == statusFilter {
			out = append(out, rr)
		}
	}
	return out, nil
}

func (s *fakeRoleRequestStore) ByEmail(_ context.Context, email string) ([]models.RoleRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.RoleRequest
	for _, rr := range s.roleRequests {
		if rr.Email == email {
			out = append(out, rr)
		}
	}
	return out, nil
}

type fakeFavoriteStore struct {
	mu        sync.Mutex
	favorites map[primitive.ObjectID]models.Favorite
}

func newFakeFavoriteStore() *fakeFavoriteStore {
	return &fakeFavoriteStore{favorites: make(map[primitive.ObjectID]models.Favorite)}
}

func (s *fakeFavoriteStore) Insert(_ context.Context, f *models.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	s.favorites[f.ID] = *f
	return nil
}

func (s *fakeFavoriteStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.favorites[id]
	if !ok {
		return models.Favorite{}, ErrNotFound
	}
	return f, nil
}

func (s *fakeFavoriteStore) Exists(_ context.Context, email string, donationID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.favorites {
		if f.Email == email && f.DonationID == donationID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeFavoriteStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.favorites[id]; !ok {
		return ErrNotFound
	}
	delete(s.favorites, id)
	return nil
}

func (s *fakeFavoriteStore) ByEmail(_ context.Context, email string) ([]models.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Favorite
	for _, f := range s.favorites {
		if f.Email == email {
			out = append(out, f)
		}
	}
	return out, nil
}

type fakeReviewStore struct {
	mu      sync.Mutex
	reviews map[primitive.ObjectID]models.Review
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: make(map[primitive.ObjectID]models.Review)}
}

func (s *fakeReviewStore) Insert(_ context.Context, r *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	s.reviews[r.ID] = *r
	return nil
}

func (s *fakeReviewStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[id]
	if !ok {
		return models.Review{}, ErrNotFound
	}
	return r, nil
}

func (s *fakeReviewStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(s.reviews, id)
	return nil
}

func (s *fakeReviewStore) ByDonation(_ context.Context, donationID primitive.ObjectID) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Review
	for _, r := range s.reviews {
		if r.DonationID == donationID {
			out = append(out, r)
		}
	}
	return out, nil
}
