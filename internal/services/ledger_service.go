package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ismail-dev-code/meal-giver-server/internal/auth"
	"github.com/ismail-dev-code/meal-giver-server/internal/httperr"
	"github.com/ismail-dev-code/meal-giver-server/internal/models"
)

// ReviewInput is the add-review payload.
type ReviewInput struct {
	Comment string `json:"comment" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
}

// FavoriteView joins a favorite with its donation.
type FavoriteView struct {
	Favorite models.Favorite `json:"favorite"`
	Donation models.Donation `json:"donation"`
}

// LedgerService owns the favorites and reviews journals.
type LedgerService struct {
	favorites FavoriteStore
	reviews   ReviewStore
	donations DonationStore
}

func NewLedgerService(favorites FavoriteStore, reviews ReviewStore, donations DonationStore) *LedgerService {
	return &LedgerService{favorites: favorites, reviews: reviews, donations: donations}
}

// Favorite marks a donation. A second call for the same pair is a conflict,
// never a duplicate row.
func (s *LedgerService) Favorite(ctx context.Context, email string, donationID primitive.ObjectID) (models.Favorite, error) {
	if _, err := s.donations.FindByID(ctx, donationID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Favorite{}, httperr.NotFound("donation not found")
		}
		return models.Favorite{}, httperr.Internal("failed to load donation")
	}

	exists, err := s.favorites.Exists(ctx, email, donationID)
	if err != nil {
		return models.Favorite{}, httperr.Internal("failed to check favorites")
	}
	if exists {
		return models.Favorite{}, httperr.Conflict("donation already favorited")
	}

	f := models.Favorite{
		Email:       email,
		DonationID:  donationID,
		FavoritedAt: time.Now(),
	}
	if err := s.favorites.Insert(ctx, &f); err != nil {
		return models.Favorite{}, httperr.Internal("failed to save favorite")
	}
	return f, nil
}

// Unfavorite removes a favorite. Only its owner may remove it.
func (s *LedgerService) Unfavorite(ctx context.Context, id primitive.ObjectID, actorEmail string) error {
	f, err := s.favorites.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return httperr.NotFound("favorite not found")
	}
	if err != nil {
		return httperr.Internal("failed to load favorite")
	}
	if f.Email != actorEmail {
		return httperr.Forbidden("favorite belongs to another user")
	}
	if err := s.favorites.Delete(ctx, id); err != nil {
		return httperr.Internal("failed to delete favorite")
	}
	return nil
}

// ListFavorites returns the caller's favorites joined with their donations.
func (s *LedgerService) ListFavorites(ctx context.Context, email string) ([]FavoriteView, error) {
	favorites, err := s.favorites.ByEmail(ctx, email)
	if err != nil {
		return nil, httperr.Internal("failed to list favorites")
	}

	views := make([]FavoriteView, 0, len(favorites))
	for _, f := range favorites {
		d, err := s.donations.FindByID(ctx, f.DonationID)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, httperr.Internal("failed to load donation")
		}
		views = append(views, FavoriteView{Favorite: f, Donation: d})
	}
	return views, nil
}

// AddReview records a rating and comment against a donation.
func (s *LedgerService) AddReview(ctx context.Context, identity auth.Identity, donationID primitive.ObjectID, in ReviewInput) (models.Review, error) {
	if err := checkRequired(in); err != nil {
		return models.Review{}, err
	}
	if _, err := s.donations.FindByID(ctx, donationID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Review{}, httperr.NotFound("donation not found")
		}
		return models.Review{}, httperr.Internal("failed to load donation")
	}

	r := models.Review{
		DonationID: donationID,
		UserEmail:  identity.Email,
		UserName:   identity.Name,
		Comment:    in.Comment,
		Rating:     in.Rating,
		CreatedAt:  time.Now(),
	}
	if err := s.reviews.Insert(ctx, &r); err != nil {
		return models.Review{}, httperr.Internal("failed to save review")
	}
	return r, nil
}

// DeleteReview removes a review. Author-scoped.
func (s *LedgerService) DeleteReview(ctx context.Context, id primitive.ObjectID, actorEmail string) error {
	r, err := s.reviews.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return httperr.NotFound("review not found")
	}
	if err != nil {
		return httperr.Internal("failed to load review")
	}
	if r.UserEmail != actorEmail {
		return httperr.Forbidden("review belongs to another user")
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return httperr.Internal("failed to delete review")
	}
	return nil
}

// ListReviews returns reviews for a donation, newest first.
func (s *LedgerService) ListReviews(ctx context.Context, donationID primitive.ObjectID) ([]models.Review, error) {
	reviews, err := s.reviews.ByDonation(ctx, donationID)
	if err != nil {
		return nil, httperr.Internal("failed to list reviews")
	}
	return reviews, nil
}
