package services

import (
	"context"
	"errors"

	"github.com/ismail-dev-code/meal-giver-server/internal/auth"
	"github.com/ismail-dev-code/meal-giver-server/internal/httperr"
	"github.com/ismail-dev-code/meal-giver-server/internal/logger"
	"github.com/ismail-dev-code/meal-giver-server/internal/models"
)

// UserService owns the user directory.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Upsert records a sign-in. A new email gets a fresh record with role=user;
// an existing one only has its last_log_in refreshed.
func (s *UserService) Upsert(ctx context.Context, identity auth.Identity, name, photo string) (models.User, bool, error) {
	if name == "" {
		name = identity.Name
	}
	user, inserted, err := s.users.Upsert(ctx, models.User{
		Email: identity.Email,
		Name:  name,
		Photo: photo,
	})
	if err != nil {
		return models.User{}, false, httperr.Internal("failed to save user")
	}
	if inserted {
		logger.Info().Str("email", user.Email).Msg("new user registered")
	}
	return user, inserted, nil
}

// Role looks up the role for an email.
func (s *UserService) Role(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return "", httperr.NotFound("user not found")
	}
	if err != nil {
		return "", httperr.Internal("failed to load user")
	}
	return user.Role, nil
}

// SetRole changes a user's role. Admin gate is enforced by the route.
func (s *UserService) SetRole(ctx context.Context, email, role string) error {
	if !models.ValidRole(role) {
		return httperr.InvalidInput("unknown role: " + role)
	}
	err := s.users.SetRole(ctx, email, role)
	if errors.Is(err, ErrNotFound) {
		return httperr.NotFound("user not found")
	}
	if err != nil {
		return httperr.Internal("failed to update role")
	}
	return nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, httperr.Internal("failed to list users")
	}
	return users, nil
}

func (s *UserService) Delete(ctx context.Context, email string) error {
	err := s.users.Delete(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return httperr.NotFound("user not found")
	}
	if err != nil {
		return httperr.Internal("failed to delete user")
	}
	return nil
}
