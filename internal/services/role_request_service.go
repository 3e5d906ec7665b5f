package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ismail-dev-code/meal-giver-server/internal/httperr"
	"github.com/ismail-dev-code/meal-giver-server/internal/logger"
	"github.com/ismail-dev-code/meal-giver-server/internal/models"
	"github.com/ismail-dev-code/meal-giver-server/internal/payment"
)

// charityFeeCents is the application fee for charity elevation.
const charityFeeCents = 2500

// RoleRequestInput is the elevation application payload.
type RoleRequestInput struct {
	Organization string `json:"organization" validate:"required"`
	Mission      string `json:"mission" validate:"required"`
}

// RoleRequestResult carries the stored application plus the payment secret
// the client completes the charge with.
type RoleRequestResult struct {
	RoleRequest  models.RoleRequest `json:"roleRequest"`
	ClientSecret string             `json:"clientSecret"`
}

// RoleRequestService owns paid role elevation applications.
type RoleRequestService struct {
	roleRequests RoleRequestStore
	users        UserStore
	gateway      payment.Gateway
}

func NewRoleRequestService(roleRequests RoleRequestStore, users UserStore, gateway payment.Gateway) *RoleRequestService {
	return &RoleRequestService{roleRequests: roleRequests, users: users, gateway: gateway}
}

// Submit files an application for charity elevation, creating the payment
// intent with the external processor. A user may not hold two simultaneously
// pending-or-approved applications.
func (s *RoleRequestService) Submit(ctx context.Context, email string, in RoleRequestInput) (RoleRequestResult, error) {
	if err := checkRequired(in); err != nil {
		return RoleRequestResult{}, err
	}

	active, err := s.roleRequests.HasActive(ctx, email)
	if err != nil {
		return RoleRequestResult{}, httperr.Internal("failed to check existing applications")
	}
	if active {
		return RoleRequestResult{}, httperr.Conflict("an application is already pending or approved")
	}

	intent, err := s.gateway.CreateIntent(ctx, charityFeeCents, "usd")
	if err != nil {
		logger.Error().Err(err).Str("email", email).Msg("payment intent creation failed")
		return RoleRequestResult{}, httperr.Internal("payment processor unavailable")
	}

	rr := models.RoleRequest{
		Email:         email,
		Role:          models.RoleCharity,
		Organization:  in.Organization,
		Mission:       in.Mission,
		Status:        models.RoleRequestPending,
		TransactionID: intent.ID,
		AmountCents:   charityFeeCents,
		Date:          time.Now(),
	}
	if err := s.roleRequests.Insert(ctx, &rr); err != nil {
		return RoleRequestResult{}, httperr.Internal("failed to save application")
	}

	logger.Info().Str("email", email).Str("transaction", intent.ID).Msg("role request submitted")
	return RoleRequestResult{RoleRequest: rr, ClientSecret: intent.ClientSecret}, nil
}

// Resolve is the admin decision. Approval elevates the user's role in the
// same operation.
func (s *RoleRequestService) Resolve(ctx context.Context, id primitive.ObjectID, approve bool) (models.RoleRequest, error) {
	rr, err := s.roleRequests.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return models.RoleRequest{}, httperr.NotFound("role request not found")
	}
	if err != nil {
		return models.RoleRequest{}, httperr.Internal("failed to load role request")
	}

	target := models.RoleRequestRejected
	if approve {
		target = models.RoleRequestApproved
	}
	ok, err := s.roleRequests.CompareAndSetStatus(ctx, id, models.RoleRequestPending, target)
	if err != nil {
		return models.RoleRequest{}, httperr.Internal("failed to update role request")
	}
	if !ok {
		return models.RoleRequest{}, httperr.Conflict("role request already resolved")
	}

	if approve {
		if err := s.users.SetRole(ctx, rr.Email, rr.Role); err != nil {
			// Undo the approval so the invariant "approved implies role granted"
			// is not silently broken.
			if _, revertErr := s.roleRequests.CompareAndSetStatus(ctx, id, target, models.RoleRequestPending); revertErr != nil {
				logger.Error().Err(revertErr).Str("role_request", id.Hex()).Msg("failed to revert approval")
			}
			return models.RoleRequest{}, httperr.Internal("failed to grant role")
		}
		logger.Info().Str("email", rr.Email).Str("role", rr.Role).Msg("role granted")
	}

	rr.Status = target
	return rr, nil
}

// List returns applications, optionally filtered by status. Admin surface.
func (s *RoleRequestService) List(ctx context.Context, statusFilter string) ([]models.RoleRequest, error) {
	out, err := s.roleRequests.List(ctx, statusFilter)
	if err != nil {
		return nil, httperr.Internal("failed to list role requests")
	}
	return out, nil
}

// Mine returns the caller's own applications.
func (s *RoleRequestService) Mine(ctx context.Context, email string) ([]models.RoleRequest, error) {
	out, err := s.roleRequests.ByEmail(ctx, email)
	if err != nil {
		return nil, httperr.Internal("failed to list role requests")
	}
	return out, nil
}
