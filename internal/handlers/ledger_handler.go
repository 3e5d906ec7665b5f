package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ismail-dev-code/meal-giver-server/internal/httperr"
	"github.com/ismail-dev-code/meal-giver-server/internal/middleware"
	"github.com/ismail-dev-code/meal-giver-server/internal/services"
)

// LedgerHandler serves the favorites and reviews endpoints.
type LedgerHandler struct {
	ledger *services.LedgerService
}

func NewLedgerHandler(ledger *services.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// Favorite handles POST /favorites with body {donationId}.
func (h *LedgerHandler) Favorite(c *fiber.Ctx) error {
	var body struct {
		DonationID string `json:"donationId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return httperr.InvalidInput("invalid request body")
	}
	donationID, err := primitive.ObjectIDFromHex(body.DonationID)
	if err != nil {
		return httperr.InvalidInput("invalid donationId")
	}

	f, err := h.ledger.Favorite(c.Context(), middleware.Identity(c).Email, donationID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "donation favorited", "favorite": f})
}

// Unfavorite handles DELETE /favorites/:id.
func (h *LedgerHandler) Unfavorite(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}
	if err := h.ledger.Unfavorite(c.Context(), id, middleware.Identity(c).Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "favorite removed"})
}

// ListFavorites handles GET /favorites.
func (h *LedgerHandler) ListFavorites(c *fiber.Ctx) error {
	views, err := h.ledger.ListFavorites(c.Context(), middleware.Identity(c).Email)
	if err != nil {
		return err
	}
	return c.JSON(views)
}

// AddReview handles POST /reviews with body {donationId, comment, rating}.
func (h *LedgerHandler) AddReview(c *fiber.Ctx) error {
	var body struct {
		DonationID string `json:"donationId"`
		services.ReviewInput
	}
	if err := c.BodyParser(&body); err != nil {
		return httperr.InvalidInput("invalid request body")
	}
	donationID, err := primitive.ObjectIDFromHex(body.DonationID)
	if err != nil {
		return httperr.InvalidInput("invalid donationId")
	}

	review, err := h.ledger.AddReview(c.Context(), middleware.Identity(c), donationID, body.ReviewInput)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "review added", "review": review})
}

// ListReviews handles GET /reviews?donationId=.
func (h *LedgerHandler) ListReviews(c *fiber.Ctx) error {
	donationID, err := primitive.ObjectIDFromHex(c.Query("donationId"))
	if err != nil {
		return httperr.InvalidInput("invalid donationId")
	}
	reviews, err := h.ledger.ListReviews(c.Context(), donationID)
	if err != nil {
		return err
	}
	return c.JSON(reviews)
}

// DeleteReview handles DELETE /reviews/:id.
func (h *LedgerHandler) DeleteReview(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}
	if err := h.ledger.DeleteReview(c.Context(), id, middleware.Identity(c).Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "review deleted"})
}
