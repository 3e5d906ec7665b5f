package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ismail-dev-code/meal-giver-server/internal/httperr"
	"github.com/ismail-dev-code/meal-giver-server/internal/middleware"
	"github.com/ismail-dev-code/meal-giver-server/internal/services"
)

// RequestHandler serves the request lifecycle endpoints.
type RequestHandler struct {
	requests *services.RequestService
	pickups  *services.PickupService
}

func NewRequestHandler(requests *services.RequestService, pickups *services.PickupService) *RequestHandler {
	return &RequestHandler{requests: requests, pickups: pickups}
}

// Submit handles POST /donations/:id/requests.
func (h *RequestHandler) Submit(c *fiber.Ctx) error {
	donationID, err := objectID(c, "id")
	if err != nil {
		return err
	}
	var in services.RequestInput
	if err := c.BodyParser(&in); err != nil {
		return httperr.InvalidInput("invalid request body")
	}
	r, err := h.requests.Submit(c.Context(), donationID, middleware.Identity(c), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "request submitted", "request": r})
}

// Resolve handles PATCH /requests/:id with body {action}.
func (h *RequestHandler) Resolve(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		Action string `json:"action"`
	}
	if err := c.BodyParser(&body); err != nil {
		return httperr.InvalidInput("invalid request body")
	}
	r, err := h.requests.Resolve(c.Context(), id, body.Action, middleware.Identity(c).Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "request " + r.Status, "request": r})
}

// Cancel handles DELETE /requests/:id.
func (h *RequestHandler) Cancel(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}
	if err := h.requests.Cancel(c.Context(), id, middleware.Identity(c).Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "request cancelled"})
}

// ConfirmPickup handles PATCH /charity/pickup-confirm/:id.
func (h *RequestHandler) ConfirmPickup(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}
	r, err := h.requests.ConfirmPickup(c.Context(), id, middleware.Identity(c).Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "pickup confirmed", "request": r})
}

// RestaurantInbox handles GET /restaurant/requests.
func (h *RequestHandler) RestaurantInbox(c *fiber.Ctx) error {
	requests, err := h.pickups.RestaurantInbox(c.Context(), middleware.Identity(c).Email)
	if err != nil {
		return err
	}
	return c.JSON(requests)
}

// CharityRequests handles GET /charity/requests.
func (h *RequestHandler) CharityRequests(c *fiber.Ctx) error {
	requests, err := h.pickups.CharityRequests(c.Context(), middleware.Identity(c).Email)
	if err != nil {
		return err
	}
	return c.JSON(requests)
}

// CharityPickups handles GET /charity/pickups.
func (h *RequestHandler) CharityPickups(c *fiber.Ctx) error {
	requests, err := h.pickups.CharityPickups(c.Context(), middleware.Identity(c).Email)
	if err != nil {
		return err
	}
	return c.JSON(requests)
}

// CharityReceived handles GET /charity/received.
func (h *RequestHandler) CharityReceived(c *fiber.Ctx) error {
	views, err := h.pickups.CharityReceived(c.Context(), middleware.Identity(c).Email)
	if err != nil {
		return err
	}
	return c.JSON(views)
}
