package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ismail-dev-code/meal-giver-server/internal/httperr"
	"github.com/ismail-dev-code/meal-giver-server/internal/middleware"
	"github.com/ismail-dev-code/meal-giver-server/internal/services"
)

// RoleRequestHandler serves the paid role elevation endpoints.
type RoleRequestHandler struct {
	roleRequests *services.RoleRequestService
}

func NewRoleRequestHandler(roleRequests *services.RoleRequestService) *RoleRequestHandler {
	return &RoleRequestHandler{roleRequests: roleRequests}
}

// Submit handles POST /role-requests.
func (h *RoleRequestHandler) Submit(c *fiber.Ctx) error {
	var in services.RoleRequestInput
	if err := c.BodyParser(&in); err != nil {
		return httperr.InvalidInput("invalid request body")
	}
	result, err := h.roleRequests.Submit(c.Context(), middleware.Identity(c).Email, in)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// Mine handles GET /role-requests/mine.
func (h *RoleRequestHandler) Mine(c *fiber.Ctx) error {
	out, err := h.roleRequests.Mine(c.Context(), middleware.Identity(c).Email)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List handles GET /admin/role-requests?status=.
func (h *RoleRequestHandler) List(c *fiber.Ctx) error {
	out, err := h.roleRequests.List(c.Context(), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Resolve handles PATCH /admin/role-requests/:id with body {action}.
func (h *RoleRequestHandler) Resolve(c *fiber.Ctx) error {
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
	if body.Action != "approve" && body.Action != "reject" {
		return httperr.InvalidInput("action must be approve or reject")
	}

	rr, err := h.roleRequests.Resolve(c.Context(), id, body.Action == "approve")
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "role request " + rr.Status, "roleRequest": rr})
}
