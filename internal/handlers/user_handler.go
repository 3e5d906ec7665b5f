package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ismail-dev-code/meal-giver-server/internal/httperr"
	"github.com/ismail-dev-code/meal-giver-server/internal/middleware"
	"github.com/ismail-dev-code/meal-giver-server/internal/services"
)

// UserHandler serves the user directory endpoints.
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Upsert handles POST /users: record a sign-in for the verified identity.
func (h *UserHandler) Upsert(c *fiber.Ctx) error {
	var body struct {
		Name  string `json:"name"`
		Photo string `json:"photo"`
	}
	if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
		return httperr.InvalidInput("invalid request body")
	}

	user, inserted, err := h.users.Upsert(c.Context(), middleware.Identity(c), body.Name, body.Photo)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": user, "inserted": inserted})
}

// Role handles GET /users/:email/role.
func (h *UserHandler) Role(c *fiber.Ctx) error {
	role, err := h.users.Role(c.Context(), c.Params("email"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"role": role})
}

// List handles GET /admin/users.
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// SetRole handles PATCH /admin/users/:email/role.
func (h *UserHandler) SetRole(c *fiber.Ctx) error {
	var body struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil {
		return httperr.InvalidInput("invalid request body")
	}
	if err := h.users.SetRole(c.Context(), c.Params("email"), body.Role); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "role updated"})
}

// Delete handles DELETE /admin/users/:email.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.Context(), c.Params("email")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "user deleted"})
}
