package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/ismail-dev-code/meal-giver-server/internal/httperr"
)

// RoleLookup resolves the stored role for a verified email.
type RoleLookup interface {
	Role(ctx context.Context, email string) (string, error)
}

// RequireRole gates a route to the given roles. The role is looked up in the
// user directory on every call so role changes take effect immediately; a
// caller with no user record is forbidden.
func RequireRole(users RoleLookup, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		email, _ := c.Locals(LocalEmail).(string)
		if email == "" {
			return httperr.Unauthorized("missing user context")
		}

		role, err := users.Role(c.Context(), email)
		if httperr.IsKind(err, httperr.KindNotFound) {
			return httperr.Forbidden("no account for this identity")
		}
		if err != nil {
			return err
		}
		if _, ok := allowed[role]; !ok {
			return httperr.Forbidden("insufficient permissions")
		}

		c.Locals(LocalRole, role)
		return c.Next()
	}
}
