package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ismail-dev-code/meal-giver-server/internal/auth"
	"github.com/ismail-dev-code/meal-giver-server/internal/httperr"
)

// Locals keys set by the middleware chain.
const (
	LocalEmail = "email"
	LocalName  = "name"
	LocalRole  = "role"
)

// Authenticate validates the bearer credential with the injected verifier and
// attaches the verified identity to the request context. Missing credential is
// 401; a credential the verifier rejects is 403. Verification is not cached:
// every call re-verifies.
func Authenticate(verifier auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return httperr.Unauthorized("missing authorization header")
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		if token == "" {
			return httperr.Unauthorized("missing bearer token")
		}

		identity, err := verifier.Verify(c.Context(), token)
		if err != nil {
			return httperr.Forbidden("credential rejected")
		}

		c.Locals(LocalEmail, identity.Email)
		c.Locals(LocalName, identity.Name)
		return c.Next()
	}
}

// Identity rebuilds the verified identity from the request context.
func Identity(c *fiber.Ctx) auth.Identity {
	email, _ := c.Locals(LocalEmail).(string)
	name, _ := c.Locals(LocalName).(string)
	return auth.Identity{Email: email, Name: name}
}

// Role returns the resolved role set by RequireRole.
func Role(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalRole).(string)
	return role
}
