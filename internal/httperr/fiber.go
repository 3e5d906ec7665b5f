package httperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ismail-dev-code/meal-giver-server/internal/logger"
)

// ErrorHandler is the app-level fiber error handler. Handlers and services
// return errors; this is the single place that turns them into responses.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"error": fiberErr.Message,
			"kind":  string(KindInternal),
		})
	}

	appErr := From(err)
	if appErr.Kind == KindInternal {
		logger.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("request failed")
	}
	return c.Status(appErr.Status()).JSON(fiber.Map{
		"error": appErr.Message,
		"kind":  string(appErr.Kind),
	})
}
