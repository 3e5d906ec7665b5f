package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ismail-dev-code/meal-giver-server/internal/httperr"
)

// objectID parses the named route parameter as a Mongo ObjectID.
func objectID(c *fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, httperr.InvalidInput("invalid " + name)
	}
	return id, nil
}
