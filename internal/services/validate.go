package services

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ismail-dev-code/meal-giver-server/internal/httperr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkRequired validates v and converts validator failures into an
// InvalidInput error naming the offending fields.
func checkRequired(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return httperr.InvalidInput("invalid input")
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return httperr.InvalidInput("missing or invalid fields: " + strings.Join(fields, ", "))
}
