package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks struct tags and converts failures into a
// field-keyed validation error the error handler can render.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ErrValidation(map[string]string{"request": "malformed request"})
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		fields[strings.ToLower(fe.Field())] = messageForTag(fe)
	}
	return ErrValidation(fields)
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
