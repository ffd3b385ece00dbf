// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidationMessage flattens validator errors into one readable line for
// the {message} error body.
func ValidationMessage(err error) string {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Invalid request"
	}

	var parts []string
	for _, e := range validationErrs {
		parts = append(parts, fieldMessage(e))
	}
	return strings.Join(parts, "; ")
}

func fieldMessage(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "invalid email format"
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param()
	case "gte":
		return field + " must be at least " + e.Param()
	case "lte":
		return field + " must be at most " + e.Param()
	default:
		return field + " is invalid"
	}
}
