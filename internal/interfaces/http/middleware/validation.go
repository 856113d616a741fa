package middleware

import (
	"reflect"
	"strings"

	"github.com/bazaartech/backend/internal/domain/inventory"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator registers custom validation rules and configures the
// validator to report JSON field names in error messages.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	// movementkind accepts IN, OUT and REMOVE
	_ = v.RegisterValidation("movementkind", func(fl validator.FieldLevel) bool {
		return inventory.MovementKind(fl.Field().String()).IsValid()
	})
}

// ValidationMessage turns a validator error into a human-readable message
func ValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "movementkind":
		return "Must be one of: IN, OUT, REMOVE"
	case "min":
		return "Must be at least " + e.Param()
	case "max":
		return "Must be at most " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	default:
		return "Invalid value"
	}
}
