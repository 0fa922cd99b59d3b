package targets

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their yaml key so errors match the file.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s %v is below %s", field, err.Value(), err.Param())
	case "max":
		return fmt.Sprintf("%s %v is above %s", field, err.Value(), err.Param())
	case "oneof":
		return fmt.Sprintf("%s %q must be one of: %s", field, err.Value(), err.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
