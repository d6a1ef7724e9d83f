// utils/validator.go
package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs tag-driven validation and flattens any failures into a
// single user-facing message.
func ValidateStruct(v interface{}) error {
	errs := validate.Struct(v)
	if errs == nil {
		return nil
	}

	var details strings.Builder
	for _, err := range errs.(validator.ValidationErrors) {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch err.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", err.Field()))
		case "min":
			details.WriteString(fmt.Sprintf("%s must be at least %s", err.Field(), err.Param()))
		case "max":
			details.WriteString(fmt.Sprintf("%s must be at most %s", err.Field(), err.Param()))
		case "oneof":
			details.WriteString(fmt.Sprintf("%s must be one of [%s]", err.Field(), err.Param()))
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", err.Field(), err.Tag()))
		}
	}
	return errors.New(details.String())
}
