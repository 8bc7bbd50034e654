package schema

import (
	"github.com/go-playground/validator/v10"
)

// TypeValidation accepts a column-type string that parses.
func TypeValidation(fl validator.FieldLevel) bool {
	_, err := ParseType(fl.Field().String())
	return err == nil
}

func RegisterTypeValidation(v *validator.Validate) {
	_ = v.RegisterValidation("coltype", TypeValidation)
}
