package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// IsEmailShape reports whether value passes the validator's email check.
// The registration form layers its own domain allow-list on top of this.
func IsEmailShape(value string) bool {
	return validate.Var(value, "required,email") == nil
}
