package utils

import (
	"github.com/go-playground/validator/v10"
)

// EchoValidator adapts a go-playground validator to echo.Validator.
type EchoValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *EchoValidator {
	return &EchoValidator{validator: v}
}

func (cv *EchoValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
