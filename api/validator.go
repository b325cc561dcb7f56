package api

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/carewell/portal/errors"
)

// RequestValidator adapts go-playground/validator to echo's Validator
// interface so handlers can validate bound DTOs with struct tags.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(),
	}
}

func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return fmt.Errorf("%w: %s", errors.BadRequest, err.Error())
	}
	return nil
}
