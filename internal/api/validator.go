package api

import "github.com/go-playground/validator"

// Adapts go-playground/validator to echo's Validator interface.
type requestValidator struct {
	validator *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	return v.validator.Struct(i)
}
