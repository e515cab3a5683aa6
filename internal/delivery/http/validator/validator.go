// Package validator adapts go-playground validation to echo's Validator hook.
package validator

import (
	domainerrors "catalog/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

// echoValidator wraps a validator.Validate instance for echo.
type echoValidator struct {
	validate *playground.Validate
}

// New builds the validator every bound request DTO runs through.
func New() *echoValidator {
	return &echoValidator{validate: playground.New()}
}

// Validate implements echo.Validator. Failures surface as the shared
// validation failure so the error handler maps them to 400.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
