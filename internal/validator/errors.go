package validator

import (
	"github.com/lumilearn/quiz-runner/internal/errors"
)

// Use shared validation errors from the errors package.
type ValidationError = errors.ValidationError
type ValidationErrors = errors.ValidationErrors

// ToValidationErrors converts validator.ValidationErrors to our custom type.
func ToValidationErrors(err error) ValidationErrors {
	return errors.ToValidationErrors(err)
}
