// Package validate holds the input checks applied before any write
package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/thenoetrevino/clubhouse/internal/models"
)

// Reasons reported by ValidationError
const (
	ReasonEmpty        = "empty"
	ReasonNotAnInteger = "not_an_integer"
	ReasonNegative     = "negative"
)

// ValidationError names the offending field and why it was rejected
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return fmt.Sprintf("%s cannot be empty", e.Field)
	case ReasonNotAnInteger:
		return fmt.Sprintf("%s must be a whole number", e.Field)
	case ReasonNegative:
		return fmt.Sprintf("%s cannot be negative", e.Field)
	default:
		return fmt.Sprintf("%s is invalid: %s", e.Field, e.Reason)
	}
}

// Is makes every ValidationError match models.ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == models.ErrValidation
}

// RequiredString trims value and rejects it when nothing is left.
func RequiredString(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", &ValidationError{Field: field, Reason: ReasonEmpty}
	}
	return v, nil
}

// Int parses a base-10 integer. Empty input is 0.
func Int(field, value string) (int, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: ReasonNotAnInteger}
	}
	return n, nil
}

// NonNegativeInt parses a base-10 integer >= 0. Empty input is 0.
func NonNegativeInt(field, value string) (int, error) {
	n, err := Int(field, value)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &ValidationError{Field: field, Reason: ReasonNegative}
	}
	return n, nil
}

// Reason extracts the rejection reason from err, or "" when err is not a ValidationError
func Reason(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return ""
}
