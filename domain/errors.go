package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownScenario     = errors.New("unknown scenario")
	ErrUnknownIntensity    = errors.New("unknown intensity")
	ErrInvalidClusterCount = errors.New("invalid cluster count")
)

// FieldError is a request validation failure naming the offending field.
// The HTTP layer maps it to 422.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewFieldError(field, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}
