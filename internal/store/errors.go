package store

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced to handlers. NotFound and Forbidden are kept
// separate here; handlers collapse them into one user-facing outcome so a
// response never reveals whether an item exists for another user.
var (
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrAuthenticationFailed = errors.New("invalid email or password")
	ErrNotFound             = errors.New("item not found")
	ErrForbidden            = errors.New("item belongs to another user")
)

// ValidationError reports a missing or invalid required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
