package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and handlers. Handlers translate
// these into status codes; credential failures stay deliberately vague so the
// API never confirms whether an email is registered.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidMediaID     = errors.New("invalid media id")
	ErrAlreadyExists      = errors.New("email already registered")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// ValidationError reports malformed input rejected at the boundary, before
// any store access happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
