package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("access forbidden")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("resource not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrPersistence         = errors.New("persistence failure")
	ErrPaymentProvider     = errors.New("payment provider failure")
)

// AuthReason is the internal cause of an authentication failure. It is logged
// and counted but never rendered to the caller.
type AuthReason string

const (
	ReasonMissingCredential AuthReason = "missing_credential"
	ReasonMalformedHeader   AuthReason = "malformed_header"
	ReasonInvalidToken      AuthReason = "invalid_token"
	ReasonExpiredToken      AuthReason = "expired_token"
)

// AuthError is the single authentication failure variant. Every AuthError
// matches ErrUnauthenticated under errors.Is.
type AuthError struct {
	Reason AuthReason
	Err    error
}

func NewAuthError(reason AuthReason, err error) *AuthError {
	return &AuthError{Reason: reason, Err: err}
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("authentication failed (%s)", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool { return target == ErrUnauthenticated }

// Invalid wraps ErrInvalidInput with a caller-facing detail.
func Invalid(detail string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, detail)
}
