package google

import (
	"errors"
	"fmt"
)

var (
	// ErrNoToken is returned by TokenFile.Load when no token file exists.
	ErrNoToken = errors.New("no persisted Google OAuth token")

	// ErrConsentRequired means a new grant is needed but no interactive
	// consent flow is available in this process.
	ErrConsentRequired = errors.New("no valid Google OAuth token; run the auth command to provision one")
)

// AuthError represents a failure to obtain a usable Google credential
type AuthError struct {
	// Op is the step that failed (e.g., "load", "refresh", "authorize")
	Op string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return fmt.Sprintf("google auth %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *AuthError) Unwrap() error {
	return e.Err
}
