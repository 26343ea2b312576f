package errors

import (
	"errors"
	"fmt"
)

// Failure taxonomy for the credential core. Every member maps to exactly
// one externally visible outcome at the HTTP boundary.
var (
	// Authentication errors
	ErrPrincipalNotFound = errors.New("principal not found")
	ErrWrongCredentials  = errors.New("wrong credentials")

	// Session-state errors
	ErrAlreadyLoggedIn  = errors.New("already logged in")
	ErrAlreadyLoggedOut = errors.New("already logged out")

	// Token errors
	ErrTokenInvalid = errors.New("invalid token")
	ErrStaleToken   = errors.New("stale or wrong refresh token")

	// Authorization errors
	ErrForbidden = errors.New("forbidden")

	// Resource errors
	ErrTaskNotFound = errors.New("task not found")

	// General errors
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
