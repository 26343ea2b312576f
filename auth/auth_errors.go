package auth

import (
	"fmt"

	ierrors "github.com/jrsteele09/taskhub-auth/internal/errors"
)

// Re-exported sentinels so callers can match on the auth package alone.
var (
	ErrPrincipalNotFound = ierrors.ErrPrincipalNotFound
	ErrWrongCredentials  = ierrors.ErrWrongCredentials
	ErrAlreadyLoggedIn   = ierrors.ErrAlreadyLoggedIn
	ErrAlreadyLoggedOut  = ierrors.ErrAlreadyLoggedOut
	ErrTokenInvalid      = ierrors.ErrTokenInvalid
	ErrStaleToken        = ierrors.ErrStaleToken
)

// tokenInvalid collapses a codec failure into the single client-facing
// invalid-token outcome while keeping the decode kind in the chain for
// logging.
func tokenInvalid(cause error) error {
	return fmt.Errorf("%w: %w", ErrTokenInvalid, cause)
}
