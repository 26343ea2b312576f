package token

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/taskhub-auth/users"
)

// AccessClaims is the payload of a short-lived access token. The subject
// is the principal's email; role and full name are carried so resource
// servers can authorize without a user-store round trip.
type AccessClaims struct {
	Role     users.RoleType `json:"role"`
	FullName string         `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload of a refresh token. Deliberately narrower
// than AccessClaims: no display data, only what rotation needs.
type RefreshClaims struct {
	Role users.RoleType `json:"role"`
	jwt.RegisteredClaims
}

// validateRequired rejects tokens missing the claims this core depends on,
// rather than relying on caller discipline.
func (c *AccessClaims) validateRequired() error {
	if c.Subject == "" || c.Role == "" || c.ExpiresAt == nil {
		return errMissingRequiredClaims
	}
	return nil
}

func (c *RefreshClaims) validateRequired() error {
	if c.Subject == "" || c.Role == "" || c.ExpiresAt == nil {
		return errMissingRequiredClaims
	}
	return nil
}
