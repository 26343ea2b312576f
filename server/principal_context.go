package server

import (
	"context"

	"github.com/jrsteele09/taskhub-auth/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyPrincipal stores the request's principal context
const ContextKeyPrincipal ContextKey = "principal"

// RequestPrincipal is the per-request principal context built by the
// request authenticator. Authenticated reflects session liveness at the
// time the request entered: a structurally valid access token for a
// logged-out subject yields Authenticated == false.
type RequestPrincipal struct {
	Email         string
	FullName      string
	Role          users.RoleType
	Authenticated bool
}

// PrincipalFromContext returns the principal attached by WithPrincipal,
// or false for anonymous requests.
func PrincipalFromContext(ctx context.Context) (*RequestPrincipal, bool) {
	principal, ok := ctx.Value(ContextKeyPrincipal).(*RequestPrincipal)
	return principal, ok
}
