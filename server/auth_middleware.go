package server

import (
	"context"
	"net/http"
	"strings"

	ierrors "github.com/jrsteele09/taskhub-auth/internal/errors"
	"github.com/jrsteele09/taskhub-auth/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// extractBearer pulls the bearer token out of the Authorization header.
// A missing, non-bearer or empty header counts as "no token present".
func extractBearer(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// WithPrincipal runs once per inbound request. Absence of a token is not
// an error: the request proceeds anonymously and downstream checks decide.
// A token that is present must decode; expired or otherwise invalid access
// tokens hard-fail here, forcing the client through an explicit refresh.
// Session liveness is re-checked on every request, so a valid token for a
// logged-out subject produces an unauthenticated principal.
func (s *Server) WithPrincipal() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			rawToken, present := extractBearer(r)
			if !present {
				next(w, r)
				return
			}

			claims, err := s.codec.DecodeAccess(rawToken)
			if err != nil {
				var decodeErr *token.DecodeError
				if errors.As(err, &decodeErr) {
					log.Warn().
						Str("reason", decodeErr.Kind.String()).
						Str("path", r.URL.Path).
						Msg("access token rejected")
				}
				writeError(w, ierrors.ErrTokenInvalid)
				return
			}

			principal := &RequestPrincipal{
				Email:         claims.Subject,
				FullName:      claims.FullName,
				Role:          claims.Role,
				Authenticated: s.store.IsActive(claims.Subject),
			}
			ctx := context.WithValue(r.Context(), ContextKeyPrincipal, principal)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequirePrincipal rejects requests that did not arrive with a live,
// authenticated principal. Chain after WithPrincipal.
func (s *Server) RequirePrincipal() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok || !principal.Authenticated {
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			next(w, r)
		}
	}
}
