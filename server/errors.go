package server

import (
	"net/http"

	ierrors "github.com/jrsteele09/taskhub-auth/internal/errors"
	"github.com/rs/zerolog/log"
)

// statusForError maps every member of the failure taxonomy to exactly one
// externally visible outcome. The mapping is total: anything unclassified
// is an internal error.
func statusForError(err error) (int, string) {
	switch {
	case ierrors.Is(err, ierrors.ErrPrincipalNotFound):
		return http.StatusNotFound, "principal not found"
	case ierrors.Is(err, ierrors.ErrWrongCredentials):
		return http.StatusUnauthorized, "wrong credentials"
	case ierrors.Is(err, ierrors.ErrAlreadyLoggedIn):
		return http.StatusConflict, "already logged in"
	case ierrors.Is(err, ierrors.ErrAlreadyLoggedOut):
		return http.StatusConflict, "already logged out"
	case ierrors.Is(err, ierrors.ErrTokenInvalid):
		// Collapsed client-facing category; the specific decode failure
		// is logged internally, never returned.
		return http.StatusUnauthorized, "invalid token"
	case ierrors.Is(err, ierrors.ErrStaleToken):
		return http.StatusUnauthorized, "stale or wrong token"
	case ierrors.Is(err, ierrors.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, message := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("unclassified error at boundary")
	}
	writeJSONError(w, status, message)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
