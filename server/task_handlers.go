package server

import (
	"net/http"

	ierrors "github.com/jrsteele09/taskhub-auth/internal/errors"
	"github.com/rs/zerolog/log"
)

type taskAccessResponse struct {
	TaskID string `json:"taskId"`
	Email  string `json:"email"`
}

// TaskAccessHandler guards a task resource with the fine-grained ownership
// predicate. Role checks alone are not enough here: only the task's
// designated executor may pass.
func (s *Server) TaskAccessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		taskID := r.PathValue("id")
		allowed, err := s.tasks.IsOwnerOrExecutor(taskID, principal.Email)
		if err != nil {
			log.Error().Err(err).Str("task_id", taskID).Msg("ownership lookup failed")
			writeError(w, err)
			return
		}
		if !allowed {
			writeError(w, ierrors.ErrForbidden)
			return
		}

		writeJSON(w, http.StatusOK, taskAccessResponse{TaskID: taskID, Email: principal.Email})
	}
}
