package tasks

import (
	ierrors "github.com/jrsteele09/taskhub-auth/internal/errors"
	"github.com/pkg/errors"
)

// OwnershipRepo answers the single resource-ownership fact the authorizer
// needs. Backed by the persistent task store, out of scope here.
type OwnershipRepo interface {
	// ExecutorEmail returns the email of the task's designated executor.
	ExecutorEmail(taskID string) (string, error)
}

// Authorizer is the stateless predicate protected operations consult for
// fine-grained (non-role) access decisions.
type Authorizer struct {
	repo OwnershipRepo
}

func NewAuthorizer(repo OwnershipRepo) (*Authorizer, error) {
	if repo == nil {
		return nil, errors.New("[NewAuthorizer] ownership repo is required")
	}
	return &Authorizer{repo: repo}, nil
}

// IsOwnerOrExecutor reports whether the principal is the task's designated
// executor. Each call is a fresh point query; no caching, it is keyed by a
// unique task id and consulted at most once per protected request. An
// unknown task simply does not confirm ownership.
func (a *Authorizer) IsOwnerOrExecutor(taskID, principalEmail string) (bool, error) {
	executor, err := a.repo.ExecutorEmail(taskID)
	if err != nil {
		if errors.Is(err, ierrors.ErrTaskNotFound) {
			return false, nil
		}
		return false, errors.Wrap(err, "[Authorizer.IsOwnerOrExecutor] ExecutorEmail")
	}
	return executor == principalEmail, nil
}
