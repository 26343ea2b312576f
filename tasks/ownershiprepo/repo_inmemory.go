package ownershiprepo

import (
	"sync"

	ierrors "github.com/jrsteele09/taskhub-auth/internal/errors"
	"github.com/jrsteele09/taskhub-auth/tasks"
)

var _ tasks.OwnershipRepo = (*InMemoryRepo)(nil)

// InMemoryRepo records which principal is the designated executor of each
// task. Stands in for the persistent task store.
type InMemoryRepo struct {
	executors map[string]string // task ID to executor email
	lock      sync.RWMutex
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		executors: make(map[string]string),
	}
}

func (or *InMemoryRepo) SetExecutor(taskID, email string) {
	or.lock.Lock()
	defer or.lock.Unlock()

	or.executors[taskID] = email
}

func (or *InMemoryRepo) ExecutorEmail(taskID string) (string, error) {
	or.lock.RLock()
	defer or.lock.RUnlock()

	email, ok := or.executors[taskID]
	if !ok {
		return "", ierrors.ErrTaskNotFound
	}
	return email, nil
}
