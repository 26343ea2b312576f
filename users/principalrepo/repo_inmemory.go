package principalrepo

import (
	"sync"

	ierrors "github.com/jrsteele09/taskhub-auth/internal/errors"
	"github.com/jrsteele09/taskhub-auth/users"
)

var _ users.PrincipalLookup = (*InMemoryRepo)(nil)

// InMemoryRepo is a process-local principal store keyed by email. Used as
// the user-store collaborator in tests and single-process deployments.
type InMemoryRepo struct {
	principals map[string]*users.Principal
	lock       sync.RWMutex
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		principals: make(map[string]*users.Principal),
	}
}

func (pr *InMemoryRepo) Upsert(principal *users.Principal) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	pr.principals[principal.Email] = principal
	return nil
}

func (pr *InMemoryRepo) FindByEmail(email string) (*users.Principal, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	principal, ok := pr.principals[email]
	if !ok {
		return nil, ierrors.ErrPrincipalNotFound
	}
	return principal, nil
}
