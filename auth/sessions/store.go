package sessions

import "sync"

// slotState tags the per-subject session slot so "refresh consumed" is
// never confused with "never logged in": an absent map entry means logged
// out, an active slot holds the authoritative refresh token, a consumed
// slot blocks further token use until logout.
type slotState int

const (
	stateActive slotState = iota
	stateConsumed
)

type slot struct {
	state slotState
	token string
}

// Store is the concurrent map from subject (user email) to the currently
// authoritative refresh token. It is the only mutable shared state in the
// credential core; every operation is a single atomic step with respect to
// concurrent callers, so no external locking is needed. Invariant: at most
// one live refresh token per subject at any time.
type Store struct {
	slots map[string]slot
	lock  sync.Mutex
}

func New() *Store {
	return &Store{
		slots: make(map[string]slot),
	}
}

// PutIfAbsent records the subject's refresh token only if no live entry
// exists. A consumed slot is replaceable: its refresh token can never match
// again, so a fresh login is the only way forward for that subject. Login
// uses this to enforce the single-active-session invariant: of N concurrent
// logins for one subject, exactly one succeeds.
func (s *Store) PutIfAbsent(subject, refreshToken string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if entry, exists := s.slots[subject]; exists && entry.state == stateActive {
		return false
	}
	s.slots[subject] = slot{state: stateActive, token: refreshToken}
	return true
}

// Matches reports whether refreshToken is the subject's current
// authoritative token. A consumed or absent slot never matches.
func (s *Store) Matches(subject, refreshToken string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	entry, exists := s.slots[subject]
	return exists && entry.state == stateActive && entry.token == refreshToken
}

// Consume marks the subject's slot as spent, making the stored refresh
// token single-use: any later Matches or Swap against it fails.
func (s *Store) Consume(subject string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if entry, exists := s.slots[subject]; exists {
		entry.state = stateConsumed
		entry.token = ""
		s.slots[subject] = entry
	}
}

// Swap atomically replaces the subject's token, but only if the slot still
// holds expectedOld. Returns false when another rotation already won the
// race or the slot was consumed or removed.
func (s *Store) Swap(subject, expectedOld, newToken string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	entry, exists := s.slots[subject]
	if !exists || entry.state != stateActive || entry.token != expectedOld {
		return false
	}
	s.slots[subject] = slot{state: stateActive, token: newToken}
	return true
}

// Remove deletes the subject's slot entirely (logout). Returns false if
// there was nothing to remove.
func (s *Store) Remove(subject string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, exists := s.slots[subject]; !exists {
		return false
	}
	delete(s.slots, subject)
	return true
}

// Exists reports whether the subject has any slot at all, live or
// consumed. Logout uses this to tell a wrong token apart from a slot that
// was already removed.
func (s *Store) Exists(subject string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, exists := s.slots[subject]
	return exists
}

// IsActive reports whether the subject has a live, non-consumed session.
func (s *Store) IsActive(subject string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	entry, exists := s.slots[subject]
	return exists && entry.state == stateActive
}
