package panel

import "sync"

// Store is the explicit state container owning a panel State.
// It is constructed once by the composition root and passed down by
// reference; dispatches are serialized by a mutex.
type Store struct {
	mu    sync.Mutex
	state State
}

// NewStore creates a store with an empty state.
func NewStore() *Store {
	return &Store{}
}

// Dispatch applies an action to the current state and returns the new state.
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, action)

	return s.state
}

// Snapshot returns a copy of the current state safe for the caller to keep.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneState(s.state)
}
