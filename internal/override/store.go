// Package override tracks per-path user decisions that supersede the
// content heuristic for the current session.
package override

import "sync"

// Store maps absolute paths to a pinned classification: true pins a
// path as used, false pins it as unused. An absent entry means the
// heuristic decides. Nothing is ever persisted; a store lives exactly
// as long as the process.
type Store struct {
	mu sync.RWMutex
	m  map[string]bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{m: make(map[string]bool)}
}

// Get returns the pinned value for path and whether one exists.
func (s *Store) Get(path string) (bool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[path]
	return v, ok
}

// Set pins path as used (true) or unused (false).
func (s *Store) Set(path string, used bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[path] = used
}

// Clear removes any pin from path, returning it to the heuristic.
func (s *Store) Clear(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, path)
}

// ResetAll discards every pin. Invoked once at process start so a new
// session never inherits stale decisions.
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m = make(map[string]bool)
}

// Len returns the number of pinned paths.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
