// Package memstore is the default, in-memory session.Store implementation:
// a process-wide mapping from session id to session, guarded by a
// sync.RWMutex (flow.md §4.2).
package memstore

import (
	"context"
	"sync"

	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/session"
)

// Store is a thread-safe in-memory session.Store. It is suitable for
// single-process deployments and tests; state does not survive restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*flow.Session
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{sessions: make(map[string]*flow.Session)}
}

// Get returns a clone of the stored session for id, or session.ErrNotFound.
func (s *Store) Get(_ context.Context, id string) (*flow.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return sess.Clone(), nil
}

// Set replaces the stored session for sess.ID with a clone of sess.
func (s *Store) Set(_ context.Context, sess *flow.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.ID] = sess.Clone()
	return nil
}

// Delete removes the session for id, if present.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// List returns the ids of every session currently held.
func (s *Store) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids, nil
}
