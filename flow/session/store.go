// Package session defines the session-store contract (flow.md §4.2): a
// minimal get/set/delete keyed by session id. The runtime depends only on
// this interface; concrete backends live in sibling packages (memstore,
// redisstore, sqlstore).
package session

import (
	"context"
	"errors"

	"github.com/ivaflow/flowcore/flow"
)

// ErrNotFound is returned by Get when no session exists for the given id.
var ErrNotFound = errors.New("session: not found")

// Store is the pluggable session persistence contract. Set is a full-value
// replacement, atomic with respect to concurrent Gets of the same id — this
// is what makes the per-session serialisation discipline in flow/engine
// sufficient without needing read-modify-write semantics in the store
// itself.
type Store interface {
	// Get returns the session for id, or ErrNotFound if none exists.
	Get(ctx context.Context, id string) (*flow.Session, error)

	// Set persists session as a full replacement keyed by session.ID.
	Set(ctx context.Context, sess *flow.Session) error

	// Delete removes the session for id. Deleting an id that does not
	// exist is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all sessions currently held by the store.
	// Backing stores that cannot enumerate efficiently may approximate
	// this (e.g. scan with a bound); the engine uses it only for
	// ListActiveSessions diagnostics, never on the hot path.
	List(ctx context.Context) ([]string, error)
}
