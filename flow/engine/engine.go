// Package engine implements the top-level run loop (flow.md §4.6):
// startSession, processInput, getSession, endSession. It owns the
// session store, the event bus, and per-node-kind execution via
// flow/executor, applying each NodeResult's side effects to the session
// and choosing the next node.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/events"
	"github.com/ivaflow/flowcore/flow/handler"
	"github.com/ivaflow/flowcore/flow/metrics"
	"github.com/ivaflow/flowcore/flow/session"
)

// Options configures an Engine. Zero values fall back to flow.md §6's
// defaults (MaxSteps=100, DefaultToolTimeoutMS=30000).
type Options struct {
	// MaxSteps bounds run-loop iterations per startSession/processInput
	// call (I6, P1). Zero is replaced with the spec default.
	MaxSteps int
	// DefaultToolTimeoutMS is passed to Tool-Call handlers that omit an
	// explicit per-node timeout.
	DefaultToolTimeoutMS int

	// Store persists sessions. Required.
	Store session.Store
	// Services bundles the AI/knowledge/tool collaborators node handlers
	// may call.
	Services handler.Services
	// Bus receives lifecycle events (flow.md §4.7). May be nil to
	// disable event emission entirely.
	Bus *events.Bus
	// Metrics records Prometheus observations. May be nil to disable.
	Metrics *metrics.PrometheusMetrics
}

const (
	defaultMaxSteps             = 100
	defaultDefaultToolTimeoutMS = 30000
)

// Engine drives one Flow's sessions. A single Engine may be shared
// across goroutines; per-session serialisation (flow.md §5) is enforced
// internally via a per-sessionId lock.
type Engine struct {
	flow *flow.Flow
	opts Options

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// New constructs an Engine for f, running the runtime structural checks
// flow.Validate implements: unique ids, resolvable edges, an existing
// entryNode.
func New(f *flow.Flow, opts Options) (*Engine, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("engine: Options.Store is required")
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = defaultMaxSteps
	}
	if opts.DefaultToolTimeoutMS <= 0 {
		opts.DefaultToolTimeoutMS = defaultDefaultToolTimeoutMS
	}
	f.Index()

	return &Engine{
		flow:  f,
		opts:  opts,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

func (e *Engine) lock(sessionID string) func() {
	e.locksMu.Lock()
	mu, ok := e.locks[sessionID]
	if !ok {
		mu = &sync.Mutex{}
		e.locks[sessionID] = mu
	}
	e.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// StartSession creates a new session positioned at the flow's entry
// node, persists it, emits session_started, and drives the run loop
// (flow.md §4.6).
func (e *Engine) StartSession(ctx context.Context) (*flow.Session, error) {
	if _, ok := e.flow.NodeByID(e.flow.EntryNode); !ok {
		return nil, &flow.RuntimeError{Code: flow.ErrEntryNotFound, Message: "entryNode " + e.flow.EntryNode + " not found"}
	}

	vars := make(map[string]interface{}, len(e.flow.Variables))
	for _, decl := range e.flow.Variables {
		if decl.DefaultValue != nil {
			vars[decl.Name] = decl.DefaultValue
		}
	}

	now := time.Now().UTC()
	sess := &flow.Session{
		ID:            uuid.New().String(),
		FlowID:        e.flow.ID,
		CurrentNodeID: e.flow.EntryNode,
		Variables:     vars,
		Status:        flow.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	unlock := e.lock(sess.ID)
	defer unlock()

	if err := e.opts.Store.Set(ctx, sess); err != nil {
		return nil, err
	}
	e.emit(events.KindSessionStarted, sess, "", nil)

	e.runLoop(ctx, sess, nil)
	return sess, nil
}

// ProcessInput resumes a waiting session with user input and drives the
// run loop (flow.md §4.6). It rejects sessions not in waiting_input
// status without mutating them (P4).
func (e *Engine) ProcessInput(ctx context.Context, sessionID, input string) (*flow.Session, error) {
	unlock := e.lock(sessionID)
	defer unlock()

	sess, err := e.opts.Store.Get(ctx, sessionID)
	if err != nil {
		if err == session.ErrNotFound {
			return nil, &flow.RuntimeError{Code: flow.ErrSessionNotFound, Message: "session " + sessionID + " not found"}
		}
		return nil, err
	}
	if sess.Status != flow.StatusWaitingInput {
		return nil, &flow.RuntimeError{Code: flow.ErrSessionNotWaiting, Message: "session " + sessionID + " is not waiting for input"}
	}

	e.emit(events.KindInputReceived, sess, sess.CurrentNodeID, map[string]interface{}{"input": input})
	sess.Status = flow.StatusActive

	e.runLoop(ctx, sess, &input)
	return sess, nil
}

// GetSession returns the current persisted state of a session.
func (e *Engine) GetSession(ctx context.Context, sessionID string) (*flow.Session, error) {
	sess, err := e.opts.Store.Get(ctx, sessionID)
	if err == session.ErrNotFound {
		return nil, &flow.RuntimeError{Code: flow.ErrSessionNotFound, Message: "session " + sessionID + " not found"}
	}
	return sess, err
}

// EndSession forcibly terminates a session that is not already in a
// terminal status, marking it abandoned. This is the only way to stop a
// session that would otherwise remain waiting_input forever.
func (e *Engine) EndSession(ctx context.Context, sessionID string) error {
	unlock := e.lock(sessionID)
	defer unlock()

	sess, err := e.opts.Store.Get(ctx, sessionID)
	if err != nil {
		if err == session.ErrNotFound {
			return &flow.RuntimeError{Code: flow.ErrSessionNotFound, Message: "session " + sessionID + " not found"}
		}
		return err
	}
	if sess.Status.Terminal() {
		return nil
	}
	sess.Status = flow.StatusAbandoned
	sess.UpdatedAt = time.Now().UTC()
	return e.opts.Store.Set(ctx, sess)
}

// ListActiveSessions returns the ids of every session the store holds
// (a diagnostic surface beyond flow.md's literal public interface; see
// SPEC_FULL.md).
func (e *Engine) ListActiveSessions(ctx context.Context) ([]string, error) {
	return e.opts.Store.List(ctx)
}
