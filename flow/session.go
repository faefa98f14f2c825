package flow

import "time"

// SessionStatus is the lifecycle state of a session's execution (spec.md §3).
type SessionStatus string

const (
	StatusActive        SessionStatus = "active"
	StatusWaitingInput   SessionStatus = "waiting_input"
	StatusCompleted      SessionStatus = "completed"
	StatusEscalated      SessionStatus = "escalated"
	StatusError          SessionStatus = "error"
	StatusTimeout        SessionStatus = "timeout"
	// StatusAbandoned is reached via an End node configured with
	// status="abandoned" (the node-level End status domain is a superset
	// of the session-level status domain) or via Engine.EndSession.
	StatusAbandoned SessionStatus = "abandoned"
)

// Terminal reports whether status is one of the statuses from which no
// further execution may occur for a session (I5).
func (s SessionStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusEscalated, StatusError, StatusAbandoned:
		return true
	default:
		return false
	}
}

// ExecutionStep is one append-only entry in a session's audit history.
type ExecutionStep struct {
	StepID    string         `json:"stepId"`
	NodeID    string         `json:"nodeId"`
	NodeKind  NodeKind       `json:"nodeKind"`
	Timestamp time.Time      `json:"timestamp"`
	Input     *string        `json:"input,omitempty"`
	Output    interface{}    `json:"output,omitempty"`
	// DurationMS is the handler invocation's wall-clock duration in
	// integer milliseconds (spec.md §6).
	DurationMS int64          `json:"duration"`
	Error      *RuntimeError  `json:"error,omitempty"`
}

// Session is the mutable, durable execution state of one user's progress
// through a Flow (spec.md §3). All state the next turn needs lives here:
// Variables, CurrentNodeID, and a Status of waiting_input is what makes
// resumption trivially durable (spec.md §9).
type Session struct {
	ID            string                 `json:"id"`
	FlowID        string                 `json:"flowId"`
	CurrentNodeID string                 `json:"currentNodeId"`
	Variables     map[string]interface{} `json:"variables"`
	History       []ExecutionStep        `json:"history"`
	Status        SessionStatus          `json:"status"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// Clone returns a deep-enough copy of the session for safe handoff across
// the session-store boundary (full-value replacement per I4/§4.2).
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Variables = make(map[string]interface{}, len(s.Variables))
	for k, v := range s.Variables {
		out.Variables[k] = v
	}
	out.History = make([]ExecutionStep, len(s.History))
	copy(out.History, s.History)
	if s.Metadata != nil {
		out.Metadata = make(map[string]interface{}, len(s.Metadata))
		for k, v := range s.Metadata {
			out.Metadata[k] = v
		}
	}
	return &out
}

// ApplyVariables merges a NodeResult.Variables patch into Session.Variables
// via shallow overwrite keyed by name (I4, P5).
func (s *Session) ApplyVariables(patch map[string]interface{}) {
	if len(patch) == 0 {
		return
	}
	if s.Variables == nil {
		s.Variables = make(map[string]interface{}, len(patch))
	}
	for k, v := range patch {
		s.Variables[k] = v
	}
}
