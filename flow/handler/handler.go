// Package handler implements one function per flow.NodeKind (flow.md
// §4.4). Handlers are pure with respect to process state outside the
// passed Request: they read the node config and session, optionally call
// a service, and return a flow.NodeResult describing what the engine
// should do next. They never mutate Session directly and never touch the
// event bus or session store — those are the engine's job.
package handler

import (
	"context"

	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/service"
)

// Services bundles the three pluggable collaborators a handler may need.
// Any of the three may be nil for a flow that never reaches a node
// requiring it.
type Services struct {
	AI        service.AIService
	Knowledge service.KnowledgeService
	Tool      service.ToolService
}

// Request is everything a handler needs to produce a NodeResult.
type Request struct {
	Ctx context.Context
	Node *flow.Node
	Session *flow.Session

	// Input is the value supplied via processInput for the handler
	// invocation that resumes a waiting session; nil when the node is
	// being entered fresh (flow.md §4.4.3's two-phase Collect-Input
	// split, and the first-handler-only delivery rule of §4.6).
	Input *string

	Services Services

	// DefaultToolTimeoutMS is used by Tool-Call when the node omits an
	// explicit timeout (flow.md §6 DEFAULT_TOOL_TIMEOUT_MS).
	DefaultToolTimeoutMS int
}

// Func is the signature every node-kind handler implements.
type Func func(req Request) flow.NodeResult

func fatal(code, message string) flow.NodeResult {
	return flow.NodeResult{Err: &flow.RuntimeError{Code: code, Message: message}}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
