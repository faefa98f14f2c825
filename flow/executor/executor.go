// Package executor dispatches a node to its kind-specific handler and
// converts panics or unknown kinds into structured errors (flow.md §4.5).
package executor

import (
	"fmt"

	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/handler"
)

var dispatch = map[flow.NodeKind]handler.Func{
	flow.KindStart:           handler.Start,
	flow.KindMessage:         handler.Message,
	flow.KindCollectInput:    handler.CollectInput,
	flow.KindLLMRouter:       handler.LLMRouter,
	flow.KindKnowledgeSearch: handler.KnowledgeSearch,
	flow.KindToolCall:        handler.ToolCall,
	flow.KindCondition:       handler.Condition,
	flow.KindEscalate:        handler.Escalate,
	flow.KindEnd:             handler.End,
}

// Execute routes req.Node to its handler by Kind. A handler panic is
// recovered and converted to an EXECUTION_ERROR NodeResult; an
// unrecognised kind yields UNKNOWN_NODE_TYPE. Neither condition ever
// propagates as a Go panic or error return to the caller.
func Execute(req handler.Request) (result flow.NodeResult) {
	fn, ok := dispatch[req.Node.Kind]
	if !ok {
		return flow.NodeResult{Err: &flow.RuntimeError{
			Code:    flow.ErrUnknownNodeType,
			Message: fmt.Sprintf("node %q: unknown node kind %q", req.Node.ID, req.Node.Kind),
		}}
	}

	defer func() {
		if r := recover(); r != nil {
			result = flow.NodeResult{Err: &flow.RuntimeError{
				Code:    flow.ErrExecutionError,
				Message: fmt.Sprintf("node %q: %v", req.Node.ID, r),
			}}
		}
	}()

	return fn(req)
}
