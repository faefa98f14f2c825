package executor

import (
	"context"
	"testing"

	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/handler"
)

func TestExecuteDispatchesByKind(t *testing.T) {
	node := &flow.Node{ID: "m1", Kind: flow.KindMessage, Config: map[string]interface{}{"message": "hi"}}
	sess := &flow.Session{Variables: map[string]interface{}{}}

	result := Execute(handler.Request{Ctx: context.Background(), Node: node, Session: sess})
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.Message != "hi" {
		t.Errorf("Message = %q", result.Message)
	}
}

func TestExecuteUnknownKind(t *testing.T) {
	node := &flow.Node{ID: "n1", Kind: flow.NodeKind("bogus")}
	sess := &flow.Session{Variables: map[string]interface{}{}}

	result := Execute(handler.Request{Ctx: context.Background(), Node: node, Session: sess})
	if result.Err == nil || result.Err.Code != flow.ErrUnknownNodeType {
		t.Fatalf("expected UNKNOWN_NODE_TYPE, got %+v", result.Err)
	}
}

func TestExecuteRecoversPanic(t *testing.T) {
	// A Message handler given a nil Session dereferences it while
	// interpolating, so the handler panics; this exercises the executor's
	// own recover path and asserts the panic comes back as
	// EXECUTION_ERROR instead of escaping Execute.
	node := &flow.Node{ID: "m1", Kind: flow.KindMessage, Config: map[string]interface{}{"message": "hi"}}

	result := Execute(handler.Request{Ctx: context.Background(), Node: node, Session: nil})
	if result.Err == nil || result.Err.Code != flow.ErrExecutionError {
		t.Errorf("expected EXECUTION_ERROR from a recovered panic, got %+v", result.Err)
	}
}
