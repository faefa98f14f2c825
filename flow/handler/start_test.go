package handler

import (
	"context"
	"testing"

	"github.com/ivaflow/flowcore/flow"
)

func TestStartEmitsWelcomeAndInitVariables(t *testing.T) {
	node := &flow.Node{
		ID:   "start",
		Kind: flow.KindStart,
		Config: map[string]interface{}{
			"welcomeMessage": "Hi {{name}}!",
			"initVariables":  map[string]interface{}{"name": "Ava"},
		},
	}
	sess := &flow.Session{Variables: map[string]interface{}{}}

	result := Start(Request{Ctx: context.Background(), Node: node, Session: sess})

	if result.Message != "Hi {{name}}!" {
		t.Errorf("Message = %q, want welcome template unresolved against pre-merge variables", result.Message)
	}
	if result.Variables["name"] != "Ava" {
		t.Errorf("Variables[name] = %v, want Ava", result.Variables["name"])
	}
	if result.WaitForInput {
		t.Error("Start must never wait for input")
	}
}

func TestStartNoWelcomeMessage(t *testing.T) {
	node := &flow.Node{ID: "start", Kind: flow.KindStart, Config: map[string]interface{}{}}
	sess := &flow.Session{Variables: map[string]interface{}{}}

	result := Start(Request{Ctx: context.Background(), Node: node, Session: sess})
	if result.Message != "" {
		t.Errorf("Message = %q, want empty", result.Message)
	}
}
