package handler

import (
	"context"
	"testing"

	"github.com/ivaflow/flowcore/flow"
)

func TestEscalateTerminatesWithEscalatedStatus(t *testing.T) {
	node := &flow.Node{Kind: flow.KindEscalate, Config: map[string]interface{}{
		"reason":         "cannot verify identity",
		"queue":          "support",
		"handoffMessage": "Connecting you to {{agentName}}.",
		"context":        map[string]interface{}{"accountId": "{{account_id}}"},
	}}
	sess := &flow.Session{Variables: map[string]interface{}{"agentName": "Sam", "account_id": "acct-1"}}

	result := Escalate(Request{Ctx: context.Background(), Node: node, Session: sess})
	if !result.End || result.TerminalStatus != flow.StatusEscalated {
		t.Fatalf("expected escalated termination, got End=%v Status=%v", result.End, result.TerminalStatus)
	}
	if result.Message != "Connecting you to Sam." {
		t.Errorf("Message = %q", result.Message)
	}
	out := result.Output.(map[string]interface{})
	if out["reason"] != "cannot verify identity" || out["queue"] != "support" {
		t.Errorf("Output = %+v", out)
	}
	ctx := out["context"].(map[string]interface{})
	if ctx["accountId"] != "acct-1" {
		t.Errorf("context.accountId = %v", ctx["accountId"])
	}
}
