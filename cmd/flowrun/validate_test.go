package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivaflow/flowcore/flow"
)

func writeFlowFile(t *testing.T, f *flow.Flow) string {
	t.Helper()
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "flow.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func minimalValidFlow() *flow.Flow {
	return &flow.Flow{
		ID: "f1", EntryNode: "start",
		Nodes: []flow.Node{
			{ID: "start", Kind: flow.KindMessage, Config: map[string]interface{}{"message": "hi"}},
		},
	}
}

func TestValidateCmdAcceptsValidFlow(t *testing.T) {
	path := writeFlowFile(t, minimalValidFlow())

	cmd := newValidateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.Len() == 0 {
		t.Error("expected a success summary on stdout")
	}
}

func TestValidateCmdRejectsMissingEntryNode(t *testing.T) {
	path := writeFlowFile(t, &flow.Flow{ID: "bad"})

	cmd := newValidateCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{path})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestValidateCmdRejectsMissingFile(t *testing.T) {
	cmd := newValidateCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.json")})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected a file-not-found error")
	}
}
