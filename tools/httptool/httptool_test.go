package httptool

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ivaflow/flowcore/flow"
)

func TestServiceExecuteGETSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "success"})
	}))
	defer server.Close()

	svc := New([]flow.ToolDecl{{ID: "ping", Config: map[string]interface{}{"url": server.URL}}})

	result, err := svc.Execute(context.Background(), "ping", nil, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.Success {
		t.Fatalf("Success = false, Output = %+v", result.Output)
	}
	out := result.Output.(map[string]interface{})
	if out["status_code"] != 200 {
		t.Errorf("status_code = %v, want 200", out["status_code"])
	}
}

func TestServiceExecutePOSTWithInputsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["name"] != "ada" {
			t.Errorf("body[name] = %v, want ada", body["name"])
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	svc := New([]flow.ToolDecl{{ID: "create", Config: map[string]interface{}{"url": server.URL, "method": "POST"}}})

	result, err := svc.Execute(context.Background(), "create", map[string]interface{}{"body": `{"name":"ada"}`}, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	out := result.Output.(map[string]interface{})
	if out["status_code"] != 201 {
		t.Errorf("status_code = %v, want 201", out["status_code"])
	}
}

func TestServiceExecuteHeaderMerge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "decl-key" {
			t.Errorf("X-Api-Key = %q, want decl-key", r.Header.Get("X-Api-Key"))
		}
		if r.Header.Get("X-Request-Id") != "call-id" {
			t.Errorf("X-Request-Id = %q, want call-id", r.Header.Get("X-Request-Id"))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := New([]flow.ToolDecl{{ID: "t", Config: map[string]interface{}{
		"url":     server.URL,
		"headers": map[string]interface{}{"X-Api-Key": "decl-key"},
	}}})

	_, err := svc.Execute(context.Background(), "t", map[string]interface{}{
		"headers": map[string]interface{}{"X-Request-Id": "call-id"},
	}, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
}

func TestServiceExecuteServerErrorIsNotSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	svc := New([]flow.ToolDecl{{ID: "t", Config: map[string]interface{}{"url": server.URL}}})

	result, err := svc.Execute(context.Background(), "t", nil, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Success {
		t.Error("Success = true, want false for a 500 response")
	}
	if result.Error == "" {
		t.Error("Error = \"\", want a populated message")
	}
}

func TestServiceExecuteUnknownTool(t *testing.T) {
	svc := New(nil)
	_, err := svc.Execute(context.Background(), "missing", nil, nil)
	if err == nil {
		t.Fatal("expected error for unknown tool id")
	}
}

func TestServiceExecuteTimeoutExceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := New([]flow.ToolDecl{{ID: "slow", Config: map[string]interface{}{"url": server.URL}}})
	timeout := 1

	result, err := svc.Execute(context.Background(), "slow", nil, &timeout)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Success {
		t.Error("Success = true, want false for a timed-out request")
	}
}
