// Package httptool is a reference service.ToolService backed by outbound
// HTTP calls. Each flow.ToolDecl names a fixed method/URL/header template;
// a tool_call node's interpolated inputs supply the request body and any
// per-call header overrides. It is not part of the runtime core — an
// embedding application may supply any ToolService it likes.
package httptool

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/service"
)

// Service executes tool_call nodes over HTTP, one flow.ToolDecl per tool.
type Service struct {
	client *http.Client
	tools  map[string]flow.ToolDecl
}

// New builds a Service from the flow's declared tools. decls are indexed by
// ID; a toolId absent from decls fails at Execute time rather than at
// construction, mirroring the teacher's lazy tool lookup.
func New(decls []flow.ToolDecl) *Service {
	tools := make(map[string]flow.ToolDecl, len(decls))
	for _, d := range decls {
		tools[d.ID] = d
	}
	return &Service{
		client: &http.Client{},
		tools:  tools,
	}
}

var _ service.ToolService = (*Service)(nil)

// Execute issues the HTTP request configured by toolId, merged with the
// caller's interpolated inputs. Recognised decl.Config / inputs keys:
// "url" (required, decl default overridable by inputs), "method" (defaults
// GET), "headers" (map[string]interface{}, decl and inputs merged, inputs
// wins on conflict), "body" (string, inputs win over decl; sent with
// whatever method is configured). timeout, in milliseconds, when
// non-nil, bounds the request via a derived context.
func (s *Service) Execute(ctx context.Context, toolID string, inputs map[string]interface{}, timeout *int) (service.ExecuteResult, error) {
	decl, ok := s.tools[toolID]
	if !ok {
		return service.ExecuteResult{}, fmt.Errorf("httptool: unknown tool %q", toolID)
	}

	urlStr := stringField(decl.Config, "url")
	if v := stringField(inputs, "url"); v != "" {
		urlStr = v
	}
	if urlStr == "" {
		return service.ExecuteResult{}, fmt.Errorf("httptool: tool %q has no url configured", toolID)
	}

	method := strings.ToUpper(stringField(decl.Config, "method"))
	if v := stringField(inputs, "method"); v != "" {
		method = strings.ToUpper(v)
	}
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if bodyStr := stringField(inputs, "body"); bodyStr != "" {
		body = bytes.NewBufferString(bodyStr)
	} else if bodyStr := stringField(decl.Config, "body"); bodyStr != "" {
		body = bytes.NewBufferString(bodyStr)
	}

	if timeout != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(*timeout)*time.Millisecond)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, body)
	if err != nil {
		return service.ExecuteResult{}, fmt.Errorf("httptool: building request: %w", err)
	}
	applyHeaders(req, mapField(decl.Config, "headers"))
	applyHeaders(req, mapField(inputs, "headers"))

	resp, err := s.client.Do(req)
	if err != nil {
		return service.ExecuteResult{Success: false, Error: err.Error()}, nil
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return service.ExecuteResult{Success: false, Error: err.Error()}, nil
	}

	respHeaders := make(map[string]interface{}, len(resp.Header))
	for key, values := range resp.Header {
		if len(values) == 1 {
			respHeaders[key] = values[0]
		} else {
			respHeaders[key] = values
		}
	}

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	out := map[string]interface{}{
		"status_code": resp.StatusCode,
		"headers":     respHeaders,
		"body":        string(respBody),
	}
	result := service.ExecuteResult{Success: success, Output: out}
	if !success {
		result.Error = fmt.Sprintf("http status %d", resp.StatusCode)
	}
	return result, nil
}

func applyHeaders(req *http.Request, headers map[string]interface{}) {
	for key, value := range headers {
		if s, ok := value.(string); ok {
			req.Header.Set(key, s)
		}
	}
}

func stringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func mapField(m map[string]interface{}, key string) map[string]interface{} {
	if m == nil {
		return nil
	}
	sub, _ := m[key].(map[string]interface{})
	return sub
}
