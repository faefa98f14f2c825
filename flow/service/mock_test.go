package service

import (
	"context"
	"errors"
	"testing"
)

func TestMockAIServiceSequenceAndRepeat(t *testing.T) {
	m := &MockAIService{Results: []ClassifyResult{
		{Intent: "billing", Confidence: 0.9},
		{Intent: "support", Confidence: 0.8},
	}}
	ctx := context.Background()

	first, err := m.Classify(ctx, "sys", "msg1", nil, nil)
	if err != nil || first.Intent != "billing" {
		t.Fatalf("first call = %+v, %v", first, err)
	}
	second, _ := m.Classify(ctx, "sys", "msg2", nil, nil)
	if second.Intent != "support" {
		t.Fatalf("second call = %+v", second)
	}
	third, _ := m.Classify(ctx, "sys", "msg3", nil, nil)
	if third.Intent != "support" {
		t.Fatalf("expected repeat of last result, got %+v", third)
	}
	if len(m.Calls) != 3 {
		t.Fatalf("expected 3 recorded calls, got %d", len(m.Calls))
	}
}

func TestMockAIServiceErr(t *testing.T) {
	wantErr := errors.New("boom")
	m := &MockAIService{Err: wantErr}
	_, err := m.Classify(context.Background(), "sys", "msg", nil, nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestMockToolServiceRecordsCalls(t *testing.T) {
	m := &MockToolService{Results: []ExecuteResult{{Success: true, Output: "ok"}}}
	res, err := m.Execute(context.Background(), "t1", map[string]interface{}{"x": 1}, nil)
	if err != nil || !res.Success {
		t.Fatalf("Execute = %+v, %v", res, err)
	}
	if len(m.Calls) != 1 || m.Calls[0].ToolID != "t1" {
		t.Fatalf("unexpected call history: %+v", m.Calls)
	}
}
