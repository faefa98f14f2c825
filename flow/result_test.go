package flow

import "testing"

func TestRuntimeErrorError(t *testing.T) {
	err := &RuntimeError{Code: ErrToolCallFailed, Message: "timed out"}
	want := "TOOL_CALL_FAILED: timed out"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestRuntimeErrorErrorNilReceiver(t *testing.T) {
	var err *RuntimeError
	if got := err.Error(); got != "" {
		t.Errorf("Error() on nil receiver = %q, want empty string", got)
	}
}

func TestGoto(t *testing.T) {
	p := Goto("n2")
	if p == nil || *p != "n2" {
		t.Fatalf("Goto(n2) = %v, want pointer to n2", p)
	}
}
