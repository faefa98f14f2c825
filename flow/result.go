package flow

// RuntimeError is the structured error shape surfaced by handlers, the
// executor, and the engine (spec.md §6/§7). Code is an uppercase
// snake-case string from one of the Err* constants below (or a
// handler-defined code, e.g. KNOWLEDGE_SEARCH_FAILED).
type RuntimeError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *RuntimeError) Error() string {
	if e == nil {
		return ""
	}
	return e.Code + ": " + e.Message
}

// Error codes defined by the core (spec.md §6).
const (
	ErrEntryNotFound        = "ENTRY_NOT_FOUND"
	ErrNodeNotFound         = "NODE_NOT_FOUND"
	ErrSessionNotFound      = "SESSION_NOT_FOUND"
	ErrSessionNotWaiting    = "SESSION_NOT_WAITING"
	ErrMaxStepsExceeded     = "MAX_STEPS_EXCEEDED"
	ErrMaxRetriesExceeded   = "MAX_RETRIES_EXCEEDED"
	ErrIntentNotFound       = "INTENT_NOT_FOUND"
	ErrToolCallFailed       = "TOOL_CALL_FAILED"
	ErrToolCallError        = "TOOL_CALL_ERROR"
	ErrUnknownNodeType      = "UNKNOWN_NODE_TYPE"
	ErrExecutionError       = "EXECUTION_ERROR"
)

// NodeResult is the shared return shape of every node handler (spec.md
// §4.4): an (optional) message to surface, opaque log output, a variable
// patch, routing instructions, and flow-control flags.
//
// NextNodeID is nil when the handler has no explicit routing opinion (the
// engine follows edge-based resolution, spec.md §4.6 step 10); a non-nil
// value is an explicit target node id.
type NodeResult struct {
	Message        string
	Output         interface{}
	Variables      map[string]interface{}
	NextNodeID     *string
	WaitForInput   bool
	End            bool
	TerminalStatus SessionStatus
	Retried        bool
	Err            *RuntimeError
}

// Goto returns a pointer suitable for NodeResult.NextNodeID.
func Goto(nodeID string) *string {
	return &nodeID
}
