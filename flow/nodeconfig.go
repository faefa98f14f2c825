package flow

// Per-kind Config structs, one per spec.md §3 node variant. These are never
// stored directly on Node (Config there is the raw decoded JSON object);
// obtain one via DecodeConfig[T](node.Config).

// StartConfig is the §4.4.1 Start node configuration.
type StartConfig struct {
	WelcomeMessage *string                `json:"welcomeMessage,omitempty"`
	InitVariables  map[string]interface{} `json:"initVariables,omitempty"`
}

// MessageConfig is the §4.4.2 Message node configuration.
type MessageConfig struct {
	Message string `json:"message"`
	// DelayMS is the non-negative delay, in milliseconds, to suspend before
	// emitting Message.
	DelayMS int `json:"delay,omitempty"`
}

// ValidationConfig describes how Collect-Input validates a resumed input.
type ValidationConfig struct {
	Type         string   `json:"type"`
	MinLength    *int     `json:"minLength,omitempty"`
	MaxLength    *int     `json:"maxLength,omitempty"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	Pattern      string   `json:"pattern,omitempty"`
	ErrorMessage string   `json:"errorMessage,omitempty"`
}

// RetryConfig bounds Collect-Input retry attempts on validation failure.
type RetryConfig struct {
	MaxAttempts  int    `json:"maxAttempts"`
	RetryMessage string `json:"retryMessage,omitempty"`
}

// CollectTimeoutConfig is the caller-enforced Collect-Input timeout policy
// contract (spec.md §5): the runtime never polls it itself.
type CollectTimeoutConfig struct {
	Seconds       int     `json:"seconds"`
	TimeoutNodeID *string `json:"timeoutNodeId,omitempty"`
}

// CollectInputConfig is the §4.4.3 Collect-Input node configuration.
type CollectInputConfig struct {
	Prompt       *string                `json:"prompt,omitempty"`
	VariableName string                 `json:"variableName"`
	Validation   *ValidationConfig      `json:"validation,omitempty"`
	Retry        *RetryConfig           `json:"retry,omitempty"`
	Timeout      *CollectTimeoutConfig  `json:"timeout,omitempty"`
}

// IntentDecl is one LLM-Router intent: a name/description/examples triple
// mapped to a target node.
type IntentDecl struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Examples    []string `json:"examples,omitempty"`
	TargetNodeID string  `json:"targetNodeId"`
}

// ModelConfig selects the AI provider/model/sampling params for a
// classification call. Provider "rules" makes LLM-Router fall back to the
// first declared intent when Classify fails and no fallbackIntent is set
// (flow.md §4.4.4); it does not select which AIService is called — that is
// always the one the engine was built with.
type ModelConfig struct {
	Provider    string   `json:"provider,omitempty"`
	Model       *string  `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"maxTokens,omitempty"`
}

// LLMRouterConfig is the §4.4.4 LLM-Router node configuration.
type LLMRouterConfig struct {
	SystemPrompt        string       `json:"systemPrompt"`
	Intents             []IntentDecl `json:"intents"`
	Model               *ModelConfig `json:"model,omitempty"`
	FallbackIntent      *string      `json:"fallbackIntent,omitempty"`
	ConfidenceThreshold *float64     `json:"confidenceThreshold,omitempty"`
}

// KnowledgeSearchConfig is the §4.4.5 Knowledge-Search node configuration.
type KnowledgeSearchConfig struct {
	KnowledgeBaseID string   `json:"knowledgeBaseId"`
	Query           string   `json:"query"`
	TopK            *int     `json:"topK,omitempty"`
	MinScore        *float64 `json:"minScore,omitempty"`
	ResultVariable  string   `json:"resultVariable"`
	GroundedOnly    bool     `json:"groundedOnly,omitempty"`
}

// ToolRetryConfig reserves the under-specified Tool-Call "retry" onError
// action: one-shot retry honouring BackoffMS (spec.md §9).
type ToolRetryConfig struct {
	MaxAttempts int `json:"maxAttempts,omitempty"`
	BackoffMS   int `json:"backoffMs,omitempty"`
}

// ToolErrorConfig is a Tool-Call's onError policy.
type ToolErrorConfig struct {
	Action       string  `json:"action"`
	TargetNodeID *string `json:"targetNodeId,omitempty"`
}

// ToolCallConfig is the §4.4.6 Tool-Call node configuration.
type ToolCallConfig struct {
	ToolID         string                 `json:"toolId"`
	Inputs         map[string]interface{} `json:"inputs,omitempty"`
	ResultVariable string                 `json:"resultVariable"`
	TimeoutSeconds *int                   `json:"timeout,omitempty"`
	Retry          *ToolRetryConfig       `json:"retry,omitempty"`
	OnError        *ToolErrorConfig       `json:"onError,omitempty"`
}

// ConditionRule is one ordered branch of a Condition node.
type ConditionRule struct {
	ID           string      `json:"id"`
	Variable     string      `json:"variable"`
	Operator     string      `json:"operator"`
	Value        interface{} `json:"value"`
	TargetNodeID string      `json:"targetNodeId"`
}

// ConditionConfig is the §4.4.7 Condition node configuration.
type ConditionConfig struct {
	Conditions  []ConditionRule `json:"conditions"`
	DefaultNodeID *string       `json:"defaultNodeId,omitempty"`
}

// EscalateConfig is the §4.4.8 Escalate node configuration.
type EscalateConfig struct {
	Reason         string                 `json:"reason"`
	Queue          *string                `json:"queue,omitempty"`
	Priority       *string                `json:"priority,omitempty"`
	Context        map[string]interface{} `json:"context,omitempty"`
	HandoffMessage *string                `json:"handoffMessage,omitempty"`
}

// EndStatus enumerates the terminal statuses an End node may request.
type EndStatus string

const (
	EndCompleted EndStatus = "completed"
	EndEscalated EndStatus = "escalated"
	EndAbandoned EndStatus = "abandoned"
	EndError     EndStatus = "error"
)

// EndConfig is the §4.4.9 End node configuration.
type EndConfig struct {
	Message *string   `json:"message,omitempty"`
	Status  EndStatus `json:"status"`
	Summary *string   `json:"summary,omitempty"`
}
