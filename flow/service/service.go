// Package service defines the three pluggable collaborator contracts a node
// handler may invoke: classification (AI), retrieval (Knowledge), and
// side-effecting calls (Tool). The engine depends only on these interfaces;
// concrete adapters live in sibling repo packages (ai/rules,
// knowledge/keyword, tools/httptool) or are supplied by the embedding
// application.
package service

import "context"

// IntentOption is one candidate intent offered to AIService.Classify.
type IntentOption struct {
	Name        string
	Description string
}

// ClassifyResult is the outcome of an AIService.Classify call.
type ClassifyResult struct {
	// Intent MUST be one of the IntentOption names on success. It MAY be
	// an arbitrary string when the underlying model misbehaves — callers
	// treat an unrecognised name as no-match rather than an error.
	Intent string
	// Confidence is in [0, 1].
	Confidence float64
	// Reasoning is an optional free-text explanation, surfaced in logs.
	Reasoning string
}

// AIService classifies free-text user input against a closed set of named
// intents (flow.md §4.3). Generate is intentionally not part of this
// contract: no handler in this core invokes free-form generation.
type AIService interface {
	Classify(ctx context.Context, systemPrompt, userMessage string, intents []IntentOption, model *Model) (ClassifyResult, error)
}

// Model selects a provider/model/sampling configuration for a Classify
// call. A nil *Model means "use the service's default".
type Model struct {
	Provider    string
	Name        string
	Temperature *float64
	MaxTokens   *int
}

// SearchResult is one retrieved passage returned by KnowledgeService.Search.
type SearchResult struct {
	Content string
	Source  string
	Score   float64
}

// SearchOutcome is the outcome of a KnowledgeService.Search call.
type SearchOutcome struct {
	Results    []SearchResult
	Answer     string
	Confidence float64
	Grounded   bool
}

// KnowledgeService answers a query against a named knowledge base
// (flow.md §4.3).
type KnowledgeService interface {
	Search(ctx context.Context, knowledgeBaseID, query string, topK int, minScore float64) (SearchOutcome, error)
}

// ExecuteResult is the outcome of a ToolService.Execute call.
type ExecuteResult struct {
	Success bool
	Output  interface{}
	Error   string
}

// ToolService invokes a named, pre-registered tool with interpolated
// inputs (flow.md §4.3). The core never retries a tool call itself except
// through the calling node's own retry configuration.
type ToolService interface {
	Execute(ctx context.Context, toolID string, inputs map[string]interface{}, timeout *int) (ExecuteResult, error)
}
