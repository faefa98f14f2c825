package service

import (
	"context"
	"sync"
)

// MockAIService is a scripted AIService for tests: each call consumes the
// next entry in Results (the last entry repeats once exhausted), or
// returns Err if configured.
type MockAIService struct {
	Results []ClassifyResult
	Err     error

	Calls []ClassifyCall

	mu    sync.Mutex
	index int
}

// ClassifyCall records one MockAIService.Classify invocation.
type ClassifyCall struct {
	SystemPrompt string
	UserMessage  string
	Intents      []IntentOption
	Model        *Model
}

func (m *MockAIService) Classify(ctx context.Context, systemPrompt, userMessage string, intents []IntentOption, model *Model) (ClassifyResult, error) {
	if err := ctx.Err(); err != nil {
		return ClassifyResult{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, ClassifyCall{SystemPrompt: systemPrompt, UserMessage: userMessage, Intents: intents, Model: model})

	if m.Err != nil {
		return ClassifyResult{}, m.Err
	}
	if len(m.Results) == 0 {
		return ClassifyResult{}, nil
	}

	idx := m.index
	if idx >= len(m.Results) {
		idx = len(m.Results) - 1
	} else {
		m.index++
	}
	return m.Results[idx], nil
}

// MockKnowledgeService is a scripted KnowledgeService for tests.
type MockKnowledgeService struct {
	Results []SearchOutcome
	Err     error

	Calls []SearchCall

	mu    sync.Mutex
	index int
}

// SearchCall records one MockKnowledgeService.Search invocation.
type SearchCall struct {
	KnowledgeBaseID string
	Query           string
	TopK            int
	MinScore        float64
}

func (m *MockKnowledgeService) Search(ctx context.Context, knowledgeBaseID, query string, topK int, minScore float64) (SearchOutcome, error) {
	if err := ctx.Err(); err != nil {
		return SearchOutcome{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, SearchCall{KnowledgeBaseID: knowledgeBaseID, Query: query, TopK: topK, MinScore: minScore})

	if m.Err != nil {
		return SearchOutcome{}, m.Err
	}
	if len(m.Results) == 0 {
		return SearchOutcome{}, nil
	}

	idx := m.index
	if idx >= len(m.Results) {
		idx = len(m.Results) - 1
	} else {
		m.index++
	}
	return m.Results[idx], nil
}

// MockToolService is a scripted ToolService for tests.
type MockToolService struct {
	Results []ExecuteResult
	Err     error

	Calls []ExecuteCall

	mu    sync.Mutex
	index int
}

// ExecuteCall records one MockToolService.Execute invocation.
type ExecuteCall struct {
	ToolID  string
	Inputs  map[string]interface{}
	Timeout *int
}

func (m *MockToolService) Execute(ctx context.Context, toolID string, inputs map[string]interface{}, timeout *int) (ExecuteResult, error) {
	if err := ctx.Err(); err != nil {
		return ExecuteResult{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, ExecuteCall{ToolID: toolID, Inputs: inputs, Timeout: timeout})

	if m.Err != nil {
		return ExecuteResult{}, m.Err
	}
	if len(m.Results) == 0 {
		return ExecuteResult{}, nil
	}

	idx := m.index
	if idx >= len(m.Results) {
		idx = len(m.Results) - 1
	} else {
		m.index++
	}
	return m.Results[idx], nil
}
