package handler

import (
	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/service"
)

// LLMRouter implements flow.md §4.4.4: classify the resolved user message
// against the node's intents and route to the matching target, applying
// the confidence-threshold and fallback-intent rules.
//
// The user message is taken from, in order: the explicit input of this
// invocation, the string variable user_message, the string variable
// customer_message, and otherwise the empty string (see resolveUserMessage).
func LLMRouter(req Request) flow.NodeResult {
	cfg, err := flow.DecodeConfig[flow.LLMRouterConfig](req.Node.Config)
	if err != nil {
		return fatal(flow.ErrExecutionError, "decode llm_router config: "+err.Error())
	}

	userMessage := resolveUserMessage(req)

	intents := make([]service.IntentOption, len(cfg.Intents))
	for i, in := range cfg.Intents {
		intents[i] = service.IntentOption{Name: in.Name, Description: in.Description}
	}

	var model *service.Model
	if cfg.Model != nil {
		model = &service.Model{
			Provider:    cfg.Model.Provider,
			Name:        derefString(cfg.Model.Model),
			Temperature: cfg.Model.Temperature,
			MaxTokens:   cfg.Model.MaxTokens,
		}
	}

	threshold := 0.5
	if cfg.ConfidenceThreshold != nil {
		threshold = *cfg.ConfidenceThreshold
	}

	if req.Services.AI == nil {
		return fatal(flow.ErrExecutionError, "llm_router: no AIService configured")
	}

	classified, classifyErr := req.Services.AI.Classify(req.Ctx, cfg.SystemPrompt, userMessage, intents, model)
	if classifyErr != nil {
		fallback := effectiveFallback(cfg)
		if fallback == nil {
			return fatal(flow.ErrExecutionError, classifyErr.Error())
		}
		target, ok := intentTarget(cfg.Intents, *fallback)
		if !ok {
			return fatal(flow.ErrIntentNotFound, "fallbackIntent "+*fallback+" not found among intents")
		}
		return flow.NodeResult{
			Variables:  map[string]interface{}{"last_intent": *fallback, "last_confidence": 0.0},
			NextNodeID: flow.Goto(target),
			Output:     map[string]interface{}{"intent": *fallback, "fellback": true, "classifyError": classifyErr.Error()},
		}
	}

	if classified.Confidence < threshold && cfg.FallbackIntent != nil {
		return routeToFallback(cfg, classified, *cfg.FallbackIntent)
	}

	if target, ok := intentTarget(cfg.Intents, classified.Intent); ok {
		return flow.NodeResult{
			Variables:  map[string]interface{}{"last_intent": classified.Intent, "last_confidence": classified.Confidence},
			NextNodeID: flow.Goto(target),
		}
	}

	if cfg.FallbackIntent != nil {
		return routeToFallback(cfg, classified, *cfg.FallbackIntent)
	}
	return fatal(flow.ErrIntentNotFound, "intent "+classified.Intent+" not found among configured intents")
}

func routeToFallback(cfg *flow.LLMRouterConfig, classified service.ClassifyResult, fallback string) flow.NodeResult {
	target, ok := intentTarget(cfg.Intents, fallback)
	if !ok {
		return fatal(flow.ErrIntentNotFound, "fallbackIntent "+fallback+" not found among intents")
	}
	return flow.NodeResult{
		Variables:  map[string]interface{}{"last_intent": fallback, "last_confidence": classified.Confidence},
		NextNodeID: flow.Goto(target),
		Output: map[string]interface{}{
			"intent":         fallback,
			"originalIntent": classified.Intent,
			"confidence":     classified.Confidence,
			"fellback":       true,
		},
	}
}

// effectiveFallback resolves the fallback intent name to use when
// AI.Classify itself fails: the node's configured FallbackIntent, or, for
// the deterministic "rules" provider with no explicit fallback, the first
// declared intent (there being no other target to route a hard failure
// to).
func effectiveFallback(cfg *flow.LLMRouterConfig) *string {
	if cfg.FallbackIntent != nil {
		return cfg.FallbackIntent
	}
	if cfg.Model != nil && cfg.Model.Provider == "rules" && len(cfg.Intents) > 0 {
		name := cfg.Intents[0].Name
		return &name
	}
	return nil
}

func intentTarget(intents []flow.IntentDecl, name string) (string, bool) {
	for _, in := range intents {
		if in.Name == name {
			return in.TargetNodeID, true
		}
	}
	return "", false
}

func resolveUserMessage(req Request) string {
	if req.Input != nil {
		return *req.Input
	}
	if v, ok := req.Session.Variables["user_message"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	if v, ok := req.Session.Variables["customer_message"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
