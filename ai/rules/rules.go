// Package rules is a deterministic service.AIService that classifies by
// keyword overlap instead of a model call. An LLM-Router node calls it
// whenever it is the engine's AIService, whatever the node's
// model.provider says (flow.md §4.4.4 uses provider "rules" only for
// fallback-on-failure); flowrun always wires it as its AIService.
package rules

import (
	"context"
	"regexp"
	"strings"

	"github.com/ivaflow/flowcore/flow/service"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// IntentRule maps one declared intent to the keywords that should select
// it. Matching is case-insensitive whole-word lookup against the tokenized
// user message (a multi-word keyword never matches, since the message is
// split into single words); Keywords declared earlier do not outrank later
// ones — all matches are scored and the highest-scoring intent wins.
type IntentRule struct {
	Intent   string
	Keywords []string
}

// Service is a keyword-overlap classifier. It never calls out to a model
// and never errs on Classify; an unmatched message returns the
// zero-confidence, empty-intent result, which callers (LLM-Router) already
// treat as "no match".
type Service struct {
	// Rules supplies the keyword sets for every intent this service can
	// recognise, independent of the candidate intents passed in at
	// Classify time. Only rules whose Intent also appears in the call's
	// intents slice are eligible.
	Rules []IntentRule
}

var _ service.AIService = (*Service)(nil)

// New builds a Service from the given rules.
func New(rules []IntentRule) *Service {
	return &Service{Rules: rules}
}

// Classify scores each candidate intent by how many of its configured
// keywords appear as whole words in userMessage, case-insensitively, and
// returns the best match. Confidence is the matched-keyword fraction of
// that intent's keyword list, capped at 1.0. Ties keep the rule declared
// first in s.Rules. model and systemPrompt are accepted for interface
// compatibility but not consulted — this adapter has no model to steer.
func (s *Service) Classify(_ context.Context, _ string, userMessage string, intents []service.IntentOption, _ *service.Model) (service.ClassifyResult, error) {
	words := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(strings.ToLower(userMessage), -1) {
		words[w] = struct{}{}
	}

	eligible := make(map[string]bool, len(intents))
	for _, opt := range intents {
		eligible[opt.Name] = true
	}

	var best string
	var bestScore float64
	for _, rule := range s.Rules {
		if !eligible[rule.Intent] || len(rule.Keywords) == 0 {
			continue
		}
		matched := 0
		for _, kw := range rule.Keywords {
			if _, ok := words[strings.ToLower(kw)]; ok {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		score := float64(matched) / float64(len(rule.Keywords))
		if score > bestScore {
			best = rule.Intent
			bestScore = score
		}
	}

	if best == "" {
		return service.ClassifyResult{}, nil
	}
	if bestScore > 1.0 {
		bestScore = 1.0
	}
	return service.ClassifyResult{Intent: best, Confidence: bestScore, Reasoning: "keyword match"}, nil
}
