package handler

import (
	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/interp"
)

// errKnowledgeSearchFailed is a handler-defined error code (result.go's
// RuntimeError documents these as permitted alongside the core §6 codes).
const errKnowledgeSearchFailed = "KNOWLEDGE_SEARCH_FAILED"

// KnowledgeSearch implements flow.md §4.4.5: interpolate the query, call
// KnowledgeService.Search, and store either the raw outcome or a
// canonical "not found" structure in resultVariable.
func KnowledgeSearch(req Request) flow.NodeResult {
	cfg, err := flow.DecodeConfig[flow.KnowledgeSearchConfig](req.Node.Config)
	if err != nil {
		return fatal(flow.ErrExecutionError, "decode knowledge_search config: "+err.Error())
	}

	if req.Services.Knowledge == nil {
		return fatal(flow.ErrExecutionError, "knowledge_search: no KnowledgeService configured")
	}

	query := interp.Interpolate(cfg.Query, req.Session.Variables)
	topK := 3
	if cfg.TopK != nil {
		topK = *cfg.TopK
	}
	minScore := 0.5
	if cfg.MinScore != nil {
		minScore = *cfg.MinScore
	}

	outcome, searchErr := req.Services.Knowledge.Search(req.Ctx, cfg.KnowledgeBaseID, query, topK, minScore)
	if searchErr != nil {
		return fatal(errKnowledgeSearchFailed, searchErr.Error())
	}

	var stored map[string]interface{}
	if cfg.GroundedOnly && !outcome.Grounded {
		stored = map[string]interface{}{
			"answer":     "",
			"sources":    []interface{}{},
			"confidence": 0.0,
			"grounded":   false,
		}
	} else {
		sources := make([]interface{}, len(outcome.Results))
		for i, r := range outcome.Results {
			sources[i] = map[string]interface{}{
				"content": r.Content,
				"source":  r.Source,
				"score":   r.Score,
			}
		}
		stored = map[string]interface{}{
			"answer":     outcome.Answer,
			"sources":    sources,
			"confidence": outcome.Confidence,
			"grounded":   outcome.Grounded,
		}
	}

	return flow.NodeResult{Variables: map[string]interface{}{cfg.ResultVariable: stored}}
}
