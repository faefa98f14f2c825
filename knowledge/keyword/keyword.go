// Package keyword is a deterministic service.KnowledgeService with no
// vector index: documents are scored against a query by word overlap.
// Vector-index management is out of scope for this core; flowrun wires
// this adapter as a reference collaborator, not a production search
// backend.
package keyword

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/ivaflow/flowcore/flow/service"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Document is one indexed passage in a knowledge base.
type Document struct {
	Content string
	Source  string
}

// Service answers Search by ranking a knowledge base's documents by the
// fraction of query words each document contains.
type Service struct {
	mu    sync.RWMutex
	bases map[string][]Document
}

var _ service.KnowledgeService = (*Service)(nil)

// New builds a Service preloaded with the given knowledge bases, keyed by
// knowledgeBaseId.
func New(bases map[string][]Document) *Service {
	copied := make(map[string][]Document, len(bases))
	for id, docs := range bases {
		copied[id] = append([]Document(nil), docs...)
	}
	return &Service{bases: copied}
}

// Index adds or replaces the documents for a knowledge base.
func (s *Service) Index(knowledgeBaseID string, docs []Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bases == nil {
		s.bases = make(map[string][]Document)
	}
	s.bases[knowledgeBaseID] = append([]Document(nil), docs...)
}

type scored struct {
	doc   Document
	score float64
}

// Search scores every document in knowledgeBaseID by query-word overlap,
// keeps the topK highest (score > 0, ties broken by input order), and
// treats the outcome as grounded when at least one result clears
// minScore. Answer is the best-scoring document's content verbatim — this
// adapter does no generation.
func (s *Service) Search(_ context.Context, knowledgeBaseID, query string, topK int, minScore float64) (service.SearchOutcome, error) {
	s.mu.RLock()
	docs := s.bases[knowledgeBaseID]
	s.mu.RUnlock()

	queryWords := wordSet(query)
	if len(queryWords) == 0 || len(docs) == 0 {
		return service.SearchOutcome{}, nil
	}

	var candidates []scored
	for _, doc := range docs {
		docWords := wordSet(doc.Content)
		if len(docWords) == 0 {
			continue
		}
		overlap := 0
		for w := range queryWords {
			if _, ok := docWords[w]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		score := float64(overlap) / float64(len(queryWords))
		candidates = append(candidates, scored{doc: doc, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	if topK <= 0 {
		topK = 3
	}
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	outcome := service.SearchOutcome{Results: make([]service.SearchResult, 0, len(candidates))}
	for _, c := range candidates {
		outcome.Results = append(outcome.Results, service.SearchResult{
			Content: c.doc.Content,
			Source:  c.doc.Source,
			Score:   c.score,
		})
	}
	if len(outcome.Results) > 0 {
		outcome.Answer = outcome.Results[0].Content
		outcome.Confidence = outcome.Results[0].Score
		outcome.Grounded = outcome.Results[0].Score >= minScore
	}
	return outcome, nil
}

func wordSet(s string) map[string]struct{} {
	words := wordPattern.FindAllString(strings.ToLower(s), -1)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
