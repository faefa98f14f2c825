// Package flow defines the data model for conversational flow definitions:
// flows, nodes, edges, variable and tool declarations, and the structures
// node handlers exchange with the engine (NodeResult, RuntimeError).
//
// The node set is closed and discriminated by Kind; handlers switch on Kind
// rather than relying on interface polymorphism (see flow/handler).
package flow

import (
	"encoding/json"
	"fmt"
	"time"
)

// NodeKind discriminates the closed set of node variants a Flow can contain.
type NodeKind string

// The nine node kinds understood by the runtime. The discriminator field on
// the wire is "type"; these constants are its only valid values.
const (
	KindStart           NodeKind = "start"
	KindMessage         NodeKind = "message"
	KindCollectInput    NodeKind = "collect_input"
	KindLLMRouter       NodeKind = "llm_router"
	KindKnowledgeSearch NodeKind = "knowledge_search"
	KindToolCall        NodeKind = "tool_call"
	KindCondition       NodeKind = "condition"
	KindEscalate        NodeKind = "escalate"
	KindEnd             NodeKind = "end"
)

// VariableType enumerates the five value types a flow variable may declare.
type VariableType string

const (
	VarString  VariableType = "string"
	VarNumber  VariableType = "number"
	VarBoolean VariableType = "boolean"
	VarObject  VariableType = "object"
	VarArray   VariableType = "array"
)

// Position is the visual-editor coordinate for a node. The runtime never
// reads it; it is carried through so round-tripping a flow definition is
// lossless.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one step in a flow. Config holds the kind-specific fields as a
// raw decoded JSON object; use DecodeConfig to obtain a typed view (see
// nodeconfig.go for the per-kind structs).
type Node struct {
	ID       string                 `json:"id"`
	Kind     NodeKind               `json:"type"`
	Name     string                 `json:"name,omitempty"`
	Position Position               `json:"position,omitempty"`
	Config   map[string]interface{} `json:"config"`
}

// Edge is a directed, optionally labelled connection between two nodes.
type Edge struct {
	ID            string  `json:"id"`
	Source        string  `json:"source"`
	Target        string  `json:"target"`
	SourceHandle  *string `json:"sourceHandle,omitempty"`
	TargetHandle  *string `json:"targetHandle,omitempty"`
	Label         *string `json:"label,omitempty"`
	Condition     *string `json:"condition,omitempty"`
}

// VariableDecl declares a flow-scoped variable: its name, type, optional
// default, and whether it should survive across sessions that share
// persistent storage (the runtime itself does not implement cross-session
// persistence; Persistent is informational for the caller).
type VariableDecl struct {
	Name         string       `json:"name"`
	Type         VariableType `json:"type"`
	DefaultValue interface{}  `json:"defaultValue,omitempty"`
	Persistent   bool         `json:"persistent,omitempty"`
}

// ToolDecl declares a tool available to Tool-Call nodes via ToolID.
type ToolDecl struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Config      map[string]interface{} `json:"config,omitempty"`
}

// FlowMetadata carries authoring information that the runtime round-trips
// but never interprets.
type FlowMetadata struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy *string   `json:"createdBy,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Channel   *string   `json:"channel,omitempty"`
}

// Flow is the immutable, shared-read-only graph the engine interprets.
// The unexported nodesByID table is populated by Index (or lazily by
// NodeByID on first use) for O(1) lookups; it is not part of the wire
// format.
type Flow struct {
	Version     string         `json:"version"`
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	EntryNode   string         `json:"entryNode"`
	Nodes       []Node         `json:"nodes"`
	Edges       []Edge         `json:"edges"`
	Variables   []VariableDecl `json:"variables,omitempty"`
	Tools       []ToolDecl     `json:"tools,omitempty"`
	Metadata    FlowMetadata   `json:"metadata,omitempty"`

	nodesByID map[string]*Node
}

// Index builds the id -> *Node lookup table used by NodeByID and the
// engine's run loop. Safe to call repeatedly; it is idempotent.
func (f *Flow) Index() {
	f.nodesByID = make(map[string]*Node, len(f.Nodes))
	for i := range f.Nodes {
		f.nodesByID[f.Nodes[i].ID] = &f.Nodes[i]
	}
}

// NodeByID returns the node with the given id, indexing the flow first if
// it has not been indexed yet.
func (f *Flow) NodeByID(id string) (*Node, bool) {
	if f.nodesByID == nil {
		f.Index()
	}
	n, ok := f.nodesByID[id]
	return n, ok
}

// OutgoingEdges returns the edges, in declaration order, whose Source is
// nodeID.
func (f *Flow) OutgoingEdges(nodeID string) []Edge {
	var out []Edge
	for _, e := range f.Edges {
		if e.Source == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// Validate performs the structural checks the engine requires before a flow
// can be run: unique node ids, unique edge ids, entryNode and every edge
// endpoint referencing a declared node. This is a structural sanity check,
// not schema-level authoring validation (explicitly out of scope; see
// spec.md §1 and SPEC_FULL.md §4).
func (f *Flow) Validate() error {
	if f.EntryNode == "" {
		return fmt.Errorf("flow %q: entryNode is required", f.ID)
	}

	seenNodes := make(map[string]bool, len(f.Nodes))
	for _, n := range f.Nodes {
		if n.ID == "" {
			return fmt.Errorf("flow %q: node with empty id", f.ID)
		}
		if seenNodes[n.ID] {
			return fmt.Errorf("flow %q: duplicate node id %q", f.ID, n.ID)
		}
		seenNodes[n.ID] = true
	}

	if !seenNodes[f.EntryNode] {
		return fmt.Errorf("flow %q: entryNode %q not found among nodes", f.ID, f.EntryNode)
	}

	seenEdges := make(map[string]bool, len(f.Edges))
	for _, e := range f.Edges {
		if e.ID == "" {
			return fmt.Errorf("flow %q: edge with empty id", f.ID)
		}
		if seenEdges[e.ID] {
			return fmt.Errorf("flow %q: duplicate edge id %q", f.ID, e.ID)
		}
		seenEdges[e.ID] = true
		if !seenNodes[e.Source] {
			return fmt.Errorf("flow %q: edge %q references unknown source %q", f.ID, e.ID, e.Source)
		}
		if !seenNodes[e.Target] {
			return fmt.Errorf("flow %q: edge %q references unknown target %q", f.ID, e.ID, e.Target)
		}
	}

	return nil
}

// DecodeConfig decodes a node's raw Config map into a typed kind-specific
// struct (see nodeconfig.go). It round-trips through JSON rather than using
// a reflection-based mapper, matching how the rest of the runtime treats
// node config as wire data.
func DecodeConfig[T any](cfg map[string]interface{}) (*T, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &out, nil
}
