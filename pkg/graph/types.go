package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrEmptyNodeID is returned by [Graph.Validate] when a node has no ID.
	ErrEmptyNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.Validate] when two nodes share an ID.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrDuplicateEdgeID is returned by [Graph.Validate] when two edges share an ID.
	ErrDuplicateEdgeID = errors.New("duplicate edge ID")

	// ErrUnknownEndpoint is returned by [Graph.Validate] when an edge references
	// a node that is not part of the document.
	ErrUnknownEndpoint = errors.New("unknown edge endpoint")

	// ErrUnknownRoot is returned by [Graph.Validate] when a declared root is not
	// part of the document.
	ErrUnknownRoot = errors.New("unknown root")

	// ErrNegativeLane is returned by [Graph.Validate] when a node's lane is below zero.
	ErrNegativeLane = errors.New("lane must not be negative")
)

// Metadata stores arbitrary key-value pairs attached to nodes or edges.
type Metadata map[string]any

// =============================================================================
// Graph - Input Document
// =============================================================================

// Graph is the input document for a layout run: the vertices and edges of the
// graph to lay out, plus optional traversal roots.
//
// Edges may form cycles, may be parallel, and may be self-loops. Nodes that
// carry a Lane belong to the swimlane with that index; lanes are ordered and
// lower indices are upstream of higher ones.
type Graph struct {
	Nodes []Node   `json:"nodes" yaml:"nodes"`
	Edges []Edge   `json:"edges" yaml:"edges"`
	Roots []string `json:"roots,omitempty" yaml:"roots,omitempty"`
}

// Node is a vertex of the input graph.
type Node struct {
	ID    string   `json:"id" yaml:"id"`
	Label string   `json:"label,omitempty" yaml:"label,omitempty"`
	Lane  *int     `json:"lane,omitempty" yaml:"lane,omitempty"`
	Meta  Metadata `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed edge of the input graph.
type Edge struct {
	ID   string   `json:"id,omitempty" yaml:"id,omitempty"`
	From string   `json:"from" yaml:"from"`
	To   string   `json:"to" yaml:"to"`
	Meta Metadata `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// LaneOf is a convenience for building nodes in code: it returns a pointer to i.
func LaneOf(i int) *int { return &i }

// Normalize fills in missing edge IDs as described by [Graph.EdgeIDs]. It is
// applied by the readers in this package and is safe to call more than once.
func (g *Graph) Normalize() {
	for i, id := range g.EdgeIDs() {
		g.Edges[i].ID = id
	}
}

// EdgeIDs returns the ID of every edge without modifying g. A missing ID
// becomes "e<index>", or "e<index>_<n>" with the smallest n that avoids every
// explicit and previously generated ID.
func (g *Graph) EdgeIDs() []string {
	used := make(map[string]struct{}, len(g.Edges))
	for _, e := range g.Edges {
		if e.ID != "" {
			used[e.ID] = struct{}{}
		}
	}

	ids := make([]string, len(g.Edges))
	for i, e := range g.Edges {
		if e.ID != "" {
			ids[i] = e.ID
			continue
		}
		id := fmt.Sprintf("e%d", i)
		for n := 1; ; n++ {
			if _, taken := used[id]; !taken {
				break
			}
			id = fmt.Sprintf("e%d_%d", i, n)
		}
		used[id] = struct{}{}
		ids[i] = id
	}
	return ids
}

// HasLanes reports whether any node is assigned to a swimlane.
func (g *Graph) HasLanes() bool {
	for _, n := range g.Nodes {
		if n.Lane != nil {
			return true
		}
	}
	return false
}

// Validate checks that the document is well formed: node IDs are non-empty
// and unique, edge IDs are unique, edge endpoints and roots reference existing
// nodes, and lanes are non-negative. Cycles are allowed.
//
// Errors wrap one of the sentinel errors of this package and name the
// offending element.
func (g *Graph) Validate() error {
	ids := make(map[string]struct{}, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node %d: %w", i, ErrEmptyNodeID)
		}
		if _, dup := ids[n.ID]; dup {
			return fmt.Errorf("node %s: %w", n.ID, ErrDuplicateNodeID)
		}
		if n.Lane != nil && *n.Lane < 0 {
			return fmt.Errorf("node %s: %w", n.ID, ErrNegativeLane)
		}
		ids[n.ID] = struct{}{}
	}

	edgeIDs := make(map[string]struct{}, len(g.Edges))
	for _, e := range g.Edges {
		if _, ok := ids[e.From]; !ok {
			return fmt.Errorf("edge %s: from %q: %w", e.ID, e.From, ErrUnknownEndpoint)
		}
		if _, ok := ids[e.To]; !ok {
			return fmt.Errorf("edge %s: to %q: %w", e.ID, e.To, ErrUnknownEndpoint)
		}
		if e.ID == "" {
			continue
		}
		if _, dup := edgeIDs[e.ID]; dup {
			return fmt.Errorf("edge %s: %w", e.ID, ErrDuplicateEdgeID)
		}
		edgeIDs[e.ID] = struct{}{}
	}

	for _, r := range g.Roots {
		if _, ok := ids[r]; !ok {
			return fmt.Errorf("root %q: %w", r, ErrUnknownRoot)
		}
	}
	return nil
}

// Hash returns a SHA-256 digest of the document's canonical JSON encoding.
// Two documents with the same nodes, edges, and roots in the same order hash
// to the same value.
func (g *Graph) Hash() string {
	data, _ := json.Marshal(g)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// =============================================================================
// Result - Output Document
// =============================================================================

// Result is the output document of a layout run: every vertex with its lane
// and rank, and every edge wrapper in its final orientation.
type Result struct {
	Vertices []VertexResult `json:"vertices" yaml:"vertices"`
	Edges    []EdgeResult   `json:"edges" yaml:"edges"`
	Acyclic  bool           `json:"acyclic" yaml:"acyclic"`
	Stages   []StageResult  `json:"stages,omitempty" yaml:"stages,omitempty"`
}

// VertexResult describes one vertex after the pipeline ran. Rank is -1 when
// no ranking stage ran.
type VertexResult struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Lane  int    `json:"lane" yaml:"lane"`
	Rank  int    `json:"rank" yaml:"rank"`
}

// EdgeResult describes one edge wrapper after the pipeline ran. IDs lists
// the original edges the wrapper represents. From and To are the final
// orientation; Reversed reports whether that differs from the input.
type EdgeResult struct {
	IDs      []string `json:"ids" yaml:"ids"`
	From     string   `json:"from" yaml:"from"`
	To       string   `json:"to" yaml:"to"`
	Reversed bool     `json:"reversed,omitempty" yaml:"reversed,omitempty"`
	MinRank  int      `json:"min_rank" yaml:"min_rank"`
	MaxRank  int      `json:"max_rank" yaml:"max_rank"`
}

// StageResult records what a single pipeline stage did.
type StageResult struct {
	Name     string `json:"name" yaml:"name"`
	Reversed int    `json:"reversed" yaml:"reversed"`
	Visited  int    `json:"visited" yaml:"visited"`
	Passes   int    `json:"passes" yaml:"passes"`
}

// ReversedCount returns the number of edge wrappers whose orientation differs
// from the input.
func (r *Result) ReversedCount() int {
	n := 0
	for _, e := range r.Edges {
		if e.Reversed {
			n++
		}
	}
	return n
}
