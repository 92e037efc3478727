package hierarchy

import (
	"slices"

	"github.com/matzehuels/hierlayout/pkg/graph"
)

// FindCycle returns the vertex IDs of one directed cycle over the current
// edge orientation, or nil if there is none. Self-loops are ignored: they
// cannot be layered and later stages skip them.
//
// Detection uses depth-first search with white/gray/black coloring, starting
// from every vertex in creation order. The returned cycle starts and ends at
// the same vertex.
func (m *Model) FindCycle() []string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[Handle]int, len(m.vertices))
	var path []*Vertex
	var cycle []string

	var dfs func(v *Vertex) bool
	dfs = func(v *Vertex) bool {
		color[v.handle] = gray
		path = append(path, v)
		for _, e := range v.source {
			if e.IsSelfLoop() {
				continue
			}
			switch color[e.target.handle] {
			case white:
				if dfs(e.target) {
					return true
				}
			case gray:
				start := slices.Index(path, e.target)
				for _, p := range path[start:] {
					cycle = append(cycle, p.ID)
				}
				cycle = append(cycle, e.target.ID)
				return true
			}
		}
		path = path[:len(path)-1]
		color[v.handle] = black
		return false
	}

	for _, v := range m.vertices {
		if color[v.handle] == white && dfs(v) {
			return cycle
		}
	}
	return nil
}

// Acyclic reports whether the current orientation has no directed cycle
// (self-loops aside).
func (m *Model) Acyclic() bool { return m.FindCycle() == nil }

// LaneViolations returns the edges whose current source sits in a higher
// lane than their target.
func (m *Model) LaneViolations() []*Edge {
	var out []*Edge
	for _, e := range m.edges {
		if e.source.Lane > e.target.Lane {
			out = append(out, e)
		}
	}
	return out
}

// Result snapshots the model into an output document.
func (m *Model) Result() *graph.Result {
	r := &graph.Result{
		Vertices: make([]graph.VertexResult, len(m.vertices)),
		Edges:    make([]graph.EdgeResult, len(m.edges)),
		Acyclic:  m.Acyclic(),
	}
	for i, v := range m.vertices {
		r.Vertices[i] = graph.VertexResult{ID: v.ID, Lane: v.Lane, Rank: v.rank}
		if v.Label != v.ID {
			r.Vertices[i].Label = v.Label
		}
	}
	for i, e := range m.edges {
		r.Edges[i] = graph.EdgeResult{
			IDs:      slices.Clone(e.IDs),
			From:     e.source.ID,
			To:       e.target.ID,
			Reversed: e.reversed,
			MinRank:  e.minRank,
			MaxRank:  e.maxRank,
		}
	}
	return r
}
