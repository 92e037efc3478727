package stage

import (
	"maps"

	"github.com/matzehuels/hierlayout/pkg/hierarchy"
)

// SwimlaneOrdering makes the model acyclic while keeping lower-indexed
// swimlanes upstream of higher ones.
//
// The traversal uses [hierarchy.SwimlaneExpand]: it follows edges within a
// lane or toward a higher lane, and walks edges that enter a vertex from a
// higher lane against their direction. For every step from parent to node:
//
//   - parent and node share a lane and node is on the current path: the edge
//     closes a cycle within the lane and is reversed with [hierarchy.Reverse].
//   - otherwise, parent's lane is lower than node's and the edge's source is
//     node: the edge points back into a lower lane and is reversed with
//     [hierarchy.ReverseAcrossLanes].
//
// Roots are the declared roots, or [hierarchy.Model.LaneRoots] when none are
// declared. The stage runs a single pass: components not reachable from the
// roots are left as they are unless CoverUnreached is set, in which case a
// second pass starts from every unreached vertex.
type SwimlaneOrdering struct {
	CoverUnreached bool
}

// laneKey identifies a vertex for seen/unseen bookkeeping.
type laneKey struct {
	lane   int
	handle hierarchy.Handle
}

func keyOf(v *hierarchy.Vertex) laneKey { return laneKey{lane: v.Lane, handle: v.Handle()} }

// Name returns "swimlanes".
func (SwimlaneOrdering) Name() string { return NameSwimlanes }

// Execute runs the traversal and applies both reversal rules.
func (s SwimlaneOrdering) Execute(m *hierarchy.Model) (Stats, error) {
	if m == nil {
		return Stats{}, ErrNilModel
	}

	var stats Stats
	unseen := make(map[laneKey]*hierarchy.Vertex, m.VertexCount())
	for _, v := range m.Vertices() {
		unseen[keyOf(v)] = v
	}

	visit := func(v hierarchy.Visit) {
		if v.Parent != nil && v.Edge != nil {
			switch {
			case v.Parent.Lane == v.Node.Lane && v.OnPath:
				hierarchy.Reverse(v.Edge, v.Parent, v.Node)
				stats.Reversed++
			case v.Parent.Lane < v.Node.Lane && v.Edge.Source() == v.Node:
				hierarchy.ReverseAcrossLanes(v.Edge, v.Parent, v.Node)
				stats.Reversed++
			}
		}
		delete(unseen, keyOf(v.Node))
	}

	roots := m.Roots()
	if len(roots) == 0 {
		roots = m.LaneRoots()
	}
	seen := m.Visit(hierarchy.VisitOptions{Roots: roots, Expand: hierarchy.SwimlaneExpand}, visit)
	stats.Passes++

	if s.CoverUnreached && len(unseen) > 0 {
		var rest []*hierarchy.Vertex
		for _, v := range m.Vertices() {
			if _, ok := unseen[keyOf(v)]; ok {
				rest = append(rest, v)
			}
		}
		m.Visit(hierarchy.VisitOptions{Roots: rest, Seen: maps.Clone(seen), Expand: hierarchy.SwimlaneExpand}, visit)
		stats.Passes++
	}

	stats.Visited = m.VertexCount() - len(unseen)
	return stats, nil
}
