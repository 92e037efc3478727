package stage

import (
	"maps"

	"github.com/matzehuels/hierlayout/pkg/hierarchy"
)

// CycleRemover turns the model into a DAG by reversing back-edges found by
// depth-first traversal.
//
// # Algorithm
//
// Pass 1 traverses from the declared roots, or from [hierarchy.Model.DefaultRoots]
// when none are declared. Every edge that reaches a vertex on the current
// path closes a cycle and is reversed with [hierarchy.Reverse]. Pass 2 starts
// from each vertex pass 1 did not reach, in creation order, with the pass-1
// seen set as context, so disconnected components are covered and no vertex
// is expanded twice.
//
// A self-loop reaches its own vertex on the path and is reversed too; its
// direction is unchanged but IsReversed flips.
//
// Reversing every back-edge of a DFS forest leaves only tree, forward and
// cross edges, which cannot form a cycle. The choice of edges is
// deterministic but not a minimum feedback arc set.
//
// # Performance
//
// O(V + E) time; O(V) space for the seen and on-path sets plus recursion.
type CycleRemover struct{}

// Name returns "cycles".
func (CycleRemover) Name() string { return NameCycles }

// Execute runs both passes.
func (CycleRemover) Execute(m *hierarchy.Model) (Stats, error) {
	if m == nil {
		return Stats{}, ErrNilModel
	}

	var stats Stats
	unseen := make(map[hierarchy.Handle]*hierarchy.Vertex, m.VertexCount())
	for _, v := range m.Vertices() {
		unseen[v.Handle()] = v
	}

	visit := func(v hierarchy.Visit) {
		if v.OnPath {
			hierarchy.Reverse(v.Edge, v.Parent, v.Node)
			stats.Reversed++
		}
		delete(unseen, v.Node.Handle())
	}

	roots := m.Roots()
	if len(roots) == 0 {
		roots = m.DefaultRoots()
	}
	seen := m.Visit(hierarchy.VisitOptions{Roots: roots}, visit)
	stats.Passes++

	if len(unseen) > 0 {
		var rest []*hierarchy.Vertex
		for _, v := range m.Vertices() {
			if _, ok := unseen[v.Handle()]; ok {
				rest = append(rest, v)
			}
		}
		m.Visit(hierarchy.VisitOptions{Roots: rest, Seen: maps.Clone(seen)}, visit)
		stats.Passes++
	}

	stats.Visited = m.VertexCount() - len(unseen)
	return stats, nil
}
