// Package stage provides the pipeline stages that prepare a [hierarchy.Model]
// for layered drawing.
//
// # Cycle Removal
//
// Layered layouts need a DAG. [CycleRemover] reverses back-edges found by a
// two-pass depth-first traversal: the first pass starts from the model's
// roots, the second from whatever the first did not reach, so every component
// ends up acyclic. Edges are reversed, never removed; each [hierarchy.Edge]
// remembers whether its orientation differs from the input.
//
// # Swimlanes
//
// When vertices are partitioned into ordered swimlanes, [SwimlaneOrdering]
// replaces [CycleRemover]. It breaks cycles within each lane and flips edges
// that point from a higher lane back into a lower one, so lower lanes are
// always upstream. It runs a single pass by default; set CoverUnreached to
// also handle components the roots do not reach.
//
// # Ranking
//
// [LongestPathRanking] assigns layers once the model is acyclic and sizes
// the per-layer slots of edges that span several layers.
//
// # Usage
//
//	m, err := hierarchy.NewModel(g)
//	if err != nil {
//	    return err
//	}
//	for _, s := range []stage.Stage{stage.CycleRemover{}, stage.LongestPathRanking{}} {
//	    if _, err := s.Execute(m); err != nil {
//	        return err
//	    }
//	}
//
// [hierarchy.Model]: github.com/matzehuels/hierlayout/pkg/hierarchy.Model
// [hierarchy.Edge]: github.com/matzehuels/hierlayout/pkg/hierarchy.Edge
package stage
