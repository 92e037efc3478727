package stage

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matzehuels/hierlayout/pkg/graph"
	"github.com/matzehuels/hierlayout/pkg/hierarchy"
)

// laned builds a graph with the given lane per node and "from->to" edges.
func laned(roots []string, lanes map[string]int, pairs ...[2]string) *graph.Graph {
	g := chain(roots, pairs...)
	for i := range g.Nodes {
		if l, ok := lanes[g.Nodes[i].ID]; ok {
			g.Nodes[i].Lane = graph.LaneOf(l)
		}
	}
	return g
}

func endpoints(e *hierarchy.Edge) [2]string {
	return [2]string{e.Source().ID, e.Target().ID}
}

func TestSwimlaneOrdering_CrossLaneBackReference(t *testing.T) {
	m := newModel(t, laned(nil, map[string]int{"a": 0, "b": 1}, [2]string{"b", "a"}))

	stats, err := SwimlaneOrdering{}.Execute(m)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if stats.Reversed != 1 {
		t.Fatalf("Reversed = %d, want 1", stats.Reversed)
	}
	e := m.Edges()[0]
	if got := endpoints(e); got != [2]string{"a", "b"} {
		t.Errorf("edge = %v, want [a b]", got)
	}
	if !e.IsReversed() {
		t.Error("edge should be flagged reversed")
	}

	a, _ := m.Vertex("a")
	b, _ := m.Vertex("b")
	if len(a.ConnectsAsSource()) != 1 || len(a.ConnectsAsTarget()) != 0 {
		t.Errorf("a lists = %d/%d, want 1/0", len(a.ConnectsAsSource()), len(a.ConnectsAsTarget()))
	}
	if len(b.ConnectsAsSource()) != 0 || len(b.ConnectsAsTarget()) != 1 {
		t.Errorf("b lists = %d/%d, want 0/1", len(b.ConnectsAsSource()), len(b.ConnectsAsTarget()))
	}
}

func TestSwimlaneOrdering_ForwardCrossLaneKept(t *testing.T) {
	m := newModel(t, laned(nil, map[string]int{"a": 0, "b": 1}, [2]string{"a", "b"}))

	stats, _ := SwimlaneOrdering{}.Execute(m)

	if stats.Reversed != 0 {
		t.Errorf("Reversed = %d, want 0", stats.Reversed)
	}
	if m.Edges()[0].IsReversed() {
		t.Error("a->b should keep its direction")
	}
}

func TestSwimlaneOrdering_CycleWithinLane(t *testing.T) {
	m := newModel(t, laned(nil, map[string]int{"a": 1, "b": 1, "c": 1},
		[2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "a"},
	))

	stats, _ := SwimlaneOrdering{}.Execute(m)

	if stats.Reversed != 1 {
		t.Errorf("Reversed = %d, want 1", stats.Reversed)
	}
	if !m.Acyclic() {
		t.Errorf("cycle %v remains", m.FindCycle())
	}
}

func TestSwimlaneOrdering_MixedLanes(t *testing.T) {
	// Lane 0: a->b. Lane 1: c->d->c. Back-reference d->a.
	lanes := map[string]int{"a": 0, "b": 0, "c": 1, "d": 1}
	m := newModel(t, laned(nil, lanes,
		[2]string{"a", "b"}, [2]string{"b", "c"},
		[2]string{"c", "d"}, [2]string{"d", "c"},
		[2]string{"d", "a"},
	))

	SwimlaneOrdering{}.Execute(m)

	if v := m.LaneViolations(); len(v) != 0 {
		t.Errorf("lane violations: %d edges", len(v))
	}
	if !m.Acyclic() {
		t.Errorf("cycle %v remains", m.FindCycle())
	}
	if got := endpoints(m.Edges()[4]); got != [2]string{"a", "d"} {
		t.Errorf("d->a = %v after ordering, want [a d]", got)
	}
}

func TestSwimlaneOrdering_SingleLaneMatchesCycleRemover(t *testing.T) {
	pairs := [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"}, {"d", "b"}}

	m1 := newModel(t, chain([]string{"a"}, pairs...))
	m2 := newModel(t, chain([]string{"a"}, pairs...))
	s1, _ := CycleRemover{}.Execute(m1)
	s2, _ := SwimlaneOrdering{}.Execute(m2)

	if s1.Reversed != s2.Reversed {
		t.Errorf("Reversed = %d vs %d", s1.Reversed, s2.Reversed)
	}
	if !slices.Equal(reversedIDs(m1), reversedIDs(m2)) {
		t.Errorf("reversed edges = %v vs %v", reversedIDs(m1), reversedIDs(m2))
	}
}

func TestSwimlaneOrdering_UnreachedLeftAlone(t *testing.T) {
	// The c<->d cycle has no same-lane source, so the lane roots never reach it.
	g := laned(nil, map[string]int{"a": 0, "c": 0, "d": 0},
		[2]string{"c", "d"}, [2]string{"d", "c"},
	)
	g.Nodes = append([]graph.Node{{ID: "a", Lane: graph.LaneOf(0)}}, g.Nodes...)

	m := newModel(t, g)
	stats, _ := SwimlaneOrdering{}.Execute(m)

	if stats.Passes != 1 {
		t.Errorf("Passes = %d, want 1", stats.Passes)
	}
	if stats.Visited != 1 {
		t.Errorf("Visited = %d, want 1", stats.Visited)
	}
	if m.Acyclic() {
		t.Error("single pass should leave the unreached cycle in place")
	}

	m = newModel(t, g)
	stats, _ = SwimlaneOrdering{CoverUnreached: true}.Execute(m)

	if stats.Passes != 2 {
		t.Errorf("Passes = %d, want 2", stats.Passes)
	}
	if stats.Visited != 3 {
		t.Errorf("Visited = %d, want 3", stats.Visited)
	}
	if !m.Acyclic() {
		t.Errorf("cycle %v remains with CoverUnreached", m.FindCycle())
	}
}

func TestSwimlaneOrdering_NilModel(t *testing.T) {
	if _, err := (SwimlaneOrdering{}).Execute(nil); !errors.Is(err, ErrNilModel) {
		t.Errorf("Execute(nil) error = %v, want %v", err, ErrNilModel)
	}
}

func TestSwimlaneOrdering_RandomGraphs(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	for i := range 200 {
		m := newModel(t, randomGraph(r, 2+r.IntN(12), r.IntN(30)))
		before := m.InputEdgeIDs()
		slices.Sort(before)

		stats, err := SwimlaneOrdering{CoverUnreached: true}.Execute(m)
		if err != nil {
			t.Fatalf("graph %d: Execute() error: %v", i, err)
		}

		if v := m.LaneViolations(); len(v) != 0 {
			t.Errorf("graph %d: %d edges point into a lower lane", i, len(v))
		}
		if cycle := m.FindCycle(); cycle != nil {
			t.Errorf("graph %d: cycle %v remains", i, cycle)
		}
		if stats.Visited != m.VertexCount() {
			t.Errorf("graph %d: Visited = %d, want %d", i, stats.Visited, m.VertexCount())
		}
		after := m.InputEdgeIDs()
		slices.Sort(after)
		if !slices.Equal(before, after) {
			t.Errorf("graph %d: wrapped edges changed", i)
		}
	}
}

func TestSwimlaneOrdering_RandomGraphsSinglePass(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))

	checked := 0
	for i := range 200 {
		m := newModel(t, randomGraph(r, 2+r.IntN(12), r.IntN(30)))

		stats, err := SwimlaneOrdering{}.Execute(m)
		if err != nil {
			t.Fatalf("graph %d: Execute() error: %v", i, err)
		}
		if stats.Passes != 1 {
			t.Errorf("graph %d: Passes = %d, want 1", i, stats.Passes)
		}
		// Unreached components keep their cycles in a single pass.
		if stats.Visited != m.VertexCount() {
			continue
		}
		checked++

		if v := m.LaneViolations(); len(v) != 0 {
			t.Errorf("graph %d: %d edges point into a lower lane", i, len(v))
		}
		if !m.Acyclic() {
			t.Errorf("graph %d: cycle %v remains", i, m.FindCycle())
		}
	}
	if checked == 0 {
		t.Fatal("no random graph was fully reached in one pass")
	}
}
