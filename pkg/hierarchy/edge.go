package hierarchy

import "github.com/matzehuels/hierlayout/pkg/graph"

// Edge wraps a group of parallel input edges that share the same source and
// target. After a ranking stage an edge spanning k>1 layers also stands for
// k-1 virtual routing nodes, one per intermediate layer.
type Edge struct {
	handle Handle

	// Edges are the wrapped input edges in input order; IDs are their IDs.
	Edges []graph.Edge
	IDs   []string

	// X, Y and Positions hold one slot per intermediate layer, indexed by
	// layer-MinRank()-1. They are allocated by SetRanks.
	X, Y      []float64
	Positions []int

	source, target   *Vertex
	reversed         bool
	minRank, maxRank int

	next, prev [][]Cell
}

func newEdge(h Handle, source, target *Vertex) *Edge {
	return &Edge{
		handle:  h,
		source:  source,
		target:  target,
		minRank: Unranked,
		maxRank: Unranked,
	}
}

func (e *Edge) cell() {}

// Handle returns the edge's handle.
func (e *Edge) Handle() Handle { return e.handle }

// Kind returns KindEdge.
func (e *Edge) Kind() CellKind { return KindEdge }

// IsVertex returns false.
func (e *Edge) IsVertex() bool { return false }

// IsEdge returns true.
func (e *Edge) IsEdge() bool { return true }

// Source returns the current source vertex.
func (e *Edge) Source() *Vertex { return e.source }

// Target returns the current target vertex.
func (e *Edge) Target() *Vertex { return e.target }

// IsReversed reports whether the current orientation differs from the input.
func (e *Edge) IsReversed() bool { return e.reversed }

// IsSelfLoop reports whether source and target are the same vertex.
func (e *Edge) IsSelfLoop() bool { return e.source == e.target }

// MinRank returns the layer of the upper endpoint, or Unranked.
func (e *Edge) MinRank() int { return e.minRank }

// MaxRank returns the layer of the lower endpoint, or Unranked.
func (e *Edge) MaxRank() int { return e.maxRank }

// Span returns the number of intermediate layers the edge passes through.
func (e *Edge) Span() int {
	if e.minRank == Unranked || e.maxRank == Unranked || e.maxRank-e.minRank < 2 {
		return 0
	}
	return e.maxRank - e.minRank - 1
}

// SetRanks assigns the edge's layer range, allocates one X/Y/Position slot
// per intermediate layer, and drops cached adjacency.
func (e *Edge) SetRanks(minRank, maxRank int) {
	e.minRank, e.maxRank = minRank, maxRank
	n := e.Span()
	e.X = make([]float64, n)
	e.Y = make([]float64, n)
	e.Positions = make([]int, n)
	for i := range e.Positions {
		e.Positions[i] = -1
	}
	e.next, e.prev = nil, nil
	e.source.invalidate()
	e.target.invalidate()
}

// Invert swaps source and target and toggles IsReversed. Calling it twice
// restores the original state. Invert does not touch the endpoints' edge
// lists; see [Reverse] and [ReverseAcrossLanes].
func (e *Edge) Invert() {
	e.source, e.target = e.target, e.source
	e.reversed = !e.reversed
	e.next, e.prev = nil, nil
}

// NextLayerConnectedCells returns the cell below the given intermediate
// layer: the edge itself for every layer but the last, where it is the
// target. The lists are computed on first call and memoized; callers must not
// modify them. Layers outside (MinRank, MaxRank) yield nil.
func (e *Edge) NextLayerConnectedCells(layer int) []Cell {
	if e.next == nil {
		n := e.Span()
		e.next = make([][]Cell, n)
		for i := range n {
			if i == n-1 {
				e.next[i] = []Cell{e.target}
			} else {
				e.next[i] = []Cell{e}
			}
		}
	}
	return slot(e.next, layer-e.minRank-1)
}

// PreviousLayerConnectedCells returns the cell above the given intermediate
// layer: the source at the first layer, the edge itself elsewhere.
func (e *Edge) PreviousLayerConnectedCells(layer int) []Cell {
	if e.prev == nil {
		n := e.Span()
		e.prev = make([][]Cell, n)
		for i := range n {
			if i == 0 {
				e.prev[i] = []Cell{e.source}
			} else {
				e.prev[i] = []Cell{e}
			}
		}
	}
	return slot(e.prev, layer-e.minRank-1)
}

func slot(lists [][]Cell, i int) []Cell {
	if i < 0 || i >= len(lists) {
		return nil
	}
	return lists[i]
}

// Reverse flips e, which was traversed from parent to node and closes a cycle
// (node is on the current path). Afterwards e runs node -> parent: it leaves
// parent's source list for its target list, and node's target list for its
// source list.
func Reverse(e *Edge, parent, node *Vertex) {
	e.Invert()
	parent.source = removeFirst(parent.source, e)
	parent.target = append(parent.target, e)
	node.target = removeFirst(node.target, e)
	node.source = append(node.source, e)
	parent.invalidate()
	node.invalidate()
}

// ReverseAcrossLanes flips e, which was reached from parent against its
// direction (e runs node -> parent, from a higher lane back into a lower
// one). Afterwards e runs parent -> node, so the list bookkeeping is the
// mirror image of [Reverse].
func ReverseAcrossLanes(e *Edge, parent, node *Vertex) {
	e.Invert()
	parent.target = removeFirst(parent.target, e)
	node.target = append(node.target, e)
	parent.source = append(parent.source, e)
	node.source = removeFirst(node.source, e)
	parent.invalidate()
	node.invalidate()
}
