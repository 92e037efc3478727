package hierarchy

// Vertex wraps one input vertex. It spans exactly one layer.
type Vertex struct {
	handle Handle

	// ID is the input vertex ID; Label its display label, which defaults to
	// the ID.
	ID    string
	Label string

	// Lane is the swimlane index. Vertices without a lane are in lane 0.
	Lane int

	// X, Y and Position are filled by placement stages: coordinates and the
	// index within the vertex's layer. Position is -1 until ordered.
	X, Y     float64
	Position int

	rank   int
	source []*Edge // edges this vertex is the source of
	target []*Edge // edges this vertex is the target of

	next, prev           []Cell
	nextLayer, prevLayer int
	nextOK, prevOK       bool
}

func newVertex(h Handle, id, label string, lane int) *Vertex {
	return &Vertex{
		handle:   h,
		ID:       id,
		Label:    label,
		Lane:     lane,
		Position: -1,
		rank:     Unranked,
	}
}

func (v *Vertex) cell() {}

// Handle returns the vertex's handle.
func (v *Vertex) Handle() Handle { return v.handle }

// Kind returns KindVertex.
func (v *Vertex) Kind() CellKind { return KindVertex }

// IsVertex returns true.
func (v *Vertex) IsVertex() bool { return true }

// IsEdge returns false.
func (v *Vertex) IsEdge() bool { return false }

// Rank returns the vertex's layer, or Unranked.
func (v *Vertex) Rank() int { return v.rank }

// MinRank returns the vertex's layer.
func (v *Vertex) MinRank() int { return v.rank }

// MaxRank returns the vertex's layer.
func (v *Vertex) MaxRank() int { return v.rank }

// SetRank assigns the vertex's layer and drops its cached adjacency.
func (v *Vertex) SetRank(r int) {
	v.rank = r
	v.invalidate()
}

// ConnectsAsSource returns the edges leaving this vertex in their current
// orientation. The slice must not be modified.
func (v *Vertex) ConnectsAsSource() []*Edge { return v.source }

// ConnectsAsTarget returns the edges entering this vertex in their current
// orientation. The slice must not be modified.
func (v *Vertex) ConnectsAsTarget() []*Edge { return v.target }

// NextLayerConnectedCells returns, per outgoing edge, the edge's target when
// the edge is unranked or ends on layer+1, and the edge itself (its first
// virtual slot) when it spans further. The result is memoized.
func (v *Vertex) NextLayerConnectedCells(layer int) []Cell {
	if v.nextOK && v.nextLayer == layer {
		return v.next
	}
	cells := make([]Cell, 0, len(v.source))
	for _, e := range v.source {
		if e.maxRank == Unranked || e.maxRank == layer+1 {
			cells = append(cells, e.target)
		} else {
			cells = append(cells, e)
		}
	}
	v.next, v.nextLayer, v.nextOK = cells, layer, true
	return cells
}

// PreviousLayerConnectedCells mirrors NextLayerConnectedCells over incoming
// edges: the edge's source when the edge is unranked or starts on layer-1,
// otherwise the edge itself.
func (v *Vertex) PreviousLayerConnectedCells(layer int) []Cell {
	if v.prevOK && v.prevLayer == layer {
		return v.prev
	}
	cells := make([]Cell, 0, len(v.target))
	for _, e := range v.target {
		if e.minRank == Unranked || e.minRank == layer-1 {
			cells = append(cells, e.source)
		} else {
			cells = append(cells, e)
		}
	}
	v.prev, v.prevLayer, v.prevOK = cells, layer, true
	return cells
}

func (v *Vertex) invalidate() {
	v.next, v.prev = nil, nil
	v.nextOK, v.prevOK = false, false
}
