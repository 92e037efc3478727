package hierarchy

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/hierlayout/pkg/graph"
)

var (
	// ErrNilGraph is returned by [NewModel] when the input document is nil.
	ErrNilGraph = errors.New("graph must not be nil")

	// ErrUnknownVertex is returned when a vertex ID cannot be resolved
	// through the model's vertex mapper.
	ErrUnknownVertex = errors.New("unknown vertex")
)

// Model is the internal graph a layout run operates on. It owns one *Vertex
// per input vertex and one *Edge per group of parallel input edges, and is
// mutated in place by each pipeline stage.
//
// A Model belongs to a single layout run and is not safe for concurrent use.
type Model struct {
	vertices []*Vertex
	edges    []*Edge
	cells    []Cell
	mapper   map[string]Handle
	roots    []*Vertex
	lanes    bool
	inputs   int
}

// NewModel validates g and wraps it. Vertices keep document order; parallel
// edges with the same from/to pair collapse into one *Edge in order of first
// appearance. Self-loops are kept. Declared roots are resolved through the
// vertex mapper.
func NewModel(g *graph.Graph) (*Model, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid graph: %w", err)
	}

	m := &Model{
		mapper: make(map[string]Handle, len(g.Nodes)),
		lanes:  g.HasLanes(),
		inputs: len(g.Edges),
	}

	for _, n := range g.Nodes {
		lane := 0
		if n.Lane != nil {
			lane = *n.Lane
		}
		v := newVertex(m.nextHandle(), n.ID, n.DisplayLabel(), lane)
		m.vertices = append(m.vertices, v)
		m.cells = append(m.cells, v)
		m.mapper[n.ID] = v.handle
	}

	type pair struct{ from, to string }
	groups := make(map[pair]*Edge)
	ids := g.EdgeIDs()
	for i, ge := range g.Edges {
		ge.ID = ids[i]
		key := pair{ge.From, ge.To}
		e, ok := groups[key]
		if !ok {
			src, tgt := m.mustVertex(ge.From), m.mustVertex(ge.To)
			e = newEdge(m.nextHandle(), src, tgt)
			groups[key] = e
			m.edges = append(m.edges, e)
			m.cells = append(m.cells, e)
			src.source = append(src.source, e)
			tgt.target = append(tgt.target, e)
		}
		e.Edges = append(e.Edges, ge)
		e.IDs = append(e.IDs, ge.ID)
	}

	for _, id := range g.Roots {
		v, ok := m.Vertex(id)
		if !ok {
			return nil, fmt.Errorf("root %q: %w", id, ErrUnknownVertex)
		}
		m.roots = append(m.roots, v)
	}
	return m, nil
}

func (m *Model) nextHandle() Handle { return Handle(len(m.cells)) }

// mustVertex is only used after g.Validate has checked every endpoint.
func (m *Model) mustVertex(id string) *Vertex {
	return m.vertices[m.mapper[id]]
}

// Vertices returns all vertices in creation order. The slice must not be
// modified.
func (m *Model) Vertices() []*Vertex { return m.vertices }

// Edges returns all edge wrappers in creation order. The slice must not be
// modified.
func (m *Model) Edges() []*Edge { return m.edges }

// VertexCount returns the number of vertices.
func (m *Model) VertexCount() int { return len(m.vertices) }

// InputEdgeCount returns the number of input edges the wrappers represent.
func (m *Model) InputEdgeCount() int { return m.inputs }

// HasLanes reports whether the input assigned any vertex to a swimlane.
func (m *Model) HasLanes() bool { return m.lanes }

// Vertex resolves an input vertex ID.
func (m *Model) Vertex(id string) (*Vertex, bool) {
	h, ok := m.mapper[id]
	if !ok {
		return nil, false
	}
	return m.vertices[h], true
}

// Cell returns the cell with handle h, or nil if h is out of range.
func (m *Model) Cell(h Handle) Cell {
	if h < 0 || int(h) >= len(m.cells) {
		return nil
	}
	return m.cells[h]
}

// Roots returns the declared roots, possibly empty.
func (m *Model) Roots() []*Vertex { return m.roots }

// InputEdgeIDs returns the IDs of every wrapped input edge, wrapper by
// wrapper. Stages never add or drop wrapped edges, so the multiset returned
// is invariant across a run.
func (m *Model) InputEdgeIDs() []string {
	ids := make([]string, 0, m.inputs)
	for _, e := range m.edges {
		ids = append(ids, e.IDs...)
	}
	return ids
}

// DefaultRoots picks traversal roots when none are declared: the vertices
// with no incoming edge (self-loops ignored) in creation order. If every
// vertex has an incoming edge, the single vertex with the largest
// out-degree minus in-degree is returned, the first one winning ties.
func (m *Model) DefaultRoots() []*Vertex {
	return pickRoots(m.vertices, func(*Edge) bool { return true })
}

// LaneRoots picks traversal roots per swimlane, lanes in ascending order:
// for each lane, its vertices with no incoming edge from the same lane, or,
// if there are none, the lane vertex with the largest same-lane out-degree
// minus in-degree.
func (m *Model) LaneRoots() []*Vertex {
	byLane := make(map[int][]*Vertex)
	for _, v := range m.vertices {
		byLane[v.Lane] = append(byLane[v.Lane], v)
	}
	var roots []*Vertex
	for _, lane := range slices.Sorted(maps.Keys(byLane)) {
		sameLane := func(e *Edge) bool { return e.source.Lane == lane && e.target.Lane == lane }
		roots = append(roots, pickRoots(byLane[lane], sameLane)...)
	}
	return roots
}

func pickRoots(vs []*Vertex, counts func(*Edge) bool) []*Vertex {
	var roots []*Vertex
	var best *Vertex
	bestDiff := 0
	for _, v := range vs {
		in, out := 0, 0
		for _, e := range v.target {
			if !e.IsSelfLoop() && counts(e) {
				in++
			}
		}
		for _, e := range v.source {
			if !e.IsSelfLoop() && counts(e) {
				out++
			}
		}
		if in == 0 {
			roots = append(roots, v)
		}
		if diff := out - in; best == nil || diff > bestDiff {
			best, bestDiff = v, diff
		}
	}
	if len(roots) == 0 && best != nil {
		roots = []*Vertex{best}
	}
	return roots
}
