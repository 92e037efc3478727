package hierarchy

import "slices"

// Handle identifies a cell within its [Model]. Handles are assigned in
// creation order from a single counter shared by vertices and edges, so a
// handle is also the cell's index in [Model.Cell].
type Handle int

// Unranked is the rank value of a cell that has not been assigned a layer.
const Unranked = -1

// CellKind distinguishes the two cell variants.
type CellKind int

const (
	// KindVertex marks a *Vertex.
	KindVertex CellKind = iota
	// KindEdge marks an *Edge.
	KindEdge
)

// String returns "vertex" or "edge".
func (k CellKind) String() string {
	if k == KindEdge {
		return "edge"
	}
	return "vertex"
}

// Cell is a node of the layered hierarchy: either a *Vertex wrapping an input
// vertex, or an *Edge wrapping a group of parallel input edges. Edges that
// span several layers occupy one virtual routing slot per intermediate layer.
//
// The interface is sealed; type-switch on *Vertex and *Edge to reach the
// variant-specific fields.
type Cell interface {
	Handle() Handle
	Kind() CellKind
	IsVertex() bool
	IsEdge() bool

	// MinRank and MaxRank bound the layers the cell touches. Both are
	// Unranked until a ranking stage runs. For a vertex they are equal.
	MinRank() int
	MaxRank() int

	// NextLayerConnectedCells returns the cells one layer further from the
	// roots that connect to this cell at the given layer.
	NextLayerConnectedCells(layer int) []Cell

	// PreviousLayerConnectedCells returns the cells one layer closer to the
	// roots that connect to this cell at the given layer.
	PreviousLayerConnectedCells(layer int) []Cell

	cell()
}

// removeFirst deletes the first occurrence of e from list. A self-loop sits in
// both lists of its vertex, so only one occurrence may go at a time.
func removeFirst(list []*Edge, e *Edge) []*Edge {
	if i := slices.Index(list, e); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return list
}
