// Package hierarchy provides the internal graph model of the hierarchical
// ("Sugiyama-style") layout pipeline.
//
// # Overview
//
// A [Model] wraps an input [graph.Graph]: every input vertex becomes a
// [*Vertex], and every group of parallel input edges with the same source and
// target becomes one [*Edge]. Both implement the sealed [Cell] interface, so
// later stages can treat an edge that spans several layers as a chain of
// virtual routing nodes.
//
// Cells are addressed by [Handle], a dense index assigned at creation time.
// The vertex mapper resolves input vertex IDs to handles.
//
// # Traversal
//
// [Model.Visit] is the depth-first traversal primitive shared by the pipeline
// stages. It reports every step to a [Visitor] together with whether the
// reached vertex is already on the current path. An edge leading to a vertex
// on the path is a back-edge: reversing it removes the cycle it closes.
// [Outgoing] walks edges source to target; [SwimlaneExpand] additionally walks
// edges that enter a vertex from a higher swimlane.
//
// # Reversal
//
// [Edge.Invert] swaps source and target and toggles the reversed flag.
// [Reverse] and [ReverseAcrossLanes] also move the edge between the
// endpoints' source and target lists, for the two ways a traversal can
// encounter an edge that must be flipped.
//
// # Ranks
//
// Rank 0 is the top layer. An edge from rank r to rank r+k with k>1 passes
// through k-1 intermediate layers; [Cell.NextLayerConnectedCells] and
// [Cell.PreviousLayerConnectedCells] expose that chain.
//
// # Concurrency
//
// A Model is owned by one layout run. Stages mutate it in sequence; it is not
// safe for concurrent use.
//
// [graph.Graph]: github.com/matzehuels/hierlayout/pkg/graph
package hierarchy
