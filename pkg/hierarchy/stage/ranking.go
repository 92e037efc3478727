package stage

import "github.com/matzehuels/hierlayout/pkg/hierarchy"

// LongestPathRanking assigns every vertex to a layer and every edge to the
// range of layers it spans.
//
// Vertices are ranked by longest path from the sources (Kahn's algorithm):
// sources sit on rank 0 and every other vertex one below its lowest parent.
// Each edge then gets MinRank = source rank and MaxRank = target rank, which
// allocates one virtual routing slot per intermediate layer. Self-loops are
// ignored for ranking and end up with MinRank == MaxRank.
//
// The model must be acyclic; run [CycleRemover] or [SwimlaneOrdering] first.
// Existing ranks are overwritten.
type LongestPathRanking struct{}

// Name returns "rank".
func (LongestPathRanking) Name() string { return NameRank }

// Execute ranks the model. Stats.Visited is the number of ranked vertices
// and Stats.Reversed is always zero.
func (LongestPathRanking) Execute(m *hierarchy.Model) (Stats, error) {
	if m == nil {
		return Stats{}, ErrNilModel
	}
	if !m.Acyclic() {
		return Stats{}, ErrCyclicModel
	}

	vertices := m.Vertices()
	inDegree := make(map[hierarchy.Handle]int, len(vertices))
	rank := make(map[hierarchy.Handle]int, len(vertices))
	queue := make([]*hierarchy.Vertex, 0, len(vertices))

	for _, v := range vertices {
		d := 0
		for _, e := range v.ConnectsAsTarget() {
			if !e.IsSelfLoop() {
				d++
			}
		}
		inDegree[v.Handle()] = d
		if d == 0 {
			queue = append(queue, v)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, e := range curr.ConnectsAsSource() {
			if e.IsSelfLoop() {
				continue
			}
			child := e.Target()
			if r := rank[curr.Handle()] + 1; r > rank[child.Handle()] {
				rank[child.Handle()] = r
			}
			inDegree[child.Handle()]--
			if inDegree[child.Handle()] == 0 {
				queue = append(queue, child)
			}
		}
	}

	for _, v := range vertices {
		v.SetRank(rank[v.Handle()])
	}
	for _, e := range m.Edges() {
		e.SetRanks(e.Source().Rank(), e.Target().Rank())
	}
	return Stats{Visited: len(vertices), Passes: 1}, nil
}
