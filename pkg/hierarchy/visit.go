package hierarchy

import "slices"

// Visit describes one step of a depth-first traversal.
type Visit struct {
	// Parent is the vertex the traversal came from; nil for a root.
	Parent *Vertex
	// Node is the vertex reached.
	Node *Vertex
	// Edge is the edge followed from Parent to Node; nil for a root.
	Edge *Edge
	// Layer is the depth of Node in the traversal tree.
	Layer int
	// Seen reports that Node was reached before; its edges are not expanded
	// again.
	Seen bool
	// OnPath reports that Node is on the current traversal path, i.e. it is
	// Parent or an ancestor of Parent. Following Edge closes a cycle.
	OnPath bool
}

// Visitor is called once for every step of a traversal. Visitors may reverse
// the edge they are handed; the traversal has already snapshotted the list it
// iterates.
type Visitor func(Visit)

// Step is one way out of a vertex: follow Edge to reach Next.
type Step struct {
	Edge *Edge
	Next *Vertex
}

// Expander lists the steps a traversal may take from v.
type Expander func(v *Vertex) []Step

// Outgoing follows edges in their current direction, source to target.
func Outgoing(v *Vertex) []Step {
	steps := make([]Step, len(v.source))
	for i, e := range v.source {
		steps[i] = Step{Edge: e, Next: e.target}
	}
	return steps
}

// SwimlaneExpand follows outgoing edges that stay in the same lane or move to
// a higher one, then incoming edges whose source sits in a higher lane. The
// second group is walked against its direction, which is how edges pointing
// back into a lower lane are discovered.
func SwimlaneExpand(v *Vertex) []Step {
	steps := make([]Step, 0, len(v.source)+len(v.target))
	for _, e := range v.source {
		if v.Lane <= e.target.Lane {
			steps = append(steps, Step{Edge: e, Next: e.target})
		}
	}
	for _, e := range v.target {
		if v.Lane < e.source.Lane {
			steps = append(steps, Step{Edge: e, Next: e.source})
		}
	}
	return steps
}

// VisitOptions configures [Model.Visit].
type VisitOptions struct {
	// Roots are the traversal entry points, visited in order. Nil entries
	// are skipped.
	Roots []*Vertex

	// Seen holds vertices already handled. Vertices in Seen are reported
	// with Seen=true and not expanded. If nil a fresh set is created; the
	// set in use is returned by Visit so a later traversal can continue
	// where this one stopped.
	Seen map[Handle]bool

	// Expand lists the steps out of a vertex. Defaults to [Outgoing].
	Expand Expander
}

// Visit runs a depth-first traversal from each root in turn and calls fn for
// every root and every edge followed. The on-path set is maintained
// explicitly, so ancestor tests do not depend on shared parent pointers.
func (m *Model) Visit(opts VisitOptions, fn Visitor) map[Handle]bool {
	seen := opts.Seen
	if seen == nil {
		seen = make(map[Handle]bool, len(m.vertices))
	}
	expand := opts.Expand
	if expand == nil {
		expand = Outgoing
	}
	onPath := make(map[Handle]bool)

	var dfs func(parent, node *Vertex, via *Edge, layer int)
	dfs = func(parent, node *Vertex, via *Edge, layer int) {
		if seen[node.handle] {
			fn(Visit{Parent: parent, Node: node, Edge: via, Layer: layer, Seen: true, OnPath: onPath[node.handle]})
			return
		}
		seen[node.handle] = true
		fn(Visit{Parent: parent, Node: node, Edge: via, Layer: layer})

		onPath[node.handle] = true
		for _, s := range slices.Clone(expand(node)) {
			dfs(node, s.Next, s.Edge, layer+1)
		}
		delete(onPath, node.handle)
	}

	for _, r := range opts.Roots {
		if r != nil {
			dfs(nil, r, nil, 0)
		}
	}
	return seen
}
