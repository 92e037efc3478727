package graph_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/hierlayout/pkg/graph"
)

func ExampleRead() {
	doc := `
nodes:
  - {id: api, lane: 0}
  - {id: db, lane: 1}
edges:
  - {from: api, to: db}
  - {from: db, to: api}
`
	g, err := graph.Read(strings.NewReader(doc), graph.FormatYAML)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(len(g.Nodes), "nodes,", len(g.Edges), "edges, lanes:", g.HasLanes())
	// Output: 2 nodes, 2 edges, lanes: true
}

func ExampleGraph_Validate() {
	g := &graph.Graph{
		Nodes: []graph.Node{{ID: "a"}},
		Edges: []graph.Edge{{ID: "e1", From: "a", To: "b"}},
	}
	fmt.Println(g.Validate())
	// Output: edge e1: to "b": unknown edge endpoint
}
