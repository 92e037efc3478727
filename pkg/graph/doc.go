// Package graph defines the documents exchanged with the layout pipeline.
//
// A [Graph] is the input: vertices (optionally assigned to swimlanes), directed
// edges (cycles, parallel edges and self-loops allowed), and optional
// traversal roots. A [Result] is the output: every vertex with its lane and
// rank, and every edge wrapper in its final, acyclic orientation.
//
// Both documents round-trip through JSON and YAML:
//
//	g, err := graph.ReadFile("deps.yaml")
//	if err != nil {
//	    return err
//	}
//	// ... run the pipeline ...
//	graph.WriteFile("deps.result.json", result)
//
// A minimal JSON document:
//
//	{
//	  "nodes": [{"id": "a", "lane": 0}, {"id": "b", "lane": 1}],
//	  "edges": [{"from": "b", "to": "a"}],
//	  "roots": ["a"]
//	}
//
// Edges without an "id" are assigned "e<index>" when read.
package graph
