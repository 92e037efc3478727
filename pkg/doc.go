// Package pkg provides the libraries behind hierlayout, the cycle-removal and
// swimlane-ordering stage of a hierarchical (layered) graph layout.
//
// # Overview
//
// A layered drawing needs an acyclic graph in which every edge points down.
// The pkg directory is organized around that job:
//
//  1. [graph] - Input and output documents (JSON/YAML), validation, hashing
//  2. [hierarchy] - The layout model: vertices, edge wrappers, DFS traversal
//  3. [hierarchy/stage] - Cycle removal, swimlane ordering, longest-path ranking
//  4. [pipeline] - Orchestration (validate → model → stages → result) with caching
//  5. [render/dot] - Graphviz DOT and SVG diagrams of a result
//  6. [cache], [errors], [observability], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	graph document (JSON/YAML)
//	         ↓
//	    [graph] package (decode + validate)
//	         ↓
//	    [hierarchy] package (model with vertex and edge cells)
//	         ↓
//	    [hierarchy/stage] package (cycles or swimlanes, then rank)
//	         ↓
//	    [graph.Result] → JSON/YAML, DOT or SVG
//
// # Quick Start
//
//	g, _ := graph.ReadFile("services.yaml")
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, _, err := runner.Run(ctx, g, pipeline.Options{Rank: true})
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/hierlayout/pkg/graph
// [hierarchy]: https://pkg.go.dev/github.com/matzehuels/hierlayout/pkg/hierarchy
// [hierarchy/stage]: https://pkg.go.dev/github.com/matzehuels/hierlayout/pkg/hierarchy/stage
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/hierlayout/pkg/pipeline
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/hierlayout/pkg/render/dot
// [cache]: https://pkg.go.dev/github.com/matzehuels/hierlayout/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/hierlayout/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/hierlayout/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/hierlayout/pkg/buildinfo
// [graph.Result]: https://pkg.go.dev/github.com/matzehuels/hierlayout/pkg/graph#Result
package pkg
