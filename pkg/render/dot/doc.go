// Package dot exports layout results as Graphviz diagrams.
//
// The output is a diagnostic view of what the pipeline did, not a final
// drawing: swimlanes become clusters, reversed edges are dashed, and assigned
// ranks are pinned with rank=same groups so the rows Graphviz draws match the
// computed layers.
//
//	src := dot.ToDOT(result, dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(ctx, src)
//
// [RenderSVG] uses github.com/goccy/go-graphviz, which embeds Graphviz as a
// WebAssembly module; no system installation is needed.
package dot
