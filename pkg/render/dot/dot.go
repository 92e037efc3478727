package dot

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/hierlayout/pkg/graph"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds lane and rank to node labels and edge IDs to edges.
	Detailed bool

	// Lanes groups vertices into one cluster per swimlane. When false,
	// clusters are drawn only if the result uses more than one lane.
	Lanes bool

	// RankDir is the Graphviz rankdir. Defaults to "TB".
	RankDir string
}

// ToDOT converts a layout result to Graphviz DOT source.
//
// Edges are drawn in their final orientation; reversed edges are dashed.
// Vertices sharing a rank are pinned to the same Graphviz rank when the
// result carries ranks.
func ToDOT(r *graph.Result, opts Options) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	lanes := make(map[int][]graph.VertexResult)
	for _, v := range r.Vertices {
		lanes[v.Lane] = append(lanes[v.Lane], v)
	}

	if opts.Lanes || len(lanes) > 1 {
		for _, lane := range slices.Sorted(maps.Keys(lanes)) {
			fmt.Fprintf(&buf, "  subgraph cluster_lane_%d {\n", lane)
			fmt.Fprintf(&buf, "    label=%s;\n", quote(fmt.Sprintf("lane %d", lane)))
			buf.WriteString("    style=\"rounded,dashed\";\n")
			for _, v := range lanes[lane] {
				fmt.Fprintf(&buf, "    %s [label=%s];\n", quote(v.ID), quote(fmtLabel(v, opts.Detailed)))
			}
			buf.WriteString("  }\n")
		}
	} else {
		for _, v := range r.Vertices {
			fmt.Fprintf(&buf, "  %s [label=%s];\n", quote(v.ID), quote(fmtLabel(v, opts.Detailed)))
		}
	}

	if ranks := rankGroups(r); len(ranks) > 0 {
		buf.WriteString("\n")
		for _, rank := range slices.Sorted(maps.Keys(ranks)) {
			quoted := make([]string, len(ranks[rank]))
			for i, id := range ranks[rank] {
				quoted[i] = quote(id)
			}
			fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(quoted, "; "))
		}
	}

	buf.WriteString("\n")
	for _, e := range r.Edges {
		attrs := fmtEdgeAttrs(e, opts.Detailed)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %s -> %s;\n", quote(e.From), quote(e.To))
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quote(e.From), quote(e.To), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// dotEscaper escapes a string for a DOT double-quoted ID. Line breaks become
// the \n escape so multi-line labels stay on one source line.
var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", `\n`, "\n", `\n`, "\r", `\n`)

// quote returns s as a DOT double-quoted string. Other characters, including
// non-ASCII ones, are written as is since DOT input is UTF-8.
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

func fmtLabel(v graph.VertexResult, detailed bool) string {
	label := v.Label
	if label == "" {
		label = v.ID
	}
	if !detailed {
		return label
	}
	parts := []string{label, fmt.Sprintf("lane: %d", v.Lane)}
	if v.Rank >= 0 {
		parts = append(parts, fmt.Sprintf("rank: %d", v.Rank))
	}
	return strings.Join(parts, "\n")
}

func fmtEdgeAttrs(e graph.EdgeResult, detailed bool) []string {
	var attrs []string
	if e.Reversed {
		attrs = append(attrs, "style=dashed", "color=firebrick")
	}
	if len(e.IDs) > 1 {
		attrs = append(attrs, fmt.Sprintf("penwidth=%d", min(len(e.IDs), 5)))
	}
	if detailed {
		attrs = append(attrs, "label="+quote(strings.Join(e.IDs, ",")))
	}
	return attrs
}

// rankGroups returns vertex IDs by rank, or nil when the result is unranked.
func rankGroups(r *graph.Result) map[int][]string {
	groups := make(map[int][]string)
	for _, v := range r.Vertices {
		if v.Rank < 0 {
			return nil
		}
		groups[v.Rank] = append(groups[v.Rank], v.ID)
	}
	return groups
}

// RenderSVG renders DOT source to SVG with the embedded Graphviz runtime.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// width and height match the viewBox, so the image scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
