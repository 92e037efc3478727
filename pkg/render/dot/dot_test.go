package dot

import (
	"strings"
	"testing"

	"github.com/matzehuels/hierlayout/pkg/graph"
)

func sample() *graph.Result {
	return &graph.Result{
		Vertices: []graph.VertexResult{
			{ID: "a", Lane: 0, Rank: 0},
			{ID: "b", Label: "Bee", Lane: 0, Rank: 1},
			{ID: "c", Lane: 1, Rank: 1},
		},
		Edges: []graph.EdgeResult{
			{IDs: []string{"e0"}, From: "a", To: "b", MinRank: 0, MaxRank: 1},
			{IDs: []string{"e1", "e2"}, From: "a", To: "c", Reversed: true, MinRank: 0, MaxRank: 1},
		},
		Acyclic: true,
	}
}

func TestToDOT(t *testing.T) {
	out := ToDOT(sample(), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=TB;",
		"subgraph cluster_lane_0 {",
		"subgraph cluster_lane_1 {",
		`"b" [label="Bee"];`,
		`{ rank=same; "b"; "c"; }`,
		`"a" -> "b";`,
		`"a" -> "c" [style=dashed, color=firebrick, penwidth=2];`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Error("ToDOT() should close the digraph")
	}
}

func TestToDOTSingleLaneNoClusters(t *testing.T) {
	r := sample()
	r.Vertices[2].Lane = 0

	if out := ToDOT(r, Options{}); strings.Contains(out, "cluster_lane") {
		t.Errorf("single-lane result should not be clustered:\n%s", out)
	}
	if out := ToDOT(r, Options{Lanes: true}); !strings.Contains(out, "cluster_lane_0") {
		t.Errorf("Lanes option should force clusters:\n%s", out)
	}
}

func TestToDOTUnranked(t *testing.T) {
	r := sample()
	for i := range r.Vertices {
		r.Vertices[i].Rank = -1
	}

	if out := ToDOT(r, Options{}); strings.Contains(out, "rank=same") {
		t.Errorf("unranked result should not pin ranks:\n%s", out)
	}
}

func TestToDOTDetailed(t *testing.T) {
	out := ToDOT(sample(), Options{Detailed: true, RankDir: "LR"})

	for _, want := range []string{
		"rankdir=LR;",
		`label="Bee\nlane: 0\nrank: 1"`,
		`label="e1,e2"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, out)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `width="62" height="116"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("normalizeViewBox() without viewBox = %s, want unchanged", got)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`C:\dir`, `"C:\\dir"`},
		{"two\nlines", `"two\nlines"`},
		{"café ☕", `"café ☕"`},
		{"tab\there", "\"tab\there\""},
	}
	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestToDOTEscapesIDs(t *testing.T) {
	r := &graph.Result{
		Vertices: []graph.VertexResult{
			{ID: "zürich", Lane: 0, Rank: -1},
			{ID: `q"x`, Lane: 0, Rank: -1},
		},
		Edges: []graph.EdgeResult{{IDs: []string{"e0"}, From: "zürich", To: `q"x`, MinRank: -1, MaxRank: -1}},
	}
	out := ToDOT(r, Options{})

	for _, want := range []string{`"zürich" [label="zürich"];`, `"zürich" -> "q\"x";`} {
		if !strings.Contains(out, want) {
			t.Errorf("ToDOT() missing %s\n%s", want, out)
		}
	}
	if strings.Contains(out, `\u`) || strings.Contains(out, `\x`) {
		t.Errorf("ToDOT() contains Go escapes:\n%s", out)
	}
}
