package pipeline

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/hierlayout/pkg/cache"
	"github.com/matzehuels/hierlayout/pkg/errors"
	"github.com/matzehuels/hierlayout/pkg/graph"
	"github.com/matzehuels/hierlayout/pkg/observability"
	"github.com/matzehuels/hierlayout/pkg/render/dot"
)

func triangle() *graph.Graph {
	return &graph.Graph{
		Nodes: []graph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []graph.Edge{
			{From: "a", To: "b"},
			{From: "b", To: "c"},
			{From: "c", To: "a"},
		},
		Roots: []string{"a"},
	}
}

func laned() *graph.Graph {
	return &graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", Lane: graph.LaneOf(0)},
			{ID: "b", Lane: graph.LaneOf(1)},
		},
		Edges: []graph.Edge{{From: "b", To: "a"}},
	}
}

// memCache is an in-memory Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func TestValidateStage(t *testing.T) {
	tests := []struct {
		stage   string
		wantErr bool
	}{
		{"auto", false},
		{"cycles", false},
		{"swimlanes", false},
		{"rank", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStage(tt.stage)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStage(%q) error = %v, wantErr %v", tt.stage, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidStage) {
			t.Errorf("ValidateStage(%q) code = %v, want %v", tt.stage, errors.GetCode(err), errors.ErrCodeInvalidStage)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if o.Stage != StageAuto {
		t.Errorf("Stage = %q, want %q", o.Stage, StageAuto)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	o = Options{Stage: " Swimlanes "}
	if err := o.Validate(); err != nil || o.Stage != "swimlanes" {
		t.Errorf("Validate() = %v, Stage = %q", err, o.Stage)
	}
}

func TestResolveStage(t *testing.T) {
	tests := []struct {
		name  string
		stage string
		g     *graph.Graph
		want  string
	}{
		{"auto without lanes", StageAuto, triangle(), "cycles"},
		{"auto with lanes", StageAuto, laned(), "swimlanes"},
		{"explicit cycles on lanes", "cycles", laned(), "cycles"},
		{"explicit swimlanes", "swimlanes", triangle(), "swimlanes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Options{Stage: tt.stage}
			if got := o.ResolveStage(tt.g); got != tt.want {
				t.Errorf("ResolveStage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRun(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	res, hit, err := r.Run(context.Background(), triangle(), Options{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if hit {
		t.Error("NullCache run should not hit")
	}
	if !res.Acyclic {
		t.Error("result should be acyclic")
	}
	if got := res.ReversedCount(); got != 1 {
		t.Errorf("ReversedCount() = %d, want 1", got)
	}
	if len(res.Stages) != 1 || res.Stages[0].Name != "cycles" {
		t.Errorf("Stages = %+v, want [cycles]", res.Stages)
	}
	for _, v := range res.Vertices {
		if v.Rank != -1 {
			t.Errorf("vertex %s rank = %d, want -1 without ranking", v.ID, v.Rank)
		}
	}
}

func TestRunWithRanking(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	res, _, err := r.Run(context.Background(), triangle(), Options{Rank: true})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(res.Stages) != 2 || res.Stages[1].Name != "rank" {
		t.Errorf("Stages = %+v, want [cycles rank]", res.Stages)
	}

	rank := map[string]int{}
	for _, v := range res.Vertices {
		rank[v.ID] = v.Rank
	}
	for _, e := range res.Edges {
		if rank[e.From] >= rank[e.To] {
			t.Errorf("edge %v: rank %d -> %d does not point down", e.IDs, rank[e.From], rank[e.To])
		}
	}
}

func TestRunSwimlanes(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	res, _, err := r.Run(context.Background(), laned(), Options{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.Stages[0].Name != "swimlanes" {
		t.Errorf("stage = %q, want swimlanes", res.Stages[0].Name)
	}
	e := res.Edges[0]
	if e.From != "a" || e.To != "b" || !e.Reversed {
		t.Errorf("edge = %+v, want a->b reversed", e)
	}
}

func TestRunCaches(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()

	first, hit, err := r.Run(ctx, triangle(), Options{})
	if err != nil || hit {
		t.Fatalf("first Run() hit = %v, err = %v", hit, err)
	}
	second, hit, err := r.Run(ctx, triangle(), Options{})
	if err != nil || !hit {
		t.Fatalf("second Run() hit = %v, err = %v", hit, err)
	}
	if first.ReversedCount() != second.ReversedCount() || len(first.Edges) != len(second.Edges) {
		t.Error("cached result differs from computed result")
	}

	if _, hit, _ := r.Run(ctx, triangle(), Options{Rank: true}); hit {
		t.Error("different options should miss")
	}
	if _, hit, _ := r.Run(ctx, triangle(), Options{Refresh: true}); hit {
		t.Error("Refresh should skip the lookup")
	}
	if c.sets != 3 {
		t.Errorf("cache sets = %d, want 3", c.sets)
	}
}

func TestRunCorruptCacheEntry(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	g := triangle()
	g.Normalize()
	o := Options{}
	o.SetDefaults()
	key := r.Keyer.ResultKey(g.Hash(), o.ResultKeyOpts(g))
	c.data[key] = []byte("{broken")

	_, hit, err := r.Run(context.Background(), triangle(), Options{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if hit {
		t.Error("corrupt entry should be treated as a miss")
	}
}

func TestRunErrors(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		g    *graph.Graph
		opts Options
		code errors.Code
	}{
		{"nil graph", context.Background(), nil, Options{}, errors.ErrCodeInvalidInput},
		{"bad stage", context.Background(), triangle(), Options{Stage: "magic"}, errors.ErrCodeInvalidStage},
		{"unknown endpoint", context.Background(), &graph.Graph{
			Nodes: []graph.Node{{ID: "a"}},
			Edges: []graph.Edge{{From: "a", To: "zz"}},
		}, Options{}, errors.ErrCodeInvalidGraph},
		{"control char id", context.Background(), &graph.Graph{
			Nodes: []graph.Node{{ID: "a\x01"}},
		}, Options{}, errors.ErrCodeInvalidGraph},
		{"too large", context.Background(), triangle(), Options{Limits: errors.Limits{MaxNodes: 2}}, errors.ErrCodeInvalidInput},
		{"canceled", canceled, triangle(), Options{}, errors.ErrCodeCanceled},
	}

	r := NewRunner(nil, nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := r.Run(tt.ctx, tt.g, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Run() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestIsCanceled(t *testing.T) {
	if !IsCanceled(errors.New(errors.ErrCodeCanceled, "x")) {
		t.Error("CANCELED error should be reported as canceled")
	}
	if !IsCanceled(context.DeadlineExceeded) {
		t.Error("deadline should be reported as canceled")
	}
	if IsCanceled(errors.New(errors.ErrCodeInternal, "x")) {
		t.Error("internal error is not a cancellation")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	runID  string
	stages []string
}

func (h *recordingHooks) OnRunStart(_ context.Context, runID string, _, _ int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.runID = runID
}

func (h *recordingHooks) OnStageComplete(_ context.Context, stage string, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stages = append(h.stages, stage)
}

func TestRunEmitsHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	t.Cleanup(observability.Reset)

	ctx := WithRunID(context.Background(), "run-42")
	if _, _, err := NewRunner(nil, nil, nil).Run(ctx, triangle(), Options{Rank: true}); err != nil {
		t.Fatal(err)
	}

	if h.runID != "run-42" {
		t.Errorf("run ID = %q, want run-42", h.runID)
	}
	if len(h.stages) != 2 || h.stages[0] != "cycles" || h.stages[1] != "rank" {
		t.Errorf("stages = %v, want [cycles rank]", h.stages)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"dot", "svg"} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) error: %v", f, err)
		}
	}
	for _, f := range []string{"png", "SVG", ""} {
		if err := ValidateFormat(f); !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) error = %v, want %v", f, err, errors.ErrCodeInvalidFormat)
		}
	}
}

func TestRenderDOT(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, _, err := r.Run(context.Background(), triangle(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	out, err := r.Render(context.Background(), res, FormatDOT, dot.Options{})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if string(out) != dot.ToDOT(res, dot.Options{}) {
		t.Error("Render(dot) should return ToDOT output")
	}

	if _, err := r.Render(context.Background(), nil, FormatDOT, dot.Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Render(nil) error = %v, want %v", err, errors.ErrCodeInvalidInput)
	}
}

func TestRunnerClose(t *testing.T) {
	if err := NewRunner(cache.NewNullCache(), nil, nil).Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
