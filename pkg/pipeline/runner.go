package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hierlayout/pkg/cache"
	"github.com/matzehuels/hierlayout/pkg/errors"
	"github.com/matzehuels/hierlayout/pkg/graph"
	"github.com/matzehuels/hierlayout/pkg/hierarchy"
	"github.com/matzehuels/hierlayout/pkg/observability"
)

// Runner executes layout runs with caching.
//
// A Runner holds no per-run state; one value can serve concurrent runs as
// long as its Cache is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a runner. A nil cache disables caching, a nil keyer uses
// the default keyer, and a nil logger uses the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Run lays out g and reports whether the result came from the cache. Edges
// without an ID are assigned one in place.
//
// Errors are *errors.Error values: INVALID_INPUT and INVALID_GRAPH for bad
// input, INVALID_STAGE for bad options, CANCELED when ctx ends between
// stages, INTERNAL_ERROR otherwise. Cache failures are logged and never fail
// a run.
func (r *Runner) Run(ctx context.Context, g *graph.Graph, opts Options) (res *graph.Result, hit bool, err error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	if err := checkInput(g, opts.Limits); err != nil {
		return nil, false, err
	}
	logger := opts.Logger

	runID := RunID(ctx)
	start := time.Now()
	observability.Pipeline().OnRunStart(ctx, runID, len(g.Nodes), len(g.Edges))
	defer func() {
		observability.Pipeline().OnRunComplete(ctx, runID, time.Since(start), err)
	}()

	key := r.Keyer.ResultKey(g.Hash(), opts.ResultKeyOpts(g))
	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key, logger); ok {
			logger.Debug("cache hit", "run", runID, "key", key)
			return cached, true, nil
		}
	}

	res, err = r.execute(ctx, g, opts, logger)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLResult); err != nil {
			logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cache.KeyTypeResult, len(data))
		}
	}

	logger.Info("layout complete",
		"vertices", len(res.Vertices),
		"edges", len(res.Edges),
		"reversed", res.ReversedCount(),
		"duration", time.Since(start))
	return res, false, nil
}

func (r *Runner) execute(ctx context.Context, g *graph.Graph, opts Options, logger *log.Logger) (*graph.Result, error) {
	m, err := hierarchy.NewModel(g)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "graph rejected")
	}
	stages, err := opts.Stages(g)
	if err != nil {
		return nil, err
	}

	var stats []graph.StageResult
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeCanceled, err, "run canceled before %s", s.Name())
		}

		observability.Pipeline().OnStageStart(ctx, s.Name(), m.VertexCount())
		t := time.Now()
		st, err := s.Execute(m)
		observability.Pipeline().OnStageComplete(ctx, s.Name(), st.Reversed, time.Since(t), err)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "stage %s", s.Name())
		}

		logger.Debug("stage complete",
			"stage", s.Name(),
			"reversed", st.Reversed,
			"visited", st.Visited,
			"passes", st.Passes,
			"duration", time.Since(t))
		stats = append(stats, graph.StageResult{
			Name:     s.Name(),
			Reversed: st.Reversed,
			Visited:  st.Visited,
			Passes:   st.Passes,
		})
	}

	res := m.Result()
	res.Stages = stats
	return res, nil
}

func (r *Runner) lookup(ctx context.Context, key string, logger *log.Logger) (*graph.Result, bool) {
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeResult)
		return nil, false
	}

	var res graph.Result
	if err := json.Unmarshal(data, &res); err != nil {
		logger.Warn("discarding corrupt cache entry", "key", key, "err", err)
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeResult)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cache.KeyTypeResult)
	return &res, true
}

// checkInput rejects documents that cannot be laid out.
func checkInput(g *graph.Graph, limits errors.Limits) error {
	if g == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no graph given")
	}
	if err := errors.ValidateSize(len(g.Nodes), len(g.Edges), limits); err != nil {
		return err
	}
	for _, n := range g.Nodes {
		if err := errors.ValidateID("node", n.ID); err != nil {
			return err
		}
	}
	for _, e := range g.Edges {
		if e.ID == "" {
			continue
		}
		if err := errors.ValidateID("edge", e.ID); err != nil {
			return err
		}
	}
	g.Normalize()
	if err := g.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGraph, err, "graph rejected")
	}
	return nil
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache == nil {
		return nil
	}
	return r.Cache.Close()
}

// IsCanceled reports whether err is a run interrupted by its context.
func IsCanceled(err error) bool {
	return errors.Is(err, errors.ErrCodeCanceled) ||
		stderrors.Is(err, context.Canceled) ||
		stderrors.Is(err, context.DeadlineExceeded)
}
