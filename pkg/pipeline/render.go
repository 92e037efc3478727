package pipeline

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/hierlayout/pkg/cache"
	"github.com/matzehuels/hierlayout/pkg/errors"
	"github.com/matzehuels/hierlayout/pkg/graph"
	"github.com/matzehuels/hierlayout/pkg/observability"
	"github.com/matzehuels/hierlayout/pkg/render/dot"
)

// Artifact formats accepted by Render.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidateFormat checks that format names a renderable artifact.
func ValidateFormat(format string) error {
	switch format {
	case FormatDOT, FormatSVG:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: dot, svg)", format)
}

// Render turns a layout result into a diagram. SVG output goes through the
// artifact cache since Graphviz rendering dominates the cost of a request.
func (r *Runner) Render(ctx context.Context, res *graph.Result, format string, opts dot.Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if res == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no result given")
	}

	src := dot.ToDOT(res, opts)
	if format == FormatDOT {
		return []byte(src), nil
	}

	resultData, err := json.Marshal(res)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode result")
	}
	key := r.Keyer.ArtifactKey(cache.Hash(resultData), cache.ArtifactKeyOpts{Format: format, Lanes: opts.Lanes})

	if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, cache.KeyTypeArtifact)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, cache.KeyTypeArtifact)

	svg, err := dot.RenderSVG(ctx, src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
	}
	if err := r.Cache.Set(ctx, key, svg, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, cache.KeyTypeArtifact, len(svg))
	}
	return svg, nil
}
