// Package pipeline runs the layout stages over an input graph.
//
// The CLI and the HTTP API both go through [Runner], so caching, logging, and
// error codes behave the same at every entry point.
//
// # Stages
//
// A run builds a [hierarchy.Model] from the input and applies, in order:
//
//  1. Cycle removal: [stage.CycleRemover], or [stage.SwimlaneOrdering] when
//     the graph assigns lanes (Stage "auto") or when asked explicitly.
//  2. Ranking (optional): [stage.LongestPathRanking].
//
// The context is checked between stages; a stage that has started runs to
// completion.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, hit, err := runner.Run(ctx, g, pipeline.Options{Rank: true})
//
// [hierarchy.Model]: github.com/matzehuels/hierlayout/pkg/hierarchy.Model
// [stage.CycleRemover]: github.com/matzehuels/hierlayout/pkg/hierarchy/stage.CycleRemover
// [stage.SwimlaneOrdering]: github.com/matzehuels/hierlayout/pkg/hierarchy/stage.SwimlaneOrdering
// [stage.LongestPathRanking]: github.com/matzehuels/hierlayout/pkg/hierarchy/stage.LongestPathRanking
package pipeline

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hierlayout/pkg/cache"
	"github.com/matzehuels/hierlayout/pkg/errors"
	"github.com/matzehuels/hierlayout/pkg/graph"
	"github.com/matzehuels/hierlayout/pkg/hierarchy/stage"
)

// StageAuto selects the swimlane stage for graphs with lanes and plain cycle
// removal otherwise.
const StageAuto = "auto"

// DefaultStage is the cycle-removal stage used when none is given.
const DefaultStage = StageAuto

// ValidStages is the set of accepted cycle-removal stage names.
var ValidStages = map[string]bool{
	StageAuto:           true,
	stage.NameCycles:    true,
	stage.NameSwimlanes: true,
}

// ValidateStage checks that name selects a cycle-removal stage.
func ValidateStage(name string) error {
	if !ValidStages[name] {
		return errors.New(errors.ErrCodeInvalidStage, "invalid stage: %q (must be one of: auto, cycles, swimlanes)", name)
	}
	return nil
}

// Options configures a layout run. The JSON form is accepted by the API.
type Options struct {
	// Stage picks the cycle-removal stage: "auto", "cycles" or "swimlanes".
	Stage string `json:"stage,omitempty"`

	// Rank runs the ranking stage after cycle removal.
	Rank bool `json:"rank,omitempty"`

	// CoverUnreached lets the swimlane stage run a second pass over vertices
	// its roots do not reach.
	CoverUnreached bool `json:"cover_unreached,omitempty"`

	// Refresh skips the cache lookup; the fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Limits bounds the accepted graph size.
	Limits errors.Limits `json:"-"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`
}

// SetDefaults fills empty fields and normalizes the stage name.
func (o *Options) SetDefaults() {
	o.Stage = strings.ToLower(strings.TrimSpace(o.Stage))
	if o.Stage == "" {
		o.Stage = DefaultStage
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks the options.
func (o *Options) Validate() error {
	o.SetDefaults()
	return ValidateStage(o.Stage)
}

// ResolveStage returns the concrete cycle-removal stage name for g.
func (o *Options) ResolveStage(g *graph.Graph) string {
	if o.Stage != StageAuto && o.Stage != "" {
		return o.Stage
	}
	if g != nil && g.HasLanes() {
		return stage.NameSwimlanes
	}
	return stage.NameCycles
}

// Stages builds the stage sequence for g.
func (o *Options) Stages(g *graph.Graph) ([]stage.Stage, error) {
	first, err := stage.ForName(o.ResolveStage(g), stage.Options{CoverUnreached: o.CoverUnreached})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStage, err, "resolve stage")
	}
	stages := []stage.Stage{first}
	if o.Rank {
		stages = append(stages, stage.LongestPathRanking{})
	}
	return stages, nil
}

// ResultKeyOpts returns the cache key options for a run over g.
func (o *Options) ResultKeyOpts(g *graph.Graph) cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		Stage:          o.ResolveStage(g),
		Rank:           o.Rank,
		CoverUnreached: o.CoverUnreached,
	}
}
