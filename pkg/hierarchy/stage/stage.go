package stage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/hierlayout/pkg/hierarchy"
)

var (
	// ErrNilModel is returned by every stage when handed a nil model.
	ErrNilModel = errors.New("model must not be nil")

	// ErrCyclicModel is returned by [LongestPathRanking] when the model still
	// contains a directed cycle.
	ErrCyclicModel = errors.New("model contains a cycle")

	// ErrUnknownStage is returned by [ForName] for an unrecognized name.
	ErrUnknownStage = errors.New("unknown stage")
)

// Stage names accepted by [ForName].
const (
	NameCycles    = "cycles"
	NameSwimlanes = "swimlanes"
	NameRank      = "rank"
)

// Stage is one step of the layout pipeline. A stage mutates the model in
// place and runs to completion once invoked.
type Stage interface {
	Name() string
	Execute(m *hierarchy.Model) (Stats, error)
}

// Stats reports what a stage did.
type Stats struct {
	// Reversed is the number of edge reversals performed.
	Reversed int
	// Visited is the number of distinct vertices the stage reached.
	Visited int
	// Passes is the number of traversals run.
	Passes int
}

// Options tunes the stages built by [ForName].
type Options struct {
	// CoverUnreached makes [SwimlaneOrdering] run a second pass over
	// vertices its first traversal did not reach.
	CoverUnreached bool
}

// ForName returns the stage registered under name.
func ForName(name string, opts Options) (Stage, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameCycles:
		return CycleRemover{}, nil
	case NameSwimlanes:
		return SwimlaneOrdering{CoverUnreached: opts.CoverUnreached}, nil
	case NameRank:
		return LongestPathRanking{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStage, name)
}
