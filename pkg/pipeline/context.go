package pipeline

import "context"

type runIDKey struct{}

// WithRunID attaches a run identifier to ctx. It is passed to pipeline hooks
// and logged with each run.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunID returns the identifier attached by WithRunID, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}
