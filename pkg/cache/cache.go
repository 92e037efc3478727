// Package cache stores encoded layout results so identical runs can skip the
// pipeline.
//
// All backends implement [Cache]. [NullCache] disables caching, [FileCache]
// serves the CLI, and [RedisCache] and [MongoCache] back the API server when
// several instances share results.
//
// Keys come from a [Keyer]; the default one hashes the graph digest together
// with every option that changes the outcome of a run.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases connections held by the backend.
	Close() error
}

// Default time-to-live values. Results are a pure function of the graph and
// options, so they only expire to bound storage.
const (
	TTLResult   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Key types passed to observability hooks.
const (
	KeyTypeResult   = "result"
	KeyTypeArtifact = "artifact"
)

// ResultKeyOpts lists the run options that change a layout result.
type ResultKeyOpts struct {
	Stage          string `json:"stage"`
	Rank           bool   `json:"rank"`
	CoverUnreached bool   `json:"cover_unreached"`
}

// ArtifactKeyOpts lists the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Lanes  bool   `json:"lanes"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ResultKey returns the key for a layout result of the graph with the
	// given digest.
	ResultKey(graphHash string, opts ResultKeyOpts) string

	// ArtifactKey returns the key for a rendering of the result with the
	// given digest.
	ArtifactKey(resultHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components into "<type>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ResultKey(graphHash string, opts ResultKeyOpts) string {
	return Key(KeyTypeResult, graphHash, opts)
}

func (DefaultKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return Key(KeyTypeArtifact, resultHash, opts)
}
