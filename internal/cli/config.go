package cli

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hierlayout/internal/server"
	"github.com/matzehuels/hierlayout/pkg/errors"
	"github.com/matzehuels/hierlayout/pkg/pipeline"
)

// configFile is the file name looked up in the config directory.
const configFile = appName + ".toml"

// Cache backends selectable in [cache].
const (
	BackendFile  = "file"
	BackendNone  = "none"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config is the hierlayout.toml document. Command-line flags override it.
//
//	[layout]
//	stage = "swimlanes"
//	rank = true
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	key_prefix = "staging:"
//
//	[server]
//	addr = ":9090"
//	request_timeout = "10s"
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig holds pipeline defaults.
type LayoutConfig struct {
	Stage string `toml:"stage"`
	Rank  bool   `toml:"rank"`
	Cover bool   `toml:"cover"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend         string `toml:"backend"`
	Dir             string `toml:"dir"`
	RedisURL        string `toml:"redis_url"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`

	// KeyPrefix scopes every cache key, so deployments can share a backend.
	KeyPrefix string `toml:"key_prefix"`
}

// ServerConfig configures "hierlayout serve".
type ServerConfig struct {
	Addr           string        `toml:"addr"`
	MaxBodyBytes   int64         `toml:"max_body_bytes"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	MaxNodes       int           `toml:"max_nodes"`
	MaxEdges       int           `toml:"max_edges"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{Stage: pipeline.DefaultStage},
		Cache:  CacheConfig{Backend: BackendFile},
		Server: ServerConfig{Addr: server.DefaultAddr},
	}
}

// LoadConfig reads the config file at path. An empty path means the default
// location, where a missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail only when used.
func (c *Config) Validate() error {
	c.Layout.Stage = strings.ToLower(strings.TrimSpace(c.Layout.Stage))
	if c.Layout.Stage == "" {
		c.Layout.Stage = pipeline.DefaultStage
	}
	if err := pipeline.ValidateStage(c.Layout.Stage); err != nil {
		return err
	}

	switch c.Cache.Backend {
	case "", BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache backend %q needs redis_url", BackendRedis)
		}
	case BackendMongo:
		if c.Cache.MongoURI == "" {
			return fmt.Errorf("cache backend %q needs mongo_uri", BackendMongo)
		}
	default:
		return fmt.Errorf("unknown cache backend %q (must be one of: file, none, redis, mongo)", c.Cache.Backend)
	}

	if c.Server.MaxNodes < 0 || c.Server.MaxEdges < 0 {
		return fmt.Errorf("server limits must not be negative")
	}
	return nil
}

// Options returns pipeline options seeded from [layout].
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{
		Stage:          c.Layout.Stage,
		Rank:           c.Layout.Rank,
		CoverUnreached: c.Layout.Cover,
	}
}

// ServerOptions converts [server] into the server's own config.
func (c *Config) ServerOptions() server.Config {
	return server.Config{
		Addr:           c.Server.Addr,
		MaxBodyBytes:   c.Server.MaxBodyBytes,
		RequestTimeout: c.Server.RequestTimeout,
		Limits:         errors.Limits{MaxNodes: c.Server.MaxNodes, MaxEdges: c.Server.MaxEdges},
	}
}
