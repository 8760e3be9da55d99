// Package config loads statcard settings.
//
// Sources are layered, later ones overriding earlier ones:
//
//  1. [Default] values
//  2. an optional config file, TOML or YAML chosen by extension
//  3. a .env file in the working directory (never overriding the process
//     environment)
//  4. environment variables (see [Env])
//  5. command-line flags, applied by the caller after [Load]
//
// [Config.Validate] reports the first problem as an INVALID_CONFIG error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/statcard/pkg/cache"
	errs "github.com/matzehuels/statcard/pkg/errors"
	"github.com/matzehuels/statcard/pkg/integrations/github"
	"github.com/matzehuels/statcard/pkg/pipeline"
	"github.com/matzehuels/statcard/pkg/rank"
	"github.com/matzehuels/statcard/pkg/render/card"
	"github.com/matzehuels/statcard/pkg/server"
	"github.com/matzehuels/statcard/pkg/snapshot"
	"github.com/matzehuels/statcard/pkg/stats"
	"github.com/matzehuels/statcard/pkg/theme"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Activity modes, matching [stats.ActivitySource] values.
const (
	ActivityLive        = string(stats.ActivityLive)
	ActivityPlaceholder = string(stats.ActivityPlaceholder)
	ActivityNone        = string(stats.ActivityNone)
)

// Config is the complete statcard configuration.
type Config struct {
	GitHub   GitHub         `toml:"github" yaml:"github"`
	Cache    Cache          `toml:"cache" yaml:"cache"`
	Card     Card           `toml:"card" yaml:"card"`
	Server   server.Options `toml:"server" yaml:"server"`
	Snapshot Snapshot       `toml:"snapshot" yaml:"snapshot"`
	Sync     Sync           `toml:"sync" yaml:"sync"`
	Stats    stats.Policy   `toml:"stats" yaml:"stats"`
	Rank     rank.Weights   `toml:"rank" yaml:"rank"`
	Themes   []theme.Theme  `toml:"themes" yaml:"themes"`
}

// GitHub configures the API client.
type GitHub struct {
	Token    string `toml:"token" yaml:"token"`
	BaseURL  string `toml:"base_url" yaml:"base_url"`
	Activity string `toml:"activity" yaml:"activity"` // live, placeholder or none
}

// Cache configures the response and card cache.
type Cache struct {
	Backend string        `toml:"backend" yaml:"backend"` // file, redis or none
	Dir     string        `toml:"dir" yaml:"dir"`
	URL     string        `toml:"url" yaml:"url"`
	TTL     time.Duration `toml:"ttl" yaml:"ttl"`
}

// Card holds rendering defaults.
type Card struct {
	Theme       string `toml:"theme" yaml:"theme"`
	Layout      string `toml:"layout" yaml:"layout"`
	TopN        int    `toml:"top_n" yaml:"top_n"`
	ShowUpdated bool   `toml:"show_updated" yaml:"show_updated"`
}

// Snapshot selects where precomputed snapshots live. An empty backend
// disables snapshots: cards are fetched live.
type Snapshot struct {
	Backend string `toml:"backend" yaml:"backend"` // file, redis, mongo or postgres
	Dir     string `toml:"dir" yaml:"dir"`
	URL     string `toml:"url" yaml:"url"`

	// MaxAge is how old a stored snapshot may be before it is refetched.
	// 0 serves any stored snapshot.
	MaxAge time.Duration `toml:"max_age" yaml:"max_age"`

	// Fallback fetches live when no usable snapshot is stored.
	Fallback bool `toml:"fallback" yaml:"fallback"`
}

// Enabled reports whether a snapshot backend is configured.
func (s Snapshot) Enabled() bool { return s.Backend != "" }

// Store returns the store settings for [snapshot.Open].
func (s Snapshot) Store() snapshot.Config {
	return snapshot.Config{Backend: s.Backend, Dir: s.Dir, URL: s.URL}
}

// Sync configures the periodic snapshot job.
type Sync struct {
	Users    []string      `toml:"users" yaml:"users"`
	Interval time.Duration `toml:"interval" yaml:"interval"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		GitHub: GitHub{
			BaseURL:  github.DefaultBaseURL,
			Activity: ActivityLive,
		},
		Cache: Cache{
			Backend: CacheFile,
			TTL:     cache.TTLCard,
		},
		Card: Card{
			Theme:  pipeline.DefaultTheme,
			Layout: string(pipeline.DefaultLayout),
			TopN:   pipeline.DefaultTopN,
		},
		Server: server.Options{
			Addr:         server.DefaultAddr,
			Strict:       true,
			CacheControl: server.DefaultCacheControl,
			Timeout:      server.DefaultTimeout,
		},
		Snapshot: Snapshot{Fallback: true},
		Sync:     Sync{Interval: snapshot.DefaultSyncInterval},
		Stats:    stats.DefaultPolicy(),
		Rank:     rank.DefaultWeights,
	}
}

// Load builds a Config from defaults, the file at path (if non-empty), a
// .env file and the environment. Flags are applied by the caller.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.ReadFile(path); err != nil {
			return cfg, err
		}
	}
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read .env")
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ReadFile merges the file at path into c. The format follows the
// extension: .toml, or .yaml/.yml.
func (c *Config) ReadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unsupported config format %q (want .toml, .yaml or .yml)", ext)
	}
	return nil
}

// Validate checks value ranges and cross-field requirements.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.URL == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "cache backend redis needs a URL (REDIS_URL)")
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}

	switch c.Snapshot.Backend {
	case "", snapshot.BackendFile:
	case snapshot.BackendRedis, snapshot.BackendMongo, snapshot.BackendPostgres:
		if c.Snapshot.URL == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "snapshot backend %s needs a URL", c.Snapshot.Backend)
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown snapshot backend %q", c.Snapshot.Backend)
	}

	switch c.GitHub.Activity {
	case ActivityLive, ActivityPlaceholder, ActivityNone:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown activity mode %q", c.GitHub.Activity)
	}

	if _, err := card.ParseLayout(c.Card.Layout); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "card layout")
	}
	if c.Card.TopN < 1 || c.Card.TopN > pipeline.MaxTopN {
		return errs.New(errs.ErrCodeInvalidConfig, "card top_n must be between 1 and %d, got %d", pipeline.MaxTopN, c.Card.TopN)
	}
	if c.Stats.Concurrency < 1 || c.Stats.Concurrency > stats.MaxConcurrency {
		return errs.New(errs.ErrCodeInvalidConfig, "stats concurrency must be between 1 and %d, got %d",
			stats.MaxConcurrency, c.Stats.Concurrency)
	}
	if c.Stats.FetchTimeout < 0 || c.Cache.TTL < 0 || c.Snapshot.MaxAge < 0 || c.Server.Timeout < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "durations must not be negative")
	}
	if c.Sync.Interval < time.Minute {
		return errs.New(errs.ErrCodeInvalidConfig, "sync interval must be at least 1m, got %s", c.Sync.Interval)
	}
	for _, u := range c.Sync.Users {
		if err := errs.ValidateUsername(u); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "sync users")
		}
	}
	if _, err := c.Registry(); err != nil {
		return err
	}
	return nil
}

// Registry returns the built-in themes extended with the configured ones.
func (c *Config) Registry() (*theme.Registry, error) {
	reg, err := theme.Builtin().With(c.Themes...)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "themes")
	}
	return reg, nil
}

// String renders c as TOML with the token masked.
func (c Config) String() string {
	if c.GitHub.Token != "" {
		c.GitHub.Token = "***"
	}
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
