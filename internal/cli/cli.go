package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/statcard/pkg/buildinfo"
	"github.com/matzehuels/statcard/pkg/cache"
	"github.com/matzehuels/statcard/pkg/config"
	"github.com/matzehuels/statcard/pkg/integrations/github"
	"github.com/matzehuels/statcard/pkg/observability"
	"github.com/matzehuels/statcard/pkg/pipeline"
	"github.com/matzehuels/statcard/pkg/rank"
	"github.com/matzehuels/statcard/pkg/snapshot"
	"github.com/matzehuels/statcard/pkg/stats"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "statcard"

	// defaultOutput is the file written by render when -o is not given.
	defaultOutput = "dashboard.svg"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "statcard renders GitHub profile stats cards as SVG",
		Long:              `statcard fetches a GitHub user's public profile, repositories and language mix, grades the activity, and renders a self-contained SVG card. It runs once from the command line, as an HTTP service, or as a periodic snapshot job.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (.toml, .yaml or .yml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.syncCommand())
	root.AddCommand(c.themesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.loadtestCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and applies --verbose before any command.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	stdout = cmd.OutOrStdout()
	if c.verbose {
		c.SetLogLevel(LogDebug)
		observability.NewLogHooks(c.Logger).Register()
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "cache", cfg.Cache.Backend, "snapshot", cfg.Snapshot.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newCache opens the configured response and card cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	switch {
	case noCache:
		return c.disabledCache("--no-cache"), nil
	case c.cfg.Cache.Backend == config.CacheNone:
		return c.disabledCache("STATCARD_CACHE=none"), nil
	case c.cfg.Cache.Backend == config.CacheRedis:
		return cache.NewRedisCache(ctx, c.cfg.Cache.URL)
	}
	dir := c.cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return c.disabledCache("no cache directory"), nil
		}
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) disabledCache(reason string) *cache.NullCache {
	nc := cache.Disabled(reason)
	c.Logger.Debug("cache disabled", "reason", nc.Reason())
	return nc
}

// newLiveSource builds a GitHub-backed source sharing cch for API responses.
func (c *CLI) newLiveSource(cch cache.Cache) *pipeline.LiveSource {
	client := github.NewClient(github.Options{
		Token:    c.cfg.GitHub.Token,
		BaseURL:  c.cfg.GitHub.BaseURL,
		Cache:    cch,
		CacheTTL: c.cfg.Cache.TTL,
	})
	if c.cfg.GitHub.Token == "" {
		c.Logger.Warn("GITHUB_TOKEN not set, using the unauthenticated GitHub API (60 requests/hour)")
	}
	src := pipeline.NewLiveSource(client, c.Logger)
	src.Policy = c.cfg.Stats
	src.Activity = stats.ActivitySource(c.cfg.GitHub.Activity)
	return src
}

// runnerEnv is everything a command needs to render cards.
type runnerEnv struct {
	runner *pipeline.Runner
	live   *pipeline.LiveSource
	store  snapshot.Store
}

func (e *runnerEnv) Close() error {
	var errs []error
	if e.store != nil {
		errs = append(errs, e.store.Close())
	}
	errs = append(errs, e.runner.Close())
	return errors.Join(errs...)
}

// newRunner wires cache, source and themes from the loaded configuration.
// With a snapshot backend configured, cards are served from the store and
// refetched live only when allowed by the snapshot settings.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*runnerEnv, error) {
	cch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	themes, err := c.cfg.Registry()
	if err != nil {
		cch.Close()
		return nil, err
	}

	env := &runnerEnv{live: c.newLiveSource(cch)}
	var src pipeline.Source = env.live
	if c.cfg.Snapshot.Enabled() {
		store, err := snapshot.Open(ctx, c.cfg.Snapshot.Store())
		if err != nil {
			cch.Close()
			return nil, err
		}
		env.store = store
		ss := &snapshot.StoreSource{Store: store, MaxAge: c.cfg.Snapshot.MaxAge, Logger: c.Logger}
		if c.cfg.Snapshot.Fallback {
			ss.Fallback = env.live
		}
		src = ss
	}

	runner := pipeline.NewRunner(src, cch, c.Logger)
	runner.Themes = themes
	runner.Scorer = rank.NewScorer(c.cfg.Rank)
	runner.TTL = c.cfg.Cache.TTL
	env.runner = runner
	return env, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/statcard/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
