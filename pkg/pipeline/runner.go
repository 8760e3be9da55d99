package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/statcard/pkg/cache"
	errs "github.com/matzehuels/statcard/pkg/errors"
	"github.com/matzehuels/statcard/pkg/observability"
	"github.com/matzehuels/statcard/pkg/rank"
	"github.com/matzehuels/statcard/pkg/render/card"
	"github.com/matzehuels/statcard/pkg/snapshot"
	"github.com/matzehuels/statcard/pkg/theme"
)

// Source produces the data a card is rendered from.
type Source = snapshot.Loader

// Fingerprinter is implemented by sources whose output depends on
// configuration. The fingerprint becomes part of the card cache key.
type Fingerprinter interface {
	Fingerprint() string
}

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Source Source
	Cache  cache.Cache
	Keyer  cache.Keyer
	Themes *theme.Registry
	Scorer *rank.Scorer
	Logger *log.Logger

	// TTL is the lifetime of cached cards; 0 means cache.TTLCard.
	TTL time.Duration
}

// NewRunner creates a runner with built-in themes and default weights.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(src Source, c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Source: src,
		Cache:  c,
		Keyer:  cache.NewDefaultKeyer(),
		Themes: theme.Builtin(),
		Scorer: &rank.Scorer{},
		Logger: logger,
	}
}

// cachedCard is the render cache entry.
type cachedCard struct {
	SVG    []byte  `json:"svg"`
	Result *Result `json:"result"`
}

// Execute loads, scores and renders one card.
//
// The returned Result is never nil and its SVG is always a well-formed
// document: when validation or loading fails, it holds the placeholder card
// and err describes the failure so callers can pick a status code.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	th := r.themes().Get(opts.Theme)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return r.placeholder(th, err), err
	}
	th = r.themes().Get(opts.Theme)

	key := r.keyer().CardKey(cache.CardKeyOpts{
		Username: snapshot.Key(opts.Username),
		Theme:    th.Name,
		Layout:   opts.Layout,
		TopN:     opts.TopN,
		Caption:  opts.Caption,
		Updated:  opts.ShowUpdated,
		Settings: r.settings(),
	})
	if !opts.Refresh {
		if res, ok := r.cached(ctx, key); ok {
			r.Logger.Debug("card cache hit", "user", opts.Username, "theme", th.Name)
			return res, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, opts.Username)
	fetchStart := time.Now()
	snap, err := r.Source.Load(ctx, opts.Username, opts.Refresh)
	if err != nil {
		hooks.OnFetchComplete(ctx, opts.Username, 0, time.Since(fetchStart), err)
		r.Logger.Warn("load failed", "user", opts.Username, "error", err)
		return r.placeholder(th, err), fmt.Errorf("load %s: %w", opts.Username, err)
	}
	hooks.OnFetchComplete(ctx, opts.Username, snap.Profile.RepoCount, time.Since(fetchStart), nil)

	renderStart := time.Now()
	res := r.render(snap, th, opts)
	hooks.OnRenderComplete(ctx, opts.Username, th.Name, len(res.SVG), time.Since(renderStart))
	r.Logger.Debug("rendered card",
		"user", opts.Username,
		"theme", th.Name,
		"layout", opts.Layout,
		"rank", res.Rank.Level,
		"bytes", len(res.SVG))

	if len(res.Partial) == 0 {
		r.store(ctx, key, res)
	}
	return res, nil
}

func (r *Runner) render(snap *snapshot.Snapshot, th theme.Theme, opts Options) *Result {
	profile := snap.Profile
	grade := r.Scorer.Evaluate(profile)

	caption := opts.Caption
	if caption == "" && opts.ShowUpdated && !snap.FetchedAt.IsZero() {
		caption = "Updated: " + snap.FetchedAt.UTC().Format(time.DateOnly)
	}

	svg := card.Render(card.Input{
		Profile: &profile,
		Rank:    grade,
		Slices:  card.Slices(opts.layout, snap.Languages, opts.TopN, th),
		Theme:   th,
		Layout:  opts.layout,
		Caption: caption,
	})
	return &Result{
		SVG:       svg,
		ETag:      ETag(svg),
		Profile:   &profile,
		Languages: snap.Languages.Clone(),
		Rank:      grade,
		Theme:     th.Name,
		FetchedAt: snap.FetchedAt,
		Partial:   snap.PartialFailures,
	}
}

func (r *Runner) placeholder(th theme.Theme, err error) *Result {
	svg := card.Render(card.Input{Theme: th, Message: errs.UserMessage(err)})
	return &Result{SVG: svg, ETag: ETag(svg), Theme: th.Name}
}

func (r *Runner) cached(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "card")
		return nil, false
	}
	var entry cachedCard
	if err := json.Unmarshal(data, &entry); err != nil || entry.Result == nil {
		observability.Cache().OnCacheMiss(ctx, "card")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "card")
	res := entry.Result
	res.SVG = entry.SVG
	res.CacheHit = true
	return res, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result) {
	data, err := json.Marshal(cachedCard{SVG: res.SVG, Result: res})
	if err != nil {
		return
	}
	ttl := r.TTL
	if ttl <= 0 {
		ttl = cache.TTLCard
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("card cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "card", len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) themes() *theme.Registry {
	if r.Themes == nil {
		return theme.Builtin()
	}
	return r.Themes
}

// settings hashes the scorer and source configuration.
func (r *Runner) settings() string {
	weights, tiers := r.Scorer.Settings()
	var source string
	if f, ok := r.Source.(Fingerprinter); ok {
		source = f.Fingerprint()
	}
	data, _ := json.Marshal(struct {
		Weights rank.Weights `json:"weights"`
		Tiers   []rank.Tier  `json:"tiers"`
		Source  string       `json:"source,omitempty"`
	}{weights, tiers, source})
	return cache.Hash(data)[:16]
}

func (r *Runner) keyer() cache.Keyer {
	if r.Keyer == nil {
		return cache.NewDefaultKeyer()
	}
	return r.Keyer
}
