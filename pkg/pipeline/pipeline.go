// Package pipeline provides the card pipeline shared by the CLI, the HTTP
// server and the sync job.
//
// # Architecture
//
// One run goes through four stages:
//
//  1. Load: a [Source] produces a [snapshot.Snapshot] (live from GitHub, or
//     from a snapshot store)
//  2. Score: the profile counters are graded by a [rank.Scorer]
//  3. Geometry: the language histogram becomes chart slices
//  4. Render: the card is serialized to SVG
//
// Rendered cards are cached by their options, so repeated requests for the
// same card skip every stage.
//
// # Usage
//
//	runner := pipeline.NewRunner(source, cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Username: "octocat",
//	    Theme:    "cyan",
//	})
//	// result.SVG is always a valid document; on error it is the placeholder.
package pipeline

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"

	"github.com/matzehuels/statcard/pkg/chart"
	errs "github.com/matzehuels/statcard/pkg/errors"
	"github.com/matzehuels/statcard/pkg/rank"
	"github.com/matzehuels/statcard/pkg/render/card"
	"github.com/matzehuels/statcard/pkg/stats"
	"github.com/matzehuels/statcard/pkg/theme"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, Server, and Sync
// =============================================================================

const (
	// DefaultTopN is the number of languages shown on a card.
	DefaultTopN = chart.DefaultTopN

	// MaxTopN bounds the languages a caller may request.
	MaxTopN = 10

	// DefaultTheme is the theme used when none is requested.
	DefaultTheme = theme.DefaultName

	// DefaultLayout is the chart layout used when none is requested.
	DefaultLayout = card.DefaultLayout
)

// Options selects the card to render.
type Options struct {
	Username string `json:"username"`
	Theme    string `json:"theme,omitempty"`
	Layout   string `json:"layout,omitempty"`
	TopN     int    `json:"top_n,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`

	// Caption is a fixed line printed in the card corner.
	Caption string `json:"caption,omitempty"`

	// ShowUpdated prints "Updated: <date of the data>" when Caption is empty.
	ShowUpdated bool `json:"show_updated,omitempty"`

	layout card.Layout
}

// ValidateAndSetDefaults checks the username and layout and applies
// defaults. Unknown theme names are not an error; they render with the
// default theme.
func (o *Options) ValidateAndSetDefaults() error {
	o.Username = strings.TrimSpace(o.Username)
	if err := errs.ValidateUsername(o.Username); err != nil {
		return err
	}
	layout, err := card.ParseLayout(o.Layout)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidLayout, err, "invalid layout")
	}
	o.layout = layout
	o.Layout = string(layout)
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	o.Theme = strings.ToLower(o.Theme)
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	o.TopN = min(o.TopN, MaxTopN)
	return nil
}

// Result is the outcome of one pipeline run.
type Result struct {
	// SVG is the rendered card, or the placeholder when the run failed.
	SVG []byte `json:"-"`

	// ETag is the MD5 hex digest of SVG.
	ETag string `json:"etag"`

	Profile   *stats.Profile  `json:"profile,omitempty"`
	Languages stats.Histogram `json:"languages,omitempty"`
	Rank      rank.Result     `json:"rank"`
	Theme     string          `json:"theme"`
	FetchedAt time.Time       `json:"fetched_at"`

	// Partial names repositories whose languages were skipped.
	Partial []string `json:"partial,omitempty"`

	// CacheHit is true when the card came from the render cache.
	CacheHit bool `json:"-"`
}

// ETag returns the MD5 hex digest used to identify a rendered card.
func ETag(svg []byte) string {
	sum := md5.Sum(svg)
	return hex.EncodeToString(sum[:])
}
