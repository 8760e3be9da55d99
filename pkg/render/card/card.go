// Package card lays out a GitHub stats card on top of the svg scene graph.
//
// [Render] is a pure function of its [Input]: equal inputs produce
// byte-identical documents. A nil profile renders the placeholder card, and
// an empty slice list renders a "No language data" note instead of a chart.
package card

import (
	"fmt"
	"strings"

	"github.com/matzehuels/statcard/pkg/chart"
	"github.com/matzehuels/statcard/pkg/rank"
	"github.com/matzehuels/statcard/pkg/render/svg"
	"github.com/matzehuels/statcard/pkg/stats"
	"github.com/matzehuels/statcard/pkg/theme"
)

// Card dimensions.
const (
	Width  = 1000
	Height = 360

	// BarWidth is the full width of a language bar.
	BarWidth = 420
)

const fontFamily = "Segoe UI, Ubuntu, sans-serif"

// Layout selects the chart drawn for languages.
type Layout string

const (
	// LayoutBars draws one bar per language next to a grade ring.
	LayoutBars Layout = "bars"
	// LayoutStacked draws all languages in a single stacked bar.
	LayoutStacked Layout = "stacked"
	// LayoutRing draws a donut chart with a legend.
	LayoutRing Layout = "ring"
)

// DefaultLayout is used when no layout is requested.
const DefaultLayout = LayoutBars

// Layouts lists every supported layout.
var Layouts = []Layout{LayoutBars, LayoutStacked, LayoutRing}

// ParseLayout accepts a layout name; empty selects [DefaultLayout].
func ParseLayout(s string) (Layout, error) {
	switch l := Layout(strings.ToLower(strings.TrimSpace(s))); l {
	case "":
		return DefaultLayout, nil
	case LayoutBars, LayoutStacked, LayoutRing:
		return l, nil
	default:
		return "", fmt.Errorf("unknown layout %q (want bars, stacked or ring)", s)
	}
}

// Input is everything a card is rendered from.
type Input struct {
	Profile *stats.Profile
	Rank    rank.Result
	Slices  []chart.Slice
	Theme   theme.Theme
	Layout  Layout

	// Caption is an optional line such as "Updated: 2026-10-14".
	Caption string

	// Message is shown on the placeholder card when Profile is nil.
	Message string
}

// Slices computes the chart geometry that layout expects.
func Slices(layout Layout, h stats.Histogram, topN int, th theme.Theme) []chart.Slice {
	switch layout {
	case LayoutRing:
		return chart.Ring(h, topN, th.LanguageColor)
	case LayoutStacked:
		return chart.Bars(h, topN, BarWidth, th.LanguageColor)
	default:
		return chart.Bars(h, topN, BarWidth, func(string) string { return th.Title })
	}
}

// Render builds the card document and serializes it.
func Render(in Input) []byte {
	return Build(in).Bytes()
}

// Build returns the card scene without serializing it.
func Build(in Input) *svg.Document {
	th := in.Theme
	if th.Name == "" {
		th = theme.Builtin().Default()
	}
	doc := svg.New(Width, Height)
	doc.Add(frame(th))

	if in.Profile == nil {
		placeholder(doc, th, in.Message)
		addCaption(doc, th, in.Caption)
		return doc
	}

	header(doc, th, in.Profile)
	grade(doc, th, in.Rank)
	switch in.Layout {
	case LayoutRing:
		ring(doc, th, in.Slices)
	case LayoutStacked:
		stacked(doc, th, in.Slices)
	default:
		bars(doc, th, in.Slices)
	}
	addCaption(doc, th, in.Caption)
	return doc
}

func frame(th theme.Theme) svg.Node {
	return svg.Rect{X: 10, Y: 10, W: 980, H: 340, RX: 18, Fill: th.Background, Stroke: th.Border, StrokeWidth: 2}
}

func text(x, y float64, content, fill string, size float64) svg.Text {
	return svg.Text{X: x, Y: y, Content: content, Fill: fill, Size: size, Family: fontFamily}
}

// captionMarker delimits the caption line so it can be located or stripped.
const captionMarker = "caption"

func addCaption(doc *svg.Document, th theme.Theme, caption string) {
	if caption == "" {
		return
	}
	t := text(970, 338, caption, th.Muted, 11)
	t.Anchor = "end"
	doc.Add(svg.Comment{Text: captionMarker}, t, svg.Comment{Text: captionMarker})
}
