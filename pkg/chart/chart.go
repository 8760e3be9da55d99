// Package chart computes the geometry of the language chart from a byte
// histogram. It knows nothing about SVG beyond producing arc path data.
//
// Shares are always computed against the top-N subset, so the slices of one
// chart add up to 100%. An empty or all-zero histogram yields no slices.
package chart

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/statcard/pkg/stats"
)

// DefaultTopN is the number of languages shown when n <= 0.
const DefaultTopN = 5

// Ring starts at twelve o'clock and runs clockwise.
const (
	ringStart = -90.0
	ringSweep = 360.0
)

// Layout selects how bar slices are drawn.
type Layout string

const (
	// BarsIndependent draws one bar per language, each against the full width.
	BarsIndependent Layout = "independent"
	// BarsStacked draws all languages in one bar, slice after slice.
	BarsStacked Layout = "stacked"
)

// Palette maps a language to its color.
type Palette func(label string) string

// Entry is one language and its byte count.
type Entry struct {
	Label string
	Value int64
}

// Slice is the derived geometry of one language. Ring charts use the angle
// fields, bar charts use Width and Offset.
type Slice struct {
	Label      string
	Value      int64
	Percentage float64 // 0..100, share of the top-N total
	Color      string

	StartAngle float64 // degrees
	EndAngle   float64
	LargeArc   bool

	Width  float64 // pixels
	Offset float64 // sum of the widths before this slice
}

// Span is the angular extent of the slice in degrees.
func (s Slice) Span() float64 { return s.EndAngle - s.StartAngle }

// TopN returns the n largest languages by bytes, ties broken by name.
// Languages with a non-positive count are dropped.
func TopN(h stats.Histogram, n int) []Entry {
	if n <= 0 {
		n = DefaultTopN
	}
	entries := make([]Entry, 0, len(h))
	for label, v := range h {
		if v > 0 {
			entries = append(entries, Entry{Label: label, Value: v})
		}
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func shares(h stats.Histogram, n int, palette Palette) []Slice {
	entries := TopN(h, n)
	var total int64
	for _, e := range entries {
		total += e.Value
	}
	if total == 0 {
		return nil
	}
	out := make([]Slice, len(entries))
	for i, e := range entries {
		out[i] = Slice{
			Label:      e.Label,
			Value:      e.Value,
			Percentage: float64(e.Value) / float64(total) * 100,
		}
		if palette != nil {
			out[i].Color = palette(e.Label)
		}
	}
	return out
}

// Ring lays the top-n languages out as consecutive arcs of one circle.
func Ring(h stats.Histogram, n int, palette Palette) []Slice {
	out := shares(h, n, palette)
	angle := ringStart
	for i := range out {
		s := &out[i]
		s.StartAngle = angle
		if i == len(out)-1 {
			s.EndAngle = ringStart + ringSweep
		} else {
			s.EndAngle = angle + s.Percentage/100*ringSweep
		}
		s.LargeArc = s.Span() > 180
		angle = s.EndAngle
	}
	return out
}

// Bars sizes the top-n languages against maxWidth. Width is the share of
// maxWidth; Offset accumulates widths so the same slices serve a stacked bar.
func Bars(h stats.Histogram, n int, maxWidth float64, palette Palette) []Slice {
	out := shares(h, n, palette)
	offset := 0.0
	for i := range out {
		s := &out[i]
		s.Width = s.Percentage / 100 * maxWidth
		s.Offset = offset
		offset += s.Width
	}
	return out
}

// FormatPercent renders a percentage with one decimal, e.g. "80.0%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
