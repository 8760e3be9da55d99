// Package render holds the card renderers.
//
// The [svg] subpackage is a small scene graph that serializes to a
// deterministic SVG document: attributes are written in insertion order and
// all text is XML-escaped. The [card] subpackage lays a GitHub stats card out
// on top of it, with three language chart layouts (bars, stacked, ring).
//
//	slices := card.Slices(card.LayoutRing, snap.Languages, 5, th)
//	out := card.Render(card.Input{Profile: &snap.Profile, Slices: slices, Theme: th, Layout: card.LayoutRing})
//
// [svg]: github.com/matzehuels/statcard/pkg/render/svg
// [card]: github.com/matzehuels/statcard/pkg/render/card
package render
