package chart

import (
	"math"
	"strconv"
	"strings"
)

// fullCircleEpsilon treats spans this close to 360° as a full circle.
const fullCircleEpsilon = 1e-9

// ArcPath returns SVG path data for the slice's arc on a circle of radius r
// around (cx, cy). The path is meant to be stroked. A slice covering the
// whole ring is drawn as two half arcs, since a single arc with equal end
// points draws nothing.
func ArcPath(cx, cy, r float64, s Slice) string {
	if s.Span() >= ringSweep-fullCircleEpsilon {
		top := point(cx, cy, r, ringStart)
		bottom := point(cx, cy, r, ringStart+180)
		var b strings.Builder
		b.WriteString("M " + top)
		b.WriteString(" A " + num(r) + " " + num(r) + " 0 1 1 " + bottom)
		b.WriteString(" A " + num(r) + " " + num(r) + " 0 1 1 " + top)
		return b.String()
	}
	large := "0"
	if s.LargeArc {
		large = "1"
	}
	return "M " + point(cx, cy, r, s.StartAngle) +
		" A " + num(r) + " " + num(r) + " 0 " + large + " 1 " + point(cx, cy, r, s.EndAngle)
}

func point(cx, cy, r, deg float64) string {
	rad := deg * math.Pi / 180
	return num(cx+r*math.Cos(rad)) + " " + num(cy+r*math.Sin(rad))
}

// num formats with one decimal and drops a trailing ".0".
func num(f float64) string {
	s := strconv.FormatFloat(f, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	if s == "-0" {
		return "0"
	}
	return s
}
