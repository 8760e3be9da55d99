// Package svg is a small scene graph for SVG documents.
//
// Primitives are plain structs. A [Document] is built up in memory and
// serialized once by [Document.Encode]. Attributes are written in a fixed
// order and numbers with at most one decimal, so equal scenes encode to equal
// bytes.
//
//	doc := svg.New(200, 100)
//	doc.Add(svg.Rect{W: 200, H: 100, Fill: "#000"})
//	doc.Add(svg.Text{X: 10, Y: 50, Content: "hi & bye", Fill: "#fff", Size: 14})
//	out := doc.Bytes()
package svg

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

// Node is one element of a scene.
type Node interface {
	encode(w *writer)
}

// Document is the root <svg> element.
type Document struct {
	Width, Height float64
	Children      []Node
}

// New returns an empty document with a matching viewBox.
func New(width, height float64) *Document {
	return &Document{Width: width, Height: height}
}

// Add appends nodes to the document.
func (d *Document) Add(nodes ...Node) { d.Children = append(d.Children, nodes...) }

// Encode writes the document to w.
func (d *Document) Encode(w io.Writer) error {
	ew := &writer{w: w}
	ew.open("svg",
		attr{"width", Num(d.Width)},
		attr{"height", Num(d.Height)},
		attr{"viewBox", "0 0 " + Num(d.Width) + " " + Num(d.Height)},
		attr{"xmlns", "http://www.w3.org/2000/svg"},
	)
	ew.depth++
	for _, c := range d.Children {
		c.encode(ew)
	}
	ew.depth--
	ew.line("</svg>")
	return ew.err
}

// Bytes encodes the document into memory.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	_ = d.Encode(&buf)
	return buf.Bytes()
}

// Rect is a rectangle with optional rounded corners.
type Rect struct {
	X, Y, W, H  float64
	RX          float64
	Fill        string
	Stroke      string
	StrokeWidth float64
}

func (r Rect) encode(w *writer) {
	w.empty("rect",
		attr{"x", Num(r.X)},
		attr{"y", Num(r.Y)},
		attr{"width", Num(r.W)},
		attr{"height", Num(r.H)},
		optNum("rx", r.RX),
		attr{"fill", r.Fill},
		attr{"stroke", r.Stroke},
		optNum("stroke-width", r.StrokeWidth),
	)
}

// Circle is a circle, usually stroked for rings.
type Circle struct {
	CX, CY, R   float64
	Fill        string
	Stroke      string
	StrokeWidth float64
	DashArray   string
	LineCap     string
	Transform   string
}

func (c Circle) encode(w *writer) {
	w.empty("circle",
		attr{"cx", Num(c.CX)},
		attr{"cy", Num(c.CY)},
		attr{"r", Num(c.R)},
		attr{"fill", c.Fill},
		attr{"stroke", c.Stroke},
		optNum("stroke-width", c.StrokeWidth),
		attr{"stroke-dasharray", c.DashArray},
		attr{"stroke-linecap", c.LineCap},
		attr{"transform", c.Transform},
	)
}

// Path is arbitrary path data.
type Path struct {
	D           string
	Fill        string
	Stroke      string
	StrokeWidth float64
	LineCap     string
}

func (p Path) encode(w *writer) {
	w.empty("path",
		attr{"d", p.D},
		attr{"fill", p.Fill},
		attr{"stroke", p.Stroke},
		optNum("stroke-width", p.StrokeWidth),
		attr{"stroke-linecap", p.LineCap},
	)
}

// Text is a single line of text. Content is escaped on encode.
type Text struct {
	X, Y    float64
	Content string
	Fill    string
	Size    float64
	Weight  string
	Anchor  string
	Family  string
}

func (t Text) encode(w *writer) {
	w.inline("text", EscapeXML(t.Content),
		attr{"x", Num(t.X)},
		attr{"y", Num(t.Y)},
		attr{"fill", t.Fill},
		optNum("font-size", t.Size),
		attr{"font-weight", t.Weight},
		attr{"text-anchor", t.Anchor},
		attr{"font-family", t.Family},
	)
}

// Group nests nodes under an optional transform.
type Group struct {
	ID        string
	Transform string
	Children  []Node
}

// Add appends nodes to the group.
func (g *Group) Add(nodes ...Node) { g.Children = append(g.Children, nodes...) }

func (g *Group) encode(w *writer) {
	w.open("g", attr{"id", g.ID}, attr{"transform", g.Transform})
	w.depth++
	for _, c := range g.Children {
		c.encode(w)
	}
	w.depth--
	w.line("</g>")
}

// Comment is an XML comment. "--" is not allowed inside and is replaced.
type Comment struct {
	Text string
}

func (c Comment) encode(w *writer) {
	w.line("<!-- " + strings.ReplaceAll(c.Text, "--", "- -") + " -->")
}

// Num formats f with one decimal and drops a trailing ".0".
func Num(f float64) string {
	s := strconv.FormatFloat(f, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	if s == "-0" {
		return "0"
	}
	return s
}

// Rotate returns a rotate(deg cx cy) transform.
func Rotate(deg, cx, cy float64) string {
	return "rotate(" + Num(deg) + " " + Num(cx) + " " + Num(cy) + ")"
}

// Translate returns a translate(x y) transform.
func Translate(x, y float64) string {
	return "translate(" + Num(x) + " " + Num(y) + ")"
}

// EscapeXML escapes text content and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
