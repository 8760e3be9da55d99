package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentEncode(t *testing.T) {
	doc := New(100, 50)
	doc.Add(
		Rect{X: 1, Y: 2, W: 98, H: 46.26, RX: 8, Fill: "#000", Stroke: "#fff", StrokeWidth: 2},
		Comment{Text: "caption"},
		Text{X: 10, Y: 20, Content: "a < b & c", Fill: "#fff", Size: 14, Anchor: "middle"},
	)

	got := string(doc.Bytes())
	want := `<svg width="100" height="50" viewBox="0 0 100 50" xmlns="http://www.w3.org/2000/svg">
  <rect x="1" y="2" width="98" height="46.3" rx="8" fill="#000" stroke="#fff" stroke-width="2"/>
  <!-- caption -->
  <text x="10" y="20" fill="#fff" font-size="14" text-anchor="middle">a &lt; b &amp; c</text>
</svg>
`
	assert.Equal(t, want, got)
}

func TestGroupNesting(t *testing.T) {
	g := &Group{Transform: Translate(10, 20)}
	g.Add(Circle{CX: 0, CY: 0, R: 5, Fill: "none", Stroke: "#f00", StrokeWidth: 1.5})
	doc := New(10, 10)
	doc.Add(g)

	assert.Contains(t, string(doc.Bytes()),
		`  <g transform="translate(10 20)">`+"\n"+`    <circle cx="0" cy="0" r="5" fill="none" stroke="#f00" stroke-width="1.5"/>`)
}

func TestEncodeDeterministic(t *testing.T) {
	build := func() []byte {
		doc := New(300, 200)
		doc.Add(Path{D: "M 0 0 L 10 10", Stroke: "#abc", StrokeWidth: 3, LineCap: "round"})
		doc.Add(Text{X: 1.04, Y: 2.96, Content: "⭐ Stars"})
		return doc.Bytes()
	}
	assert.Equal(t, build(), build(), "identical scenes encoded differently")
}

func TestAttributeEscaping(t *testing.T) {
	doc := New(1, 1)
	doc.Add(Text{Content: "x", Family: `"Fira Code", monospace`})
	assert.Contains(t, string(doc.Bytes()), `font-family="&#34;Fira Code&#34;, monospace"`)
}

func TestCommentSanitized(t *testing.T) {
	doc := New(1, 1)
	doc.Add(Comment{Text: "a -- b"})
	assert.Contains(t, string(doc.Bytes()), "<!-- a - - b -->")
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{360, "360"},
		{12.34, "12.3"},
		{-4.5, "-4.5"},
		{-0.04, "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Num(tt.in), "Num(%v)", tt.in)
	}
}

func TestRotate(t *testing.T) {
	assert.Equal(t, "rotate(-90 900 80)", Rotate(-90, 900, 80))
}
