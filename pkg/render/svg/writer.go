package svg

import (
	"io"
	"strings"
)

type attr struct {
	name, value string
}

// optNum omits zero values.
func optNum(name string, f float64) attr {
	if f == 0 {
		return attr{name: name}
	}
	return attr{name, Num(f)}
}

// writer indents elements and keeps the first write error.
type writer struct {
	w     io.Writer
	depth int
	err   error
}

func (w *writer) line(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, strings.Repeat("  ", w.depth)+s+"\n")
}

func (w *writer) open(name string, attrs ...attr) {
	w.line("<" + name + formatAttrs(attrs) + ">")
}

func (w *writer) empty(name string, attrs ...attr) {
	w.line("<" + name + formatAttrs(attrs) + "/>")
}

func (w *writer) inline(name, content string, attrs ...attr) {
	w.line("<" + name + formatAttrs(attrs) + ">" + content + "</" + name + ">")
}

func formatAttrs(attrs []attr) string {
	var b strings.Builder
	for _, a := range attrs {
		if a.value == "" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(a.name)
		b.WriteString(`="`)
		b.WriteString(EscapeXML(a.value))
		b.WriteByte('"')
	}
	return b.String()
}
