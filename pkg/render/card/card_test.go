package card

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/statcard/pkg/rank"
	"github.com/matzehuels/statcard/pkg/stats"
	"github.com/matzehuels/statcard/pkg/theme"
)

func sampleInput(layout Layout) Input {
	th := theme.Builtin().Get("cyan")
	hist := stats.Histogram{"Go": 600, "Python": 300, "Shell": 100}
	return Input{
		Profile: &stats.Profile{
			Login:       "octo",
			DisplayName: "Octo <Cat>",
			RepoCount:   12,
			Stars:       300,
			Activity:    stats.Activity{Commits: 1000, PullRequests: 200, Issues: 50, ContributedTo: 10, Source: stats.ActivityLive},
		},
		Rank:   rank.Rank(2250),
		Slices: Slices(layout, hist, 5, th),
		Theme:  th,
		Layout: layout,
	}
}

// wellFormed fails the test if doc is not parseable XML.
func wellFormed(t *testing.T, doc []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err, "malformed SVG:\n%s", doc)
	}
}

func TestRenderLayouts(t *testing.T) {
	for _, layout := range Layouts {
		t.Run(string(layout), func(t *testing.T) {
			out := Render(sampleInput(layout))
			wellFormed(t, out)
			s := string(out)
			assert.Contains(t, s, `width="1000" height="360"`)
			assert.Contains(t, s, "Octo &lt;Cat&gt; · GitHub Stats")
			assert.Contains(t, s, ">A+</text>")
			assert.Contains(t, s, "60.0%")
			assert.Contains(t, s, "Repositories: 12")
		})
	}
}

func TestRenderIdempotent(t *testing.T) {
	for _, layout := range Layouts {
		in := sampleInput(layout)
		assert.Equal(t, Render(in), Render(in), "layout %s", layout)
	}
}

func TestRenderBarsUsesThemeColor(t *testing.T) {
	out := string(Render(sampleInput(LayoutBars)))
	assert.Contains(t, out, `width="252" height="8" rx="4" fill="#26c6da"`)
}

func TestRenderRingUsesLanguageColors(t *testing.T) {
	out := string(Render(sampleInput(LayoutRing)))
	assert.Contains(t, out, `stroke="#00add8"`)
	assert.Contains(t, out, `<g id="language-ring">`)
}

func TestCaptionIsolated(t *testing.T) {
	in := sampleInput(LayoutBars)
	plain := string(Render(in))

	in.Caption = "Updated: 2026-10-14"
	a := string(Render(in))
	in.Caption = "Updated: 2026-10-15"
	b := string(Render(in))

	assert.NotContains(t, plain, "<!-- caption -->")
	assert.Equal(t, plain, stripCaption(a))
	assert.Equal(t, stripCaption(a), stripCaption(b))
	assert.Contains(t, a, "Updated: 2026-10-14")
}

func stripCaption(doc string) string {
	const marker = "  <!-- caption -->\n"
	start := strings.Index(doc, marker)
	if start < 0 {
		return doc
	}
	end := strings.Index(doc[start+len(marker):], marker)
	if end < 0 {
		return doc
	}
	return doc[:start] + doc[start+len(marker)+end+len(marker):]
}

func TestRenderNilProfile(t *testing.T) {
	th := theme.Builtin().Default()
	out := Render(Input{Theme: th, Message: "user not found"})
	wellFormed(t, out)
	s := string(out)
	assert.Contains(t, s, `width="1000" height="360"`)
	assert.Contains(t, s, "user not found")
	assert.Contains(t, s, th.Error)
}

func TestRenderEmptySlices(t *testing.T) {
	for _, layout := range Layouts {
		in := sampleInput(layout)
		in.Slices = nil
		out := Render(in)
		wellFormed(t, out)
		assert.Contains(t, string(out), "No language data", "layout %s", layout)
	}
}

func TestRenderEmptyProfile(t *testing.T) {
	prof := stats.Aggregate(stats.User{Login: "empty"}, nil, stats.Activity{Source: stats.ActivityNone}, stats.DefaultPolicy())
	th := theme.Builtin().Default()
	out := string(Render(Input{
		Profile: &prof,
		Rank:    rank.Evaluate(prof),
		Slices:  Slices(LayoutBars, stats.Histogram{}, 5, th),
		Theme:   th,
	}))
	assert.Contains(t, out, "Repositories: 0")
	assert.Contains(t, out, "Stars: 0")
	assert.Contains(t, out, "No language data")
	assert.NotContains(t, out, "Commits:")
}

func TestRenderZeroThemeUsesDefault(t *testing.T) {
	in := sampleInput(LayoutBars)
	in.Theme = theme.Theme{}
	out := string(Render(in))
	assert.Contains(t, out, theme.Builtin().Default().Background)
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout("")
	require.NoError(t, err)
	assert.Equal(t, LayoutBars, l)

	l, err = ParseLayout(" Ring ")
	require.NoError(t, err)
	assert.Equal(t, LayoutRing, l)

	_, err = ParseLayout("pie")
	assert.Error(t, err)
}
