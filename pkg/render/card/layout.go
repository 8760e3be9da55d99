package card

import (
	"math"
	"strconv"

	"github.com/matzehuels/statcard/pkg/chart"
	"github.com/matzehuels/statcard/pkg/rank"
	"github.com/matzehuels/statcard/pkg/render/svg"
	"github.com/matzehuels/statcard/pkg/stats"
	"github.com/matzehuels/statcard/pkg/theme"
)

const (
	gradeCX, gradeCY, gradeR = 900, 80, 36
	gradeStroke              = 6

	langTitleY = 220
	langRowY   = 250
	langRowH   = 28
)

func icon(doc *svg.Document, color string) {
	doc.Add(svg.Circle{CX: 80, CY: 80, R: 34, Fill: "none", Stroke: color, StrokeWidth: 3})
	t := text(80, 88, "</>", color, 22)
	t.Anchor = "middle"
	t.Family = "monospace"
	doc.Add(t)
}

func header(doc *svg.Document, th theme.Theme, p *stats.Profile) {
	icon(doc, th.Title)

	title := text(140, 70, p.DisplayName+" · GitHub Stats", th.Title, 24)
	title.Weight = "bold"
	doc.Add(title)
	doc.Add(text(140, 96, "@"+p.Login+" · "+strconv.Itoa(p.Followers)+" followers", th.Muted, 14))

	doc.Add(
		text(140, 130, "📦 Repositories: "+strconv.Itoa(p.RepoCount), th.Text, 14),
		text(320, 130, "⭐ Stars: "+strconv.Itoa(p.Stars), th.Text, 14),
		text(460, 130, "🍴 Forks: "+strconv.Itoa(p.Forks), th.Text, 14),
		text(600, 130, "🐛 Open issues: "+strconv.Itoa(p.OpenIssues), th.Text, 14),
	)
	if p.Activity.Source == stats.ActivityNone || p.Activity.Source == "" {
		return
	}
	doc.Add(
		text(140, 156, "Commits: "+strconv.Itoa(p.Activity.Commits), th.Muted, 13),
		text(320, 156, "PRs: "+strconv.Itoa(p.Activity.PullRequests), th.Muted, 13),
		text(460, 156, "Issues: "+strconv.Itoa(p.Activity.Issues), th.Muted, 13),
		text(600, 156, "Contributed to: "+strconv.Itoa(p.Activity.ContributedTo), th.Muted, 13),
	)
}

// grade draws the rank ring; the arc length is the progress within the level.
func grade(doc *svg.Document, th theme.Theme, r rank.Result) {
	circumference := 2 * math.Pi * gradeR
	dash := r.Progress / 100 * circumference

	doc.Add(svg.Circle{CX: gradeCX, CY: gradeCY, R: gradeR, Fill: "none", Stroke: th.Track, StrokeWidth: gradeStroke})
	if dash > 0 {
		doc.Add(svg.Circle{
			CX: gradeCX, CY: gradeCY, R: gradeR,
			Fill:        "none",
			Stroke:      th.Title,
			StrokeWidth: gradeStroke,
			DashArray:   svg.Num(dash) + " " + svg.Num(circumference-dash),
			Transform:   svg.Rotate(-90, gradeCX, gradeCY),
		})
	}
	level := string(r.Level)
	if level == "" {
		level = string(rank.LevelC)
	}
	t := text(gradeCX, gradeCY+8, level, th.Text, 22)
	t.Anchor = "middle"
	t.Weight = "bold"
	doc.Add(t)
}

func languagesTitle(doc *svg.Document, th theme.Theme, x float64) {
	t := text(x, langTitleY, "Top Languages", th.Title, 18)
	t.Weight = "bold"
	doc.Add(t)
}

func noData(doc *svg.Document, th theme.Theme, x float64) {
	doc.Add(text(x, langRowY, "No language data", th.Muted, 14))
}

func bars(doc *svg.Document, th theme.Theme, slices []chart.Slice) {
	languagesTitle(doc, th, 120)
	if len(slices) == 0 {
		noData(doc, th, 120)
		return
	}
	y := float64(langRowY)
	for _, s := range slices {
		doc.Add(
			text(120, y, s.Label, th.Text, 14),
			svg.Rect{X: 220, Y: y - 12, W: BarWidth, H: 8, RX: 4, Fill: th.Track},
		)
		if s.Width > 0 {
			doc.Add(svg.Rect{X: 220, Y: y - 12, W: s.Width, H: 8, RX: 4, Fill: s.Color})
		}
		doc.Add(text(650, y, chart.FormatPercent(s.Percentage), th.Muted, 12))
		y += langRowH
	}
}

func stacked(doc *svg.Document, th theme.Theme, slices []chart.Slice) {
	languagesTitle(doc, th, 120)
	if len(slices) == 0 {
		noData(doc, th, 120)
		return
	}
	const barY = 236
	bar := &svg.Group{ID: "stacked-bar"}
	bar.Add(svg.Rect{X: 120, Y: barY, W: BarWidth, H: 10, RX: 5, Fill: th.Track})
	for _, s := range slices {
		if s.Width > 0 {
			bar.Add(svg.Rect{X: 120 + s.Offset, Y: barY, W: s.Width, H: 10, Fill: s.Color})
		}
	}
	doc.Add(bar)

	for i, s := range slices {
		x := 120 + float64(i%2)*260
		y := 275 + float64(i/2)*24
		doc.Add(
			svg.Circle{CX: x + 5, CY: y - 4, R: 5, Fill: s.Color},
			text(x+16, y, s.Label, th.Text, 13),
			text(x+150, y, chart.FormatPercent(s.Percentage), th.Muted, 12),
		)
	}
}

const (
	ringCX, ringCY, ringR = 760, 240, 70
	ringStroke            = 22
)

func ring(doc *svg.Document, th theme.Theme, slices []chart.Slice) {
	languagesTitle(doc, th, 120)
	if len(slices) == 0 {
		noData(doc, th, 120)
		return
	}
	donut := &svg.Group{ID: "language-ring"}
	donut.Add(svg.Circle{CX: ringCX, CY: ringCY, R: ringR, Fill: "none", Stroke: th.Track, StrokeWidth: ringStroke})
	for _, s := range slices {
		donut.Add(svg.Path{
			D:           chart.ArcPath(ringCX, ringCY, ringR, s),
			Fill:        "none",
			Stroke:      s.Color,
			StrokeWidth: ringStroke,
		})
	}
	doc.Add(donut)

	y := float64(langRowY)
	for _, s := range slices {
		doc.Add(
			svg.Rect{X: 120, Y: y - 11, W: 12, H: 12, RX: 2, Fill: s.Color},
			text(142, y, s.Label, th.Text, 14),
			text(320, y, chart.FormatPercent(s.Percentage), th.Muted, 12),
		)
		y += langRowH
	}
}

func placeholder(doc *svg.Document, th theme.Theme, message string) {
	icon(doc, th.Error)
	title := text(140, 70, "Stats unavailable", th.Error, 24)
	title.Weight = "bold"
	doc.Add(title)
	if message == "" {
		message = "GitHub data could not be loaded. Try again later."
	}
	doc.Add(text(140, 96, message, th.Muted, 14))
	doc.Add(text(120, langRowY, "No language data", th.Muted, 14))
}
