package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/statcard/pkg/pipeline"
)

// stdout receives status lines. setup points it at the command output.
var stdout io.Writer = os.Stdout

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	// StyleLabel is a fixed-width field name column.
	StyleLabel = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	StyleDim   = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
	// StyleGrade highlights a rank level such as "A+".
	StyleGrade = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning     = lipgloss.NewStyle().Foreground(colorYellow)
)

type icon struct {
	glyph string
	style lipgloss.Style
}

var (
	iconSuccess = icon{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	iconError   = icon{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	iconWarning = icon{"!", styleWarning}
	iconInfo    = icon{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func printStatus(ic icon, msg string) {
	fmt.Fprintln(stdout, ic.style.Render(ic.glyph)+" "+msg)
}

func printSuccess(format string, args ...any) {
	printStatus(iconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printStatus(iconError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printStatus(iconWarning, styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printStatus(iconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// printCardStats prints the card's headline numbers on one line, e.g.
// "12 repos · 340 stars · 5 languages · rank A+ · fresh".
func printCardStats(res *pipeline.Result) {
	fmt.Fprintln(stdout, "  "+cardSummary(res))
}

func cardSummary(res *pipeline.Result) string {
	var parts []string
	if p := res.Profile; p != nil {
		parts = append(parts,
			StyleDim.Render(fmt.Sprintf("%d repos", p.RepoCount)),
			StyleDim.Render(fmt.Sprintf("%d stars", p.Stars)),
			StyleDim.Render(fmt.Sprintf("%d languages", len(res.Languages))))
	}
	parts = append(parts, StyleDim.Render("rank ")+StyleGrade.Render(string(res.Rank.Level)))
	if res.CacheHit {
		parts = append(parts, styleCached.Render("cached"))
	} else {
		parts = append(parts, StyleDim.Render("fresh"))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}
