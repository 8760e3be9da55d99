package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/statcard/pkg/theme"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// themesCommand creates the themes command.
func (c *CLI) themesCommand() *cobra.Command {
	var pick bool

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List card themes",
		Long: `List the built-in themes and those defined in the config file.

With --pick, browse the themes interactively and print the chosen name,
e.g. statcard render octocat --theme "$(statcard themes --pick)".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.cfg.Registry()
			if err != nil {
				return err
			}
			if !pick {
				fmt.Fprintln(cmd.OutOrStdout(), themesTable(reg))
				return nil
			}

			m, err := tea.NewProgram(NewThemePickerModel(reg.Themes()), tea.WithOutput(cmd.ErrOrStderr())).Run()
			if err != nil {
				return fmt.Errorf("theme picker: %w", err)
			}
			if sel := m.(ThemePickerModel).Selected; sel != nil {
				fmt.Fprintln(cmd.OutOrStdout(), sel.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "choose a theme interactively")

	return cmd
}

// themesTable renders every registered theme with color swatches.
func themesTable(reg *theme.Registry) string {
	def := reg.Default().Name
	rows := [][]string{}
	for _, th := range reg.Themes() {
		name := th.Name
		if name == def {
			name += " *"
		}
		rows = append(rows, []string{
			name,
			swatch(th.Background),
			swatch(th.Title),
			swatch(th.Accent),
			swatch(th.Text),
			preview(th),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Theme", "Background", "Title", "Accent", "Text", "Preview").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.Render()
}

// swatch renders a colored block followed by the hex code.
func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ") + " " + hex
}

// preview renders a sample line in the theme's own colors.
func preview(th theme.Theme) string {
	bg := lipgloss.Color(th.Background)
	title := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(th.Title)).Bold(true).Render(" A+ ")
	text := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(th.Text)).Render("1.2k stars ")
	return title + text
}

// =============================================================================
// ThemePickerModel - Interactive theme selection
// =============================================================================

// ThemePickerModel is the bubbletea model for interactive theme selection.
type ThemePickerModel struct {
	Themes   []theme.Theme
	Cursor   int
	Selected *theme.Theme
	Height   int
	Offset   int
}

// NewThemePickerModel creates a new theme picker over themes.
func NewThemePickerModel(themes []theme.Theme) ThemePickerModel {
	return ThemePickerModel{Themes: themes, Height: 10}
}

func (m ThemePickerModel) Init() tea.Cmd {
	return nil
}

func (m ThemePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Themes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Themes) == 0 {
				return m, tea.Quit
			}
			th := m.Themes[m.Cursor]
			m.Selected = &th
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 3)
	}
	return m, nil
}

func (m ThemePickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Theme"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Themes))
	for i := m.Offset; i < end; i++ {
		th := m.Themes[i]
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%-10s", cursor, th.Name)))
		b.WriteString(" ")
		b.WriteString(preview(th))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Themes))))

	return b.String()
}
