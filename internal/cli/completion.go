package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/statcard/pkg/render/card"
	"github.com/matzehuels/statcard/pkg/theme"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand prints a shell completion script for statcard.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [" + strings.Join(completionShells, "|") + "]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for statcard. Besides subcommands and flags,
it completes theme names for --theme and chart layouts for --layout.

  $ source <(statcard completion bash)
  $ statcard completion zsh > "${fpath[1]}/_statcard"
  $ statcard completion fish > ~/.config/fish/completions/statcard.fish
  PS> statcard completion powershell | Out-String | Invoke-Expression

Open a new shell afterwards, then try:

  $ statcard render octocat --theme <TAB>`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// registerCardCompletions completes --theme and --layout on cmd.
func registerCardCompletions(cmd *cobra.Command) {
	cmd.RegisterFlagCompletionFunc("theme", completeThemes)
	cmd.RegisterFlagCompletionFunc("layout", completeLayouts)
}

func completeThemes(_ *cobra.Command, _ []string, prefix string) ([]string, cobra.ShellCompDirective) {
	return matching(theme.Builtin().Names(), prefix), cobra.ShellCompDirectiveNoFileComp
}

func completeLayouts(_ *cobra.Command, _ []string, prefix string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, len(card.Layouts))
	for i, l := range card.Layouts {
		names[i] = string(l)
	}
	return matching(names, prefix), cobra.ShellCompDirectiveNoFileComp
}

func matching(names []string, prefix string) []string {
	var out []string
	for _, n := range names {
		if strings.HasPrefix(n, prefix) {
			out = append(out, n)
		}
	}
	return out
}
