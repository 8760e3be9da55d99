package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/statcard/pkg/errors"
	"github.com/matzehuels/statcard/pkg/pipeline"
	"github.com/matzehuels/statcard/pkg/render/card"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file path
	theme   string // theme name; unknown names fall back to the default
	layout  string // chart layout: bars, stacked or ring
	topN    int    // languages shown
	caption string // fixed caption in the card corner
	updated bool   // caption "Updated: <date>" when caption is empty
	noCache bool   // bypass the response and card cache entirely
	refresh bool   // refetch from GitHub and overwrite cached entries
}

// renderCommand creates the render command that writes one card to disk.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <username>",
		Short: "Fetch a GitHub user and write their stats card",
		Long: `Fetch a GitHub user's profile, repositories and languages, and write the
rendered card to dashboard.svg (or the file given with -o).

Nothing is written when the data cannot be fetched; the command exits with
a non-zero status instead.`,
		Args: cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			if !cmd.Flags().Changed("theme") {
				opts.theme = c.cfg.Card.Theme
			}
			if !cmd.Flags().Changed("layout") {
				opts.layout = c.cfg.Card.Layout
			}
			if !cmd.Flags().Changed("top") {
				opts.topN = c.cfg.Card.TopN
			}
			if !cmd.Flags().Changed("updated") {
				opts.updated = c.cfg.Card.ShowUpdated
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultOutput, "output file")
	cmd.Flags().StringVarP(&opts.theme, "theme", "t", pipeline.DefaultTheme, "card theme (see 'statcard themes')")
	cmd.Flags().StringVarP(&opts.layout, "layout", "l", string(pipeline.DefaultLayout), "language chart: "+layoutNames())
	cmd.Flags().IntVarP(&opts.topN, "top", "n", pipeline.DefaultTopN, "number of languages shown")
	cmd.Flags().StringVar(&opts.caption, "caption", "", "caption printed in the card corner")
	cmd.Flags().BoolVar(&opts.updated, "updated", false, "caption the card with the data date")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the response and card cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "refetch from GitHub, ignoring cached data")
	registerCardCompletions(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, username string, opts renderOpts) error {
	env, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer env.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, "Fetching "+username+"...")
	if !c.verbose {
		spinner.Start()
	}
	res, err := env.runner.Execute(ctx, pipeline.Options{
		Username:    username,
		Theme:       opts.theme,
		Layout:      opts.layout,
		TopN:        opts.topN,
		Refresh:     opts.refresh,
		Caption:     opts.caption,
		ShowUpdated: opts.updated,
	})
	spinner.Stop()
	if err != nil {
		printError("%s", errs.UserMessage(err))
		return err
	}
	prog.done("Rendered " + username)

	if dir := filepath.Dir(opts.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(opts.output, res.SVG, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}

	printSuccess("Card written")
	printFile(opts.output)
	printCardStats(res)
	if len(res.Partial) > 0 {
		printWarning("Languages missing for %d repositories: %s", len(res.Partial), strings.Join(res.Partial, ", "))
	}
	return nil
}

func layoutNames() string {
	names := make([]string, len(card.Layouts))
	for i, l := range card.Layouts {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}
