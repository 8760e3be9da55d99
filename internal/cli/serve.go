package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/statcard/pkg/server"
)

// serveCommand creates the serve command that runs the HTTP card service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		demoUser string
		lenient  bool
		noStore  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stats cards over HTTP",
		Long: `Serve stats cards over HTTP until interrupted.

  GET /api/card?username=<login>&theme=<name>&layout=<bars|stacked|ring>&refresh=true
  GET /api/themes
  GET /healthz

Cards are cached by the configured cache backend; use a redis cache when
running several instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.cfg.Server
			if cmd.Flags().Changed("addr") {
				opts.Addr = addr
			}
			if cmd.Flags().Changed("demo-user") {
				opts.DemoUser = demoUser
				opts.Strict = false
			}
			if lenient {
				opts.Strict = false
			}
			if noStore {
				opts.CacheControl = server.NoStore
			}
			if opts.TopN == 0 {
				opts.TopN = c.cfg.Card.TopN
			}
			opts.ShowUpdated = opts.ShowUpdated || c.cfg.Card.ShowUpdated

			ctx := cmd.Context()
			env, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer env.Close()

			srv := server.New(env.runner, env.runner.Themes, opts, c.Logger)
			c.Logger.Info("starting server",
				"addr", opts.Addr,
				"strict", opts.Strict,
				"cache", c.cfg.Cache.Backend,
				"snapshot", c.cfg.Snapshot.Backend)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&demoUser, "demo-user", "", "user rendered when ?username= is missing (implies --lenient)")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "render the demo user instead of rejecting requests without a username")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "send Cache-Control: no-store")

	return cmd
}
