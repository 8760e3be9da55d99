package cli

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/statcard/pkg/errors"
	"github.com/matzehuels/statcard/pkg/snapshot"
)

// syncCommand creates the sync command that refreshes stored snapshots.
func (c *CLI) syncCommand() *cobra.Command {
	var (
		once     bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "sync [username...]",
		Short: "Refresh stored snapshots for a list of users",
		Long: `Fetch every listed user (or sync.users from the config) from GitHub and
overwrite their stored snapshot. Without --once the job repeats every
--interval until interrupted.

Snapshots go to the configured snapshot backend: file (default), redis,
mongo or postgres.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			users := c.cfg.Sync.Users
			if len(args) > 0 {
				users = args
			}
			if len(users) == 0 {
				return errs.New(errs.ErrCodeInvalidConfig, "no users to sync: pass usernames or set sync.users")
			}
			for _, u := range users {
				if err := errs.ValidateUsername(u); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("interval") {
				interval = c.cfg.Sync.Interval
			}
			return c.runSync(cmd.Context(), users, interval, once)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "run a single pass and exit")
	cmd.Flags().DurationVar(&interval, "interval", snapshot.DefaultSyncInterval, "time between passes")

	return cmd
}

func (c *CLI) runSync(ctx context.Context, users []string, interval time.Duration, once bool) error {
	cch, err := c.newCache(ctx, false)
	if err != nil {
		return err
	}
	defer cch.Close()

	store, err := snapshot.Open(ctx, c.cfg.Snapshot.Store())
	if err != nil {
		return err
	}
	defer store.Close()

	syncer := &snapshot.Syncer{
		Source:   c.newLiveSource(cch),
		Store:    store,
		Users:    users,
		Interval: interval,
		Logger:   c.Logger,
	}
	if once {
		spinner := newSpinner(ctx, os.Stderr, "Syncing...")
		if !c.verbose {
			syncer.Progress = func(login string, n, total int) {
				spinner.SetMessage("Syncing %s (%d/%d)", login, n, total)
			}
			spinner.Start()
		}
		err := syncer.RunOnce(ctx)
		spinner.Stop()
		if err != nil {
			printError("Some users failed to sync")
			return err
		}
		printSuccess("Synced %d users", len(users))
		return nil
	}

	err = syncer.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
