package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	vegeta "github.com/tsenart/vegeta/v12/lib"

	errs "github.com/matzehuels/statcard/pkg/errors"
)

// loadtestOpts holds the command-line flags for the loadtest command.
type loadtestOpts struct {
	target   string        // server base URL
	users    []string      // usernames cycled through
	themes   []string      // themes cycled through
	rate     int           // requests per second
	duration time.Duration // attack duration
}

// loadtestCommand creates the loadtest command that drives a running server.
func (c *CLI) loadtestCommand() *cobra.Command {
	opts := loadtestOpts{
		target:   "http://localhost:8080",
		rate:     50,
		duration: 10 * time.Second,
	}

	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Load test a running statcard server",
		Long: `Send GET /api/card requests to a running server at a fixed rate and
print success ratio, status codes and latency percentiles.

Usernames and themes are cycled so that both cached and uncached cards are
requested.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.users) == 0 {
				opts.users = c.cfg.Sync.Users
			}
			if len(opts.users) == 0 {
				return errs.New(errs.ErrCodeInvalidInput, "no users: pass --user or set sync.users")
			}
			if opts.rate <= 0 || opts.duration <= 0 {
				return errs.New(errs.ErrCodeInvalidInput, "--rate and --duration must be positive")
			}
			metrics, err := runLoadtest(cmd.Context(), opts)
			printLoadtestReport(cmd.OutOrStdout(), metrics)
			return err
		},
	}

	cmd.Flags().StringVar(&opts.target, "target", opts.target, "server base URL")
	cmd.Flags().StringSliceVarP(&opts.users, "user", "u", nil, "usernames to request (default: sync.users)")
	cmd.Flags().StringSliceVar(&opts.themes, "theme", nil, "themes to cycle through")
	cmd.Flags().IntVar(&opts.rate, "rate", opts.rate, "requests per second")
	cmd.Flags().DurationVar(&opts.duration, "duration", opts.duration, "attack duration")

	return cmd
}

// cardTargeter cycles through users and themes, one card request per target.
func cardTargeter(base string, users, themes []string) vegeta.Targeter {
	var n atomic.Uint64
	base = strings.TrimSuffix(base, "/")
	return func(t *vegeta.Target) error {
		if t == nil {
			return vegeta.ErrNilTarget
		}
		i := n.Add(1) - 1
		q := url.Values{"username": {users[i%uint64(len(users))]}}
		if len(themes) > 0 {
			q.Set("theme", themes[(i/uint64(len(users)))%uint64(len(themes))])
		}
		t.Method = http.MethodGet
		t.URL = base + "/api/card?" + q.Encode()
		t.Body = nil
		t.Header = http.Header{"Accept": {"image/svg+xml"}}
		return nil
	}
}

func runLoadtest(ctx context.Context, opts loadtestOpts) (*vegeta.Metrics, error) {
	rate := vegeta.Rate{Freq: opts.rate, Per: time.Second}
	attacker := vegeta.NewAttacker(vegeta.Timeout(30 * time.Second))
	targeter := cardTargeter(opts.target, opts.users, opts.themes)

	var metrics vegeta.Metrics
	results := attacker.Attack(targeter, rate, opts.duration, "statcard")
	for {
		select {
		case <-ctx.Done():
			attacker.Stop()
			for res := range results {
				metrics.Add(res)
			}
			metrics.Close()
			return &metrics, ctx.Err()
		case res, ok := <-results:
			if !ok {
				metrics.Close()
				return &metrics, nil
			}
			metrics.Add(res)
		}
	}
}

func printLoadtestReport(w io.Writer, m *vegeta.Metrics) {
	fmt.Fprintln(w, StyleTitle.Render("Results"))
	row := func(key, value string) {
		fmt.Fprintln(w, StyleLabel.Render(key)+" "+StyleValue.Render(value))
	}
	row("Requests", fmt.Sprintf("%d (%.1f/s)", m.Requests, m.Rate))
	row("Success", fmt.Sprintf("%.2f%%", m.Success*100))
	row("Status", formatStatusCodes(m.StatusCodes))
	row("Latency p50", m.Latencies.P50.Round(time.Microsecond).String())
	row("Latency p95", m.Latencies.P95.Round(time.Microsecond).String())
	row("Latency p99", m.Latencies.P99.Round(time.Microsecond).String())
	row("Latency max", m.Latencies.Max.Round(time.Microsecond).String())
	if len(m.Errors) > 0 {
		row("Errors", strings.Join(m.Errors, "; "))
	}
}

func formatStatusCodes(codes map[string]int) string {
	keys := make([]string, 0, len(codes))
	for k := range codes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s×%d", k, codes[k])
	}
	return strings.Join(parts, " ")
}
