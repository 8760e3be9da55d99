package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/statcard/pkg/errors"
	"github.com/matzehuels/statcard/pkg/integrations"
	"github.com/matzehuels/statcard/pkg/observability"
	"github.com/matzehuels/statcard/pkg/snapshot"
	"github.com/matzehuels/statcard/pkg/stats"
)

// GitHub is the subset of the GitHub client a live source needs.
// *github.Client implements it.
type GitHub interface {
	FetchUser(ctx context.Context, username string, refresh bool) (stats.User, error)
	FetchRepositories(ctx context.Context, username string, refresh bool) ([]stats.Repository, error)
	FetchLanguages(ctx context.Context, languagesURL string, refresh bool) (map[string]int64, error)
	FetchActivity(ctx context.Context, username string, refresh bool) (stats.Activity, error)
}

// LiveSource builds snapshots straight from the GitHub API: user, then the
// paginated repository list, then the bounded language fan-out.
type LiveSource struct {
	Client GitHub
	Policy stats.Policy

	// Activity selects how activity counters are obtained: live search
	// queries, fixed placeholder values, or none.
	Activity stats.ActivitySource

	Logger *log.Logger
	Now    func() time.Time
}

// NewLiveSource returns a live source with the default policy and live
// activity counters.
func NewLiveSource(client GitHub, logger *log.Logger) *LiveSource {
	if logger == nil {
		logger = log.Default()
	}
	return &LiveSource{
		Client:   client,
		Policy:   stats.DefaultPolicy(),
		Activity: stats.ActivityLive,
		Logger:   logger,
	}
}

// Fingerprint identifies the aggregation settings that shape a snapshot.
func (s *LiveSource) Fingerprint() string {
	p := s.Policy
	return fmt.Sprintf("forks_in_totals=%t fork_languages=%t activity=%s", p.ForksInTotals, p.ForkLanguages, s.Activity)
}

// Load fetches and aggregates one user. Failed language fetches do not fail
// the load; they are listed in Snapshot.PartialFailures.
func (s *LiveSource) Load(ctx context.Context, login string, refresh bool) (*snapshot.Snapshot, error) {
	user, err := s.Client.FetchUser(ctx, login, refresh)
	if err != nil {
		return nil, classify(err, login)
	}
	repos, err := s.Client.FetchRepositories(ctx, login, refresh)
	if err != nil {
		return nil, classify(err, login)
	}

	activity := s.activity(ctx, login, refresh)
	profile := stats.Aggregate(user, repos, activity, s.Policy)

	fetcher := stats.LanguageFetcherFunc(func(ctx context.Context, url string) (map[string]int64, error) {
		return s.Client.FetchLanguages(ctx, url, refresh)
	})
	hist, err := stats.AggregateLanguages(ctx, repos, fetcher, s.Policy)

	snap := &snapshot.Snapshot{
		Login:     user.Login,
		Profile:   profile,
		Languages: hist,
		FetchedAt: s.now(),
	}
	var partial *stats.PartialDataError
	switch {
	case errors.As(err, &partial):
		snap.PartialFailures = partial.Repos()
		for _, repo := range snap.PartialFailures {
			observability.Pipeline().OnLanguageSkipped(ctx, login, repo, partial.Failures[repo])
		}
		s.logger().Warn("languages incomplete", "user", login, "skipped", len(snap.PartialFailures), "repos", len(repos))
	case err != nil:
		return nil, classify(err, login)
	}
	if snap.Login == "" {
		snap.Login = login
	}
	return snap, nil
}

func (s *LiveSource) activity(ctx context.Context, login string, refresh bool) stats.Activity {
	switch s.Activity {
	case stats.ActivityPlaceholder:
		return stats.PlaceholderActivity
	case stats.ActivityNone:
		return stats.Activity{Source: stats.ActivityNone}
	}
	act, err := s.Client.FetchActivity(ctx, login, refresh)
	if err != nil {
		s.logger().Warn("activity unavailable", "user", login, "error", err)
		return stats.Activity{Source: stats.ActivityNone}
	}
	return act
}

// classify turns client failures into coded errors with short messages
// suitable for a placeholder card.
func classify(err error, login string) error {
	if errs.GetCode(err) != "" {
		return err
	}
	if errors.Is(err, integrations.ErrNotFound) {
		return errs.Wrap(errs.ErrCodeNotFound, err, "GitHub user %s not found", login)
	}
	var remote *errs.RemoteAPIError
	if errors.As(err, &remote) {
		return errs.Wrap(errs.ErrCodeRemoteAPI, err, "GitHub API error (status %d)", remote.StatusCode)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.Wrap(errs.ErrCodeTimeout, err, "GitHub request timed out")
	}
	return err
}

func (s *LiveSource) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *LiveSource) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}
