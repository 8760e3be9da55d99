package stats

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// LanguageFetcher returns the language byte map behind a repository's
// languages_url.
type LanguageFetcher interface {
	FetchLanguages(ctx context.Context, languagesURL string) (map[string]int64, error)
}

// LanguageFetcherFunc adapts a function to [LanguageFetcher].
type LanguageFetcherFunc func(ctx context.Context, languagesURL string) (map[string]int64, error)

// FetchLanguages calls f.
func (f LanguageFetcherFunc) FetchLanguages(ctx context.Context, languagesURL string) (map[string]int64, error) {
	return f(ctx, languagesURL)
}

// PartialDataError reports per-repository language fetches that failed.
// The histogram returned alongside it is valid and excludes those repos.
type PartialDataError struct {
	Failures map[string]error
}

// Error summarises the failed repositories in name order.
func (e *PartialDataError) Error() string {
	names := e.Repos()
	if len(names) > 3 {
		names = append(names[:3], fmt.Sprintf("and %d more", len(e.Failures)-3))
	}
	return fmt.Sprintf("languages unavailable for %d repositories: %s", len(e.Failures), strings.Join(names, ", "))
}

// Repos returns the failed repository names, sorted.
func (e *PartialDataError) Repos() []string {
	names := make([]string, 0, len(e.Failures))
	for name := range e.Failures {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *PartialDataError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, name := range e.Repos() {
		errs = append(errs, e.Failures[name])
	}
	return errs
}

// Aggregate folds repositories into profile counters. The repository count
// follows the same fork policy as stars and forks.
func Aggregate(user User, repos []Repository, activity Activity, p Policy) Profile {
	prof := Profile{
		Login:       user.Login,
		DisplayName: user.DisplayName(),
		Followers:   user.Followers,
		Activity:    activity,
	}
	for _, r := range repos {
		if r.Fork && !p.ForksInTotals {
			continue
		}
		prof.RepoCount++
		prof.Stars += r.Stars
		prof.Forks += r.Forks
		prof.OpenIssues += r.OpenIssues
	}
	return prof
}

// LanguageRepos returns the repositories whose languages are fetched under p.
func LanguageRepos(repos []Repository, p Policy) []Repository {
	out := make([]Repository, 0, len(repos))
	for _, r := range repos {
		if r.Fork && !p.ForkLanguages {
			continue
		}
		if r.LanguagesURL == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

// AggregateLanguages fetches each eligible repository's languages with at
// most p.Concurrency fetches in flight and sums them into one histogram.
//
// A failed fetch never cancels the others. Every worker writes only its own
// result slot; the merge runs after all fetches have returned. When any fetch
// failed the returned error is a *PartialDataError and the histogram holds
// the successful repositories only.
func AggregateLanguages(ctx context.Context, repos []Repository, fetcher LanguageFetcher, p Policy) (Histogram, error) {
	eligible := LanguageRepos(repos, p)
	hist := Histogram{}
	if len(eligible) == 0 {
		return hist, nil
	}

	type result struct {
		langs map[string]int64
		err   error
	}
	results := make([]result, len(eligible))

	var g errgroup.Group
	g.SetLimit(p.workers(len(eligible)))
	for i, repo := range eligible {
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(ctx, p.timeout())
			defer cancel()
			langs, err := fetcher.FetchLanguages(fetchCtx, repo.LanguagesURL)
			results[i] = result{langs: langs, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var partial *PartialDataError
	for i, res := range results {
		if res.err != nil {
			if partial == nil {
				partial = &PartialDataError{Failures: make(map[string]error)}
			}
			partial.Failures[eligible[i].Name] = res.err
			continue
		}
		hist.Add(res.langs)
	}
	if partial != nil {
		return hist, partial
	}
	return hist, nil
}
