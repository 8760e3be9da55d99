// Package github provides an HTTP client for the GitHub REST API.
//
// # Overview
//
// This package fetches the data a stats card is built from
// (https://api.github.com):
//
//   - [Client.FetchUser]: profile (name, followers, public repo count)
//   - [Client.FetchRepositories]: every owned repository, paginated
//   - [Client.FetchLanguages]: byte counts per language for one repository
//   - [Client.FetchActivity]: commit, PR, issue and contribution counts via search
//
// # Usage
//
//	client := github.NewClient(github.Options{
//	    Token:    os.Getenv("GITHUB_TOKEN"),
//	    Cache:    fileCache,
//	    CacheTTL: time.Hour,
//	})
//
//	repos, err := client.FetchRepositories(ctx, "octocat", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	hist, err := stats.AggregateLanguages(ctx, repos, client.Languages(false), stats.DefaultPolicy())
//
// # Rate Limits
//
// Unauthenticated requests share a small hourly budget, and search requests
// have their own tighter limit. Rate-limit responses are retried after the
// server's wait hint; see [integrations.Client] for the retry rules.
//
// [integrations.Client]: github.com/matzehuels/statcard/pkg/integrations.Client
package github
