package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/statcard/pkg/buildinfo"
	"github.com/matzehuels/statcard/pkg/cache"
	"github.com/matzehuels/statcard/pkg/httputil"
	"github.com/matzehuels/statcard/pkg/integrations"
	"github.com/matzehuels/statcard/pkg/stats"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

// APIVersion is sent as X-GitHub-Api-Version on every request.
const APIVersion = "2022-11-28"

// perPage is the maximum page size the repository listing accepts.
const perPage = 100

// DefaultMaxPages caps the repository listing at 10,000 repositories.
const DefaultMaxPages = 100

// Options configures a [Client]. The zero value talks to api.github.com
// unauthenticated, without a cache.
type Options struct {
	Token      string          // Bearer token; empty means unauthenticated
	BaseURL    string          // Defaults to DefaultBaseURL
	Cache      cache.Cache     // Response cache; nil disables caching
	CacheTTL   time.Duration   // Defaults to one hour
	HTTPClient *http.Client    // Defaults to integrations.NewHTTPClient
	Retry      httputil.Policy // Zero value means httputil.DefaultPolicy
	UserAgent  string          // Defaults to buildinfo.UserAgent
	MaxPages   int             // Repository pages fetched at most; defaults to DefaultMaxPages
}

// Client fetches user, repository, language and activity data from the
// GitHub REST API. It is safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL  string
	maxPages int
}

// NewClient creates a GitHub API client.
func NewClient(opts Options) *Client {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = buildinfo.UserAgent()
	}
	headers := map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": APIVersion,
		"User-Agent":           ua,
	}
	if opts.Token != "" {
		headers["Authorization"] = "Bearer " + opts.Token
	}

	base := integrations.NewClient(opts.Cache, "github", ttl, headers)
	if opts.HTTPClient != nil {
		base.SetHTTPClient(opts.HTTPClient)
	}
	if opts.Retry.Attempts > 0 {
		base.SetRetryPolicy(opts.Retry)
	}

	baseURL := strings.TrimSuffix(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &Client{Client: base, baseURL: baseURL, maxPages: maxPages}
}

// FetchUser returns the public profile of username.
// An unknown user yields an error matching [integrations.ErrNotFound].
func (c *Client) FetchUser(ctx context.Context, username string, refresh bool) (stats.User, error) {
	var data userResponse
	url := fmt.Sprintf("%s/users/%s", c.baseURL, username)
	if err := c.GetCached(ctx, url, refresh, &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return stats.User{}, fmt.Errorf("github user %s: %w", username, err)
		}
		return stats.User{}, err
	}
	return stats.User{
		Login:       data.Login,
		Name:        data.Name,
		PublicRepos: data.PublicRepos,
		Followers:   data.Followers,
		CreatedAt:   data.CreatedAt,
	}, nil
}

// FetchRepositories lists every repository owned by username, following
// numbered pages until an empty page is returned. The listing stops early at
// the page cap, or when a page repeats the previous one (an upstream that
// ignores the page parameter).
func (c *Client) FetchRepositories(ctx context.Context, username string, refresh bool) ([]stats.Repository, error) {
	var (
		repos []stats.Repository
		prev  string
	)
	for page := 1; page <= c.maxPages; page++ {
		url := fmt.Sprintf("%s/users/%s/repos?per_page=%d&page=%d&type=owner", c.baseURL, username, perPage, page)
		var data []repoResponse
		if err := c.GetCached(ctx, url, refresh, &data); err != nil {
			return nil, fmt.Errorf("list repositories of %s (page %d): %w", username, page, err)
		}
		if len(data) == 0 {
			return repos, nil
		}
		first := data[0].Owner.Login + "/" + data[0].Name
		if first == prev {
			return repos, nil
		}
		prev = first
		for _, r := range data {
			owner := r.Owner.Login
			if owner == "" {
				owner = username
			}
			repos = append(repos, stats.Repository{
				Name:         r.Name,
				Owner:        owner,
				Stars:        r.Stars,
				Forks:        r.Forks,
				OpenIssues:   r.OpenIssues,
				Fork:         r.Fork,
				LanguagesURL: r.LanguagesURL,
			})
		}
	}
	return repos, nil
}

// FetchLanguages returns the language byte map at languagesURL.
func (c *Client) FetchLanguages(ctx context.Context, languagesURL string, refresh bool) (map[string]int64, error) {
	langs := map[string]int64{}
	if err := c.GetCached(ctx, languagesURL, refresh, &langs); err != nil {
		return nil, err
	}
	return langs, nil
}

// Languages adapts the client to [stats.LanguageFetcher].
func (c *Client) Languages(refresh bool) stats.LanguageFetcher {
	return stats.LanguageFetcherFunc(func(ctx context.Context, languagesURL string) (map[string]int64, error) {
		return c.FetchLanguages(ctx, languagesURL, refresh)
	})
}

// FetchActivity counts commits, pull requests and issues authored by
// username through the search API. ContributedTo is the number of distinct
// repositories outside the user's own that merged one of their pull requests,
// counted over the first result page.
func (c *Client) FetchActivity(ctx context.Context, username string, refresh bool) (stats.Activity, error) {
	act := stats.Activity{Source: stats.ActivityLive}

	counts := []struct {
		query string
		dst   *int
		path  string
	}{
		{"author:" + username, &act.Commits, "commits"},
		{"author:" + username + " type:pr", &act.PullRequests, "issues"},
		{"author:" + username + " type:issue", &act.Issues, "issues"},
	}
	for _, q := range counts {
		var data searchCountResponse
		url := fmt.Sprintf("%s/search/%s?q=%s&per_page=1", c.baseURL, q.path, integrations.URLEncode(q.query))
		if err := c.GetCached(ctx, url, refresh, &data); err != nil {
			return stats.Activity{}, fmt.Errorf("search %s for %s: %w", q.path, username, err)
		}
		*q.dst = data.TotalCount
	}

	query := fmt.Sprintf("author:%s type:pr is:merged -user:%s", username, username)
	url := fmt.Sprintf("%s/search/issues?q=%s&per_page=%d", c.baseURL, integrations.URLEncode(query), perPage)
	var merged searchIssuesResponse
	if err := c.GetCached(ctx, url, refresh, &merged); err != nil {
		return stats.Activity{}, fmt.Errorf("search merged pull requests for %s: %w", username, err)
	}
	seen := make(map[string]struct{}, len(merged.Items))
	for _, it := range merged.Items {
		seen[it.RepositoryURL] = struct{}{}
	}
	act.ContributedTo = len(seen)
	return act, nil
}
