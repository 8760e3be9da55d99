// Package integrations provides the shared HTTP client used by upstream API
// clients.
//
// # Overview
//
// [Client] wraps net/http with the behavior every upstream call needs:
//
//   - default headers applied to each request
//   - response caching in a [cache.Cache], keyed by URL
//   - bounded retries with exponential backoff ([httputil.Policy])
//   - rate-limit detection (429, or 403 with X-RateLimit-Remaining: 0) that
//     waits for the Retry-After or X-RateLimit-Reset hint
//
// The GitHub client lives in the [github] subpackage:
//
//	client := github.NewClient(github.Options{Token: token, Cache: c})
//	repos, err := client.FetchRepositories(ctx, "octocat", false)
//
// # Errors
//
// Failures are typed so callers can pick a response:
//
//   - non-2xx responses: [errors.RemoteAPIError] (404 also matches [ErrNotFound])
//   - rate limit past the retry budget: RATE_LIMITED wrapping [errors.RateLimitedError]
//   - 5xx and transport errors past the budget: NETWORK_ERROR wrapping [ErrNetwork]
//
// [cache.Cache]: github.com/matzehuels/statcard/pkg/cache.Cache
// [httputil.Policy]: github.com/matzehuels/statcard/pkg/httputil.Policy
// [errors.RemoteAPIError]: github.com/matzehuels/statcard/pkg/errors.RemoteAPIError
// [errors.RateLimitedError]: github.com/matzehuels/statcard/pkg/errors.RateLimitedError
// [github]: github.com/matzehuels/statcard/pkg/integrations/github
package integrations
