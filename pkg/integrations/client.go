package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/matzehuels/statcard/pkg/cache"
	errs "github.com/matzehuels/statcard/pkg/errors"
	"github.com/matzehuels/statcard/pkg/httputil"
	"github.com/matzehuels/statcard/pkg/observability"
)

// maxErrorBody bounds how much of a failed response body is kept in a
// [errs.RemoteAPIError].
const maxErrorBody = 1 << 10

// Client provides shared HTTP functionality for API clients.
// It handles response caching, bounded retries, rate-limit backoff and
// common request headers.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	keyer     cache.Keyer
	namespace string
	ttl       time.Duration
	headers   map[string]string
	retry     httputil.Policy
	now       func() time.Time
}

// NewClient creates a Client with the given cache and default headers.
// Cached responses are stored under namespace with the given TTL.
// Headers are applied to all requests made through this client.
// Pass nil for headers if no default headers are needed, and nil for c to
// disable caching.
func NewClient(c cache.Cache, namespace string, ttl time.Duration, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:      NewHTTPClient(),
		cache:     c,
		keyer:     cache.NewDefaultKeyer(),
		namespace: namespace,
		ttl:       ttl,
		headers:   headers,
		retry:     httputil.DefaultPolicy,
		now:       time.Now,
	}
}

// SetHTTPClient replaces the underlying HTTP client.
func (c *Client) SetHTTPClient(h *http.Client) { c.http = h }

// SetRetryPolicy replaces the retry policy used by [Client.Cached].
func (c *Client) SetRetryPolicy(p httputil.Policy) { c.retry = p }

// SetKeyer replaces the cache key layout.
func (c *Client) SetKeyer(k cache.Keyer) { c.keyer = k }

// Cached retrieves a value from cache or executes fetch and caches the result.
// If refresh is true, the cache is bypassed and fetch is always called.
// The fetch function should populate v; on success, v is stored in the cache.
//
// fetch is retried under the client's retry policy. A rate limit that
// outlasts the budget is returned as a RATE_LIMITED [errs.Error].
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	ckey := c.keyer.HTTPKey(c.namespace, key)
	if !refresh {
		if data, ok, err := c.cache.Get(ctx, ckey); err == nil && ok {
			if json.Unmarshal(data, v) == nil {
				observability.Cache().OnCacheHit(ctx, "http")
				return nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "http")
	}
	if err := c.retry.Do(ctx, fetch); err != nil {
		return terminal(err)
	}
	if data, err := json.Marshal(v); err == nil {
		if c.cache.Set(ctx, ckey, data, c.ttl) == nil {
			observability.Cache().OnCacheSet(ctx, "http", len(data))
		}
	}
	return nil
}

// GetCached performs a cached, retried GET of rawURL keyed by the URL itself.
func (c *Client) GetCached(ctx context.Context, rawURL string, refresh bool, v any) error {
	return c.Cached(ctx, rawURL, refresh, v, func() error {
		return c.Get(ctx, rawURL, v)
	})
}

// Get performs a single HTTP GET request and JSON-decodes the response into v.
// Transient failures come back as [httputil.RetryableError].
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, url, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, rawURL string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := c.checkResponse(resp, rawURL); err != nil {
		var re *httputil.RetryableError
		if errors.As(err, &re) && re.After > 0 {
			hooks.OnRateLimited(ctx, path, re.After)
		}
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) checkResponse(resp *http.Response, rawURL string) error {
	if isRateLimited(resp) {
		wait := httputil.WaitHint(resp.Header, c.now())
		return &httputil.RetryableError{
			Err: &errs.RateLimitedError{
				RetryAfter: int(wait.Round(time.Second) / time.Second),
				Message:    resp.Header.Get("X-RateLimit-Resource"),
			},
			After: wait,
		}
	}
	return checkStatus(resp.StatusCode, rawURL, resp.Body)
}

// isRateLimited reports a 429, or a 403 whose remaining quota is zero.
func isRateLimited(resp *http.Response) bool {
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return true
	case http.StatusForbidden:
		rem, err := strconv.Atoi(resp.Header.Get("X-RateLimit-Remaining"))
		return err == nil && rem == 0
	}
	return false
}

func checkStatus(code int, rawURL string, body io.Reader) error {
	if code >= 200 && code < 300 {
		return nil
	}

	apiErr := &errs.RemoteAPIError{StatusCode: code, URL: redactURL(rawURL)}
	if body != nil {
		data, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
		apiErr.Body = string(data)
	}
	switch {
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: %w", ErrNetwork, apiErr)}
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, apiErr)
	}
	return apiErr
}

// terminal maps an error that survived the retry loop onto a coded error.
func terminal(err error) error {
	var rl *errs.RateLimitedError
	if errors.As(err, &rl) {
		return errs.Wrap(errs.ErrCodeRateLimited, rl, "github rate limit exhausted")
	}
	var re *httputil.RetryableError
	if errors.As(err, &re) {
		return errs.Wrap(errs.ErrCodeNetwork, re.Err, "request failed after retries")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.Wrap(errs.ErrCodeTimeout, err, "request timed out")
	}
	return err
}

// redactURL drops query credentials before a URL is surfaced in errors.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	for _, k := range []string{"access_token", "client_secret"} {
		if q.Has(k) {
			q.Set(k, "REDACTED")
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
