// Package httputil provides retry helpers for the GitHub API client.
//
// # Retry
//
// [Policy.Do] wraps an operation with a bounded retry loop for transient
// failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 and exhausted-quota 403 rate limit responses
//
// An operation opts into a retry by returning a [RetryableError]. When the
// server sent a wait hint (see [WaitHint]) it is stored in
// [RetryableError.After] and used instead of the exponential delay:
//
//	err := httputil.DefaultPolicy.Do(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// # Configuration
//
// [DefaultPolicy] is suitable for interactive use:
//
//   - Max attempts: 3
//   - Base backoff: 1 second
//   - Longest single wait: 30 seconds (longer hints fail fast)
package httputil
