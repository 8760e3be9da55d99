package httputil

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"
)

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (network timeouts, 5xx responses, rate limits) with
// this type so that [Retry] knows to attempt the operation again.
//
// After, when positive, is the server-provided wait hint (Retry-After or
// X-RateLimit-Reset) and replaces the exponential delay for that attempt.
type RetryableError struct {
	Err   error
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// ErrWaitTooLong is returned when a server wait hint exceeds [Policy.MaxWait].
// The operation fails fast instead of sleeping past the caller's budget.
var ErrWaitTooLong = errors.New("retry wait exceeds limit")

// Policy bounds a retry loop. The zero value is not useful; start from
// [DefaultPolicy].
type Policy struct {
	Attempts  int           // Total attempts including the first, min 1
	BaseDelay time.Duration // First backoff delay, doubled after each attempt
	MaxWait   time.Duration // Upper bound for a single wait; 0 means unbounded
}

// DefaultPolicy is 3 attempts, 1s initial delay, waits capped at 30s.
var DefaultPolicy = Policy{Attempts: 3, BaseDelay: time.Second, MaxWait: 30 * time.Second}

// Do executes fn until it succeeds, returns a non-retryable error, or the
// attempt budget is exhausted. Returns the last error if all attempts fail,
// or ctx.Err() if cancelled while waiting.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.BaseDelay
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		if i == attempts-1 {
			break
		}

		wait := delay
		if re.After > 0 {
			wait = re.After
		}
		if p.MaxWait > 0 && wait > p.MaxWait {
			return errors.Join(ErrWaitTooLong, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
			delay *= 2
		}
	}
	return lastErr
}

// Retry executes fn up to attempts times with exponential backoff.
// It only retries errors wrapped with [RetryableError]; other errors are
// returned immediately. The delay doubles after each failed attempt.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	return Policy{Attempts: attempts, BaseDelay: delay}.Do(ctx, fn)
}

// RetryWithBackoff is a convenience wrapper around [DefaultPolicy].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultPolicy.Do(ctx, fn)
}

// WaitHint extracts a server-provided wait from response headers.
// Retry-After (seconds or HTTP date) takes precedence over
// X-RateLimit-Reset (unix seconds). Returns 0 when no usable hint exists.
func WaitHint(h http.Header, now time.Time) time.Duration {
	if v := h.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
		if t, err := http.ParseTime(v); err == nil && t.After(now) {
			return t.Sub(now)
		}
	}
	if v := h.Get("X-RateLimit-Reset"); v != "" {
		if unix, err := strconv.ParseInt(v, 10, 64); err == nil {
			if reset := time.Unix(unix, 0); reset.After(now) {
				return reset.Sub(now)
			}
		}
	}
	return 0
}
