package stats

import "time"

// Concurrency bounds for language fan-out.
const (
	DefaultConcurrency  = 6
	MaxConcurrency      = 16
	DefaultFetchTimeout = 10 * time.Second
)

// Policy selects which repositories contribute to which aggregate.
// Fork handling for totals and for the language mix are independent.
type Policy struct {
	// ForksInTotals counts forked repositories toward repo, star, fork and
	// open issue totals.
	ForksInTotals bool `json:"forks_in_totals" toml:"forks_in_totals" yaml:"forks_in_totals"`

	// ForkLanguages lets forked repositories contribute to the language
	// histogram.
	ForkLanguages bool `json:"fork_languages" toml:"fork_languages" yaml:"fork_languages"`

	// Concurrency is the number of parallel language fetches (1..16).
	Concurrency int `json:"concurrency" toml:"concurrency" yaml:"concurrency"`

	// FetchTimeout bounds each language fetch. A timeout counts as a skip.
	FetchTimeout time.Duration `json:"fetch_timeout" toml:"fetch_timeout" yaml:"fetch_timeout"`
}

// DefaultPolicy counts forks toward totals but not toward languages.
func DefaultPolicy() Policy {
	return Policy{
		ForksInTotals: true,
		ForkLanguages: false,
		Concurrency:   DefaultConcurrency,
		FetchTimeout:  DefaultFetchTimeout,
	}
}

func (p Policy) workers(n int) int {
	w := p.Concurrency
	if w <= 0 {
		w = DefaultConcurrency
	}
	w = min(w, MaxConcurrency)
	return max(1, min(w, n))
}

func (p Policy) timeout() time.Duration {
	if p.FetchTimeout <= 0 {
		return DefaultFetchTimeout
	}
	return p.FetchTimeout
}
