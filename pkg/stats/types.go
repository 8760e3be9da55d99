package stats

import (
	"maps"
	"time"
)

// User is the subset of a GitHub user profile shown on a card.
type User struct {
	Login       string    `json:"login"`
	Name        string    `json:"name,omitempty"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	CreatedAt   time.Time `json:"created_at"`
}

// DisplayName returns the user's name, falling back to the login.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}

// Repository is one repository record as listed by GitHub. It is never
// modified after it has been fetched.
type Repository struct {
	Name         string `json:"name"`
	Owner        string `json:"owner"`
	Stars        int    `json:"stars"`
	Forks        int    `json:"forks"`
	OpenIssues   int    `json:"open_issues"`
	Fork         bool   `json:"fork"`
	LanguagesURL string `json:"languages_url"`
}

// Histogram maps a language name to its accumulated byte count.
type Histogram map[string]int64

// Total returns the sum of all byte counts.
func (h Histogram) Total() int64 {
	var total int64
	for _, n := range h {
		total += n
	}
	return total
}

// Add merges other into h. Negative counts are ignored.
func (h Histogram) Add(other map[string]int64) {
	for lang, n := range other {
		if n > 0 {
			h[lang] += n
		}
	}
}

// Clone returns an independent copy of h.
func (h Histogram) Clone() Histogram {
	if h == nil {
		return Histogram{}
	}
	return maps.Clone(h)
}

// ActivitySource tells where the activity counters came from.
type ActivitySource string

const (
	// ActivityLive counters come from the GitHub search API.
	ActivityLive ActivitySource = "live"
	// ActivityPlaceholder counters are fixed values used to save rate limit.
	ActivityPlaceholder ActivitySource = "placeholder"
	// ActivityNone means no activity data was fetched; counters are zero.
	ActivityNone ActivitySource = "none"
)

// Activity holds the counters that feed the rank score besides stars.
type Activity struct {
	Commits       int            `json:"commits"`
	PullRequests  int            `json:"pull_requests"`
	Issues        int            `json:"issues"`
	ContributedTo int            `json:"contributed_to"`
	Source        ActivitySource `json:"source"`
}

// PlaceholderActivity is used when the activity mode is "placeholder".
var PlaceholderActivity = Activity{
	Commits:       250,
	PullRequests:  40,
	Issues:        20,
	ContributedTo: 5,
	Source:        ActivityPlaceholder,
}

// Profile is the flat aggregate rendered on a card.
type Profile struct {
	Login       string   `json:"login"`
	DisplayName string   `json:"display_name"`
	RepoCount   int      `json:"repo_count"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	OpenIssues  int      `json:"open_issues"`
	Followers   int      `json:"followers"`
	Activity    Activity `json:"activity"`
}
