// Package rank turns profile counters into a tiered grade.
//
// The score is a weighted sum of activity counters and stars. The grade is
// the highest tier whose threshold the score reaches, and progress is how far
// the score has moved through that tier, as a percentage:
//
//	r := rank.Evaluate(profile)
//	fmt.Println(r.Level, r.Progress) // "A+" 25
package rank

import (
	"github.com/matzehuels/statcard/pkg/stats"
)

// Level is a grade label, from C up to S++.
type Level string

// Grades in ascending order.
const (
	LevelC     Level = "C"
	LevelB     Level = "B"
	LevelBPlus Level = "B+"
	LevelA     Level = "A"
	LevelAPlus Level = "A+"
	LevelAPP   Level = "A++"
	LevelS     Level = "S"
	LevelSPlus Level = "S+"
	LevelSPP   Level = "S++"
)

// Tier is the inclusive lower score bound of a level.
type Tier struct {
	Level Level
	Min   float64
}

// DefaultTiers are sorted ascending by Min. Scores below the first tier rank C.
var DefaultTiers = []Tier{
	{LevelB, 200},
	{LevelBPlus, 500},
	{LevelA, 1000},
	{LevelAPlus, 2000},
	{LevelAPP, 3000},
	{LevelS, 4000},
	{LevelSPlus, 5000},
	{LevelSPP, 6000},
}

// topTierSpan sets the upper bound of the last tier to Min×topTierSpan.
const topTierSpan = 1.5

// Weights are the per-counter multipliers of the score.
type Weights struct {
	Commits       float64 `json:"commits" toml:"commits" yaml:"commits"`
	PullRequests  float64 `json:"pull_requests" toml:"pull_requests" yaml:"pull_requests"`
	Issues        float64 `json:"issues" toml:"issues" yaml:"issues"`
	Stars         float64 `json:"stars" toml:"stars" yaml:"stars"`
	ContributedTo float64 `json:"contributed_to" toml:"contributed_to" yaml:"contributed_to"`
}

// DefaultWeights favor contributions to other projects and pull requests.
var DefaultWeights = Weights{
	Commits:       1.5,
	PullRequests:  2.0,
	Issues:        0.5,
	Stars:         1.0,
	ContributedTo: 2.5,
}

// Counters are the inputs to the score.
type Counters struct {
	Commits       int
	PullRequests  int
	Issues        int
	Stars         int
	ContributedTo int
}

// CountersOf extracts score inputs from a profile.
func CountersOf(p stats.Profile) Counters {
	return Counters{
		Commits:       p.Activity.Commits,
		PullRequests:  p.Activity.PullRequests,
		Issues:        p.Activity.Issues,
		Stars:         p.Stars,
		ContributedTo: p.Activity.ContributedTo,
	}
}

// Result is a derived grade. It is never persisted.
type Result struct {
	Level    Level   `json:"level"`
	Progress float64 `json:"progress"` // 0..100 within the level
	Score    float64 `json:"score"`
}

// Scorer computes grades with a fixed set of weights and tiers.
// The zero value uses DefaultWeights and DefaultTiers.
type Scorer struct {
	Weights Weights
	Tiers   []Tier
}

// NewScorer returns a scorer with the given weights and the default tiers.
func NewScorer(w Weights) *Scorer {
	return &Scorer{Weights: w, Tiers: DefaultTiers}
}

func (s *Scorer) weights() Weights {
	if s == nil || s.Weights == (Weights{}) {
		return DefaultWeights
	}
	return s.Weights
}

func (s *Scorer) tiers() []Tier {
	if s == nil || len(s.Tiers) == 0 {
		return DefaultTiers
	}
	return s.Tiers
}

// Settings returns the weights and tiers in effect, defaults included.
func (s *Scorer) Settings() (Weights, []Tier) {
	return s.weights(), s.tiers()
}

// Score is the weighted linear sum of c.
func (s *Scorer) Score(c Counters) float64 {
	w := s.weights()
	return float64(c.Commits)*w.Commits +
		float64(c.PullRequests)*w.PullRequests +
		float64(c.Issues)*w.Issues +
		float64(c.Stars)*w.Stars +
		float64(c.ContributedTo)*w.ContributedTo
}

// Rank grades score. Negative scores are treated as zero.
func (s *Scorer) Rank(score float64) Result {
	score = max(score, 0)
	tiers := s.tiers()

	level, lower, upper := LevelC, 0.0, tiers[0].Min
	for i, t := range tiers {
		if score < t.Min {
			break
		}
		level, lower = t.Level, t.Min
		if i+1 < len(tiers) {
			upper = tiers[i+1].Min
		} else {
			upper = t.Min * topTierSpan
		}
	}
	return Result{Level: level, Progress: progress(score, lower, upper), Score: score}
}

// Evaluate scores and grades a profile.
func (s *Scorer) Evaluate(p stats.Profile) Result {
	return s.Rank(s.Score(CountersOf(p)))
}

func progress(score, lower, upper float64) float64 {
	if upper <= lower {
		return 0
	}
	pct := (score - lower) / (upper - lower) * 100
	return min(max(pct, 0), 100)
}

var defaultScorer = &Scorer{}

// Score uses DefaultWeights.
func Score(c Counters) float64 { return defaultScorer.Score(c) }

// Rank uses DefaultTiers.
func Rank(score float64) Result { return defaultScorer.Rank(score) }

// Evaluate uses the default weights and tiers.
func Evaluate(p stats.Profile) Result { return defaultScorer.Evaluate(p) }
