package rank

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/statcard/pkg/stats"
)

func TestScore(t *testing.T) {
	c := Counters{Commits: 1000, PullRequests: 200, Issues: 50, Stars: 300, ContributedTo: 10}
	assert.InDelta(t, 2250.0, Score(c), 1e-9)
}

func TestEvaluateWorkedExample(t *testing.T) {
	p := stats.Profile{
		Stars: 300,
		Activity: stats.Activity{
			Commits: 1000, PullRequests: 200, Issues: 50, ContributedTo: 10,
		},
	}
	r := Evaluate(p)
	assert.Equal(t, LevelAPlus, r.Level)
	assert.InDelta(t, 25.0, r.Progress, 1e-9)
	assert.InDelta(t, 2250.0, r.Score, 1e-9)
}

func TestRankTiers(t *testing.T) {
	tests := []struct {
		score    float64
		level    Level
		progress float64
	}{
		{-50, LevelC, 0},
		{0, LevelC, 0},
		{100, LevelC, 50},
		{199.99, LevelC, 99.995},
		{200, LevelB, 0},
		{500, LevelBPlus, 0},
		{750, LevelBPlus, 50},
		{1000, LevelA, 0},
		{3000, LevelAPP, 0},
		{4500, LevelS, 50},
		{5000, LevelSPlus, 0},
		{6000, LevelSPP, 0},
		{7500, LevelSPP, 50},
		{9000, LevelSPP, 100},
		{1e9, LevelSPP, 100},
	}
	for _, tt := range tests {
		r := Rank(tt.score)
		assert.Equal(t, tt.level, r.Level, "score %v", tt.score)
		assert.InDelta(t, tt.progress, r.Progress, 1e-6, "score %v", tt.score)
	}
}

func TestRankMonotone(t *testing.T) {
	order := map[Level]int{LevelC: 0}
	for i, tier := range DefaultTiers {
		order[tier.Level] = i + 1
	}
	prev := Rank(0)
	for s := 0.0; s <= 12000; s += 37 {
		r := Rank(s)
		assert.GreaterOrEqual(t, order[r.Level], order[prev.Level], "score %v", s)
		assert.GreaterOrEqual(t, r.Progress, 0.0)
		assert.LessOrEqual(t, r.Progress, 100.0)
		prev = r
	}
}

func TestScoreMonotonePerCounter(t *testing.T) {
	base := Counters{Commits: 10, PullRequests: 10, Issues: 10, Stars: 10, ContributedTo: 10}
	bumps := []func(*Counters){
		func(c *Counters) { c.Commits++ },
		func(c *Counters) { c.PullRequests++ },
		func(c *Counters) { c.Issues++ },
		func(c *Counters) { c.Stars++ },
		func(c *Counters) { c.ContributedTo++ },
	}
	for i, bump := range bumps {
		c := base
		bump(&c)
		assert.Greater(t, Score(c), Score(base), "counter %d", i)
	}
}

func TestScorerCustomWeights(t *testing.T) {
	s := NewScorer(Weights{Stars: 10})
	assert.InDelta(t, 100.0, s.Score(Counters{Stars: 10, Commits: 1000}), 1e-9)
}

func TestProgressDegenerateBand(t *testing.T) {
	s := &Scorer{Tiers: []Tier{{LevelB, 0}}}
	r := s.Rank(0)
	assert.Equal(t, LevelB, r.Level)
	assert.Zero(t, r.Progress)
	assert.False(t, math.IsNaN(r.Progress))
}

func TestScorerSettingsIncludeDefaults(t *testing.T) {
	var nilScorer *Scorer
	w, tiers := nilScorer.Settings()
	assert.Equal(t, DefaultWeights, w)
	assert.Equal(t, DefaultTiers, tiers)

	w, _ = NewScorer(Weights{Stars: 1}).Settings()
	assert.Equal(t, Weights{Stars: 1}, w)
}
