package hook

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func defaultScorer() *Scorer {
	return NewScorer(0.5, 0.5, DefaultEngagementCeiling)
}

func TestScoreEmptyHook(t *testing.T) {
	s := defaultScorer()

	require.Zero(t, s.Score("", 10000, 50000))
	require.Zero(t, s.Score("   ", 10000, 50000))
}

func TestScoreBounds(t *testing.T) {
	s := defaultScorer()

	cases := []struct {
		hook         string
		likes, views int
	}{
		{"a", 0, 0},
		{"A perfectly reasonable hook about travel", 5000, 120000},
		{strings.Repeat("x", 500), 1 << 40, 1 << 40},
		{"!!!", -5, -10},
	}
	for _, c := range cases {
		got := s.Score(c.hook, c.likes, c.views)
		require.GreaterOrEqual(t, got, 0.0, "hook: %q", c.hook)
		require.LessOrEqual(t, got, 1.0, "hook: %q", c.hook)
	}
}

func TestScoreIdealLengthZeroEngagement(t *testing.T) {
	s := defaultScorer()

	// Clarity is perfect inside the ideal band and engagement is zero,
	// so the score is exactly the clarity weight.
	got := s.Score("This hook sits comfortably in the ideal band", 0, 0)
	require.InDelta(t, 0.5, got, 1e-9)
}

func TestScorePenalizesShortAndLongHooks(t *testing.T) {
	s := defaultScorer()

	ideal := s.Score("This hook sits comfortably in the ideal band", 0, 0)
	short := s.Score("Hey", 0, 0)
	long := s.Score(strings.Repeat("word ", 60), 0, 0)

	require.Less(t, short, ideal)
	require.Less(t, long, ideal)
}

func TestScorePenalizesSymbolOnlyHooks(t *testing.T) {
	s := defaultScorer()

	withWords := s.Score("ok then", 0, 0)
	symbols := s.Score("!?! ?!!", 0, 0)

	require.Less(t, symbols, withWords)
	require.GreaterOrEqual(t, symbols, 0.0)
}

func TestScoreEngagementMonotonic(t *testing.T) {
	s := defaultScorer()
	hook := "This hook sits comfortably in the ideal band"

	prev := s.Score(hook, 0, 0)
	for _, n := range []int{10, 1000, 100000, 10000000} {
		got := s.Score(hook, n, n*5)
		require.GreaterOrEqual(t, got, prev, "engagement %d", n)
		prev = got
	}
}

func TestScoreEngagementCeiling(t *testing.T) {
	s := defaultScorer()
	hook := "This hook sits comfortably in the ideal band"

	// At and beyond the ceiling the engagement sub-score saturates near
	// full weight.
	atCeiling := s.Score(hook, 0, DefaultEngagementCeiling)
	beyond := s.Score(hook, DefaultEngagementCeiling, DefaultEngagementCeiling*100)

	require.InDelta(t, 1.0, atCeiling, 1e-6)
	require.LessOrEqual(t, beyond, 1.0)
}

func TestScorerWeights(t *testing.T) {
	clarityOnly := NewScorer(1.0, 0.0001, DefaultEngagementCeiling)
	hook := "Hey"

	// With nearly all weight on clarity, engagement barely moves the
	// score.
	low := clarityOnly.Score(hook, 0, 0)
	high := clarityOnly.Score(hook, 1<<30, 1<<30)
	require.InDelta(t, low, high, 0.001)
}

func TestScorerDefaults(t *testing.T) {
	s := NewScorer(0, 0, 0)
	require.InDelta(t, 0.5, s.clarityWeight, 1e-9)
	require.InDelta(t, 0.5, s.engagementWeight, 1e-9)
	require.Equal(t, DefaultEngagementCeiling, s.ceiling)
}
