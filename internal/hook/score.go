package hook

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ideal hook length band in characters. Hooks outside it pay a linearly
// growing clarity penalty.
const (
	idealMinLength = 20
	idealMaxLength = 120
)

// DefaultEngagementCeiling is the combined likes+views count that maps to
// a full engagement sub-score.
const DefaultEngagementCeiling = 100000

// clarityFloor is the lowest the length penalty alone can push the
// clarity sub-score.
const clarityFloor = 0.1

// noWordPenalty applies when a hook has no recognizable word at all
// (pure symbols or emoji).
const noWordPenalty = 0.2

// Scorer computes a quality score in [0,1] for a hook.
type Scorer struct {
	clarityWeight    float64
	engagementWeight float64
	ceiling          int
}

// NewScorer creates a scorer with the given sub-score weights and
// engagement ceiling. Non-positive values fall back to the defaults
// (0.5/0.5 weights, 100k ceiling).
func NewScorer(clarityWeight, engagementWeight float64, ceiling int) *Scorer {
	if clarityWeight <= 0 && engagementWeight <= 0 {
		clarityWeight, engagementWeight = 0.5, 0.5
	}
	if ceiling <= 0 {
		ceiling = DefaultEngagementCeiling
	}
	return &Scorer{
		clarityWeight:    clarityWeight,
		engagementWeight: engagementWeight,
		ceiling:          ceiling,
	}
}

// Score returns the weighted quality score for a hook given its post's
// engagement. Empty hooks score 0.
func (s *Scorer) Score(hookText string, likes, views int) float64 {
	if strings.TrimSpace(hookText) == "" {
		return 0
	}
	score := s.clarityWeight*s.clarity(hookText) + s.engagementWeight*s.engagement(likes, views)
	return clamp01(score)
}

// clarity scores how readable the hook is: 1.0 minus a linear penalty
// for length outside the ideal band, minus a smaller penalty when the
// hook contains no letters or digits.
func (s *Scorer) clarity(hookText string) float64 {
	n := utf8.RuneCountInString(hookText)
	sub := 1.0
	switch {
	case n < idealMinLength:
		sub -= (1 - clarityFloor) * float64(idealMinLength-n) / float64(idealMinLength)
	case n > idealMaxLength:
		sub -= (1 - clarityFloor) * float64(n-idealMaxLength) / float64(idealMaxLength)
	}
	if sub < clarityFloor {
		sub = clarityFloor
	}
	if !hasRecognizableWord(hookText) {
		sub -= noWordPenalty
	}
	if sub < 0 {
		sub = 0
	}
	return sub
}

// engagement normalizes combined likes+views on a log scale against the
// configured ceiling. Monotonic: more engagement never scores lower.
func (s *Scorer) engagement(likes, views int) float64 {
	if likes < 0 {
		likes = 0
	}
	if views < 0 {
		views = 0
	}
	combined := float64(likes) + float64(views)
	sub := math.Log1p(combined) / math.Log1p(float64(s.ceiling))
	return clamp01(sub)
}

func hasRecognizableWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
