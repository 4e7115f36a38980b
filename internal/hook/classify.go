package hook

import (
	"regexp"
	"strings"
	"unicode"

	"hookline/internal/types"
)

// rule pairs a category with its predicate. Matching is substring-based
// on a lowercased copy of the hook, with no NLP dependency, so results
// stay deterministic and testable.
type rule struct {
	category types.Category
	matches  func(string) bool
}

// rules are evaluated in a fixed priority order; the first match wins.
// Question deliberately outranks Story, so a hook that both opens with an
// interrogative and carries a story marker classifies as a question.
var rules = []rule{
	{types.CategoryQuestion, isQuestion},
	{types.CategoryStory, containsAny("pov", "story time", "when i", "that time")},
	{types.CategoryList, isList},
	{types.CategoryChallenge, containsAny("challenge", "dare", "try this", "bet you can't")},
	{types.CategoryEmotional, isEmotional},
	{types.CategoryEducational, containsAny("learn", "tutorial", "how to", "guide", "tips")},
	{types.CategoryControversial, containsAny("unpopular opinion", "hot take", "nobody talks about", "controversial")},
}

// Classify assigns exactly one taxonomy category to a hook. It is total:
// hooks matching no rule, including the empty hook, fall back to
// Statement.
func Classify(hookText string) types.Category {
	lower := strings.ToLower(strings.TrimSpace(hookText))
	for _, r := range rules {
		if r.matches(lower) {
			return r.category
		}
	}
	return types.CategoryStatement
}

func containsAny(markers ...string) func(string) bool {
	return func(s string) bool {
		for _, m := range markers {
			if strings.Contains(s, m) {
				return true
			}
		}
		return false
	}
}

var interrogatives = []string{
	"how", "why", "what", "when", "where", "who", "which",
	"is", "are", "do", "does", "can", "will",
}

// isQuestion matches hooks that open with an interrogative word or end
// with a question mark.
func isQuestion(s string) bool {
	if strings.HasSuffix(s, "?") {
		return true
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	first := strings.TrimFunc(fields[0], func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range interrogatives {
		if first == w {
			return true
		}
	}
	return false
}

var (
	leadingNumeral = regexp.MustCompile(`^\d+\s+\w+`)
	leadingTopN    = regexp.MustCompile(`^top\s+\d+`)
	leadingRank    = regexp.MustCompile(`^#\d+`)
	bestWorstNoun  = regexp.MustCompile(`\b(best|worst)\s+\w+`)
)

// isList matches leading ordinal patterns ("3 ways", "top 5", "#1") and
// "best"/"worst" followed by a noun-like token.
func isList(s string) bool {
	return leadingNumeral.MatchString(s) ||
		leadingTopN.MatchString(s) ||
		leadingRank.MatchString(s) ||
		bestWorstNoun.MatchString(s)
}

// isEmotional requires a strong affect marker combined with an urgency
// word; either alone is not enough.
func isEmotional(s string) bool {
	affect := containsAny("omg", "shocking", "can't believe")(s) ||
		strings.Count(s, "!") >= 2
	if !affect {
		return false
	}
	return containsAny("now", "today", "before it's too late")(s)
}
