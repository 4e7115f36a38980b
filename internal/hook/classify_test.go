package hook

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hookline/internal/types"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		hook string
		want types.Category
	}{
		{"What nobody tells you about renting?", types.CategoryQuestion},
		{"Why I quit my job", types.CategoryQuestion},
		{"Is this the end of cheap flights", types.CategoryQuestion},
		{"POV: you just landed your dream job", types.CategoryStory},
		{"Story time: my worst flight ever", types.CategoryStory},
		{"That time I missed my own wedding", types.CategoryStory},
		{"3 ways to save money fast", types.CategoryList},
		{"Top 5 cafes in Lisbon", types.CategoryList},
		{"#1 mistake new runners make", types.CategoryList},
		{"The worst advice I ever got", types.CategoryList},
		{"Try this before your next workout", types.CategoryChallenge},
		{"Bet you can't do this without laughing", types.CategoryChallenge},
		{"OMG this deal ends today!!", types.CategoryEmotional},
		{"Shocking prices, book now", types.CategoryEmotional},
		{"Learn Excel in 10 minutes", types.CategoryEducational},
		{"A beginner's guide to sourdough", types.CategoryEducational},
		{"Unpopular opinion: cereal is soup", types.CategoryControversial},
		{"Hot take on remote work", types.CategoryControversial},
		{"I moved to Lisbon last month", types.CategoryStatement},
		{"", types.CategoryStatement},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Classify(c.hook), "hook: %q", c.hook)
	}
}

// A hook matching several rules takes the highest-priority one.
func TestClassifyPriority(t *testing.T) {
	// Question beats Educational ("tips") and List ("5 tips" is not
	// leading).
	require.Equal(t, types.CategoryQuestion,
		Classify("How many of these 5 tips do you know"))

	// Question beats Story even when a story marker is present.
	require.Equal(t, types.CategoryQuestion,
		Classify("What happened when I tried this?"))

	// Story beats Educational.
	require.Equal(t, types.CategoryStory,
		Classify("POV: you finally learn to cook"))
}

func TestClassifyCaseInsensitive(t *testing.T) {
	require.Equal(t, types.CategoryStory, Classify("STORY TIME: the wedding disaster"))
	require.Equal(t, types.CategoryQuestion, Classify("WHY is rent so high"))
}

func TestClassifyEmotionalNeedsUrgency(t *testing.T) {
	// Affect without an urgency word is not enough.
	require.Equal(t, types.CategoryStatement, Classify("OMG look at this cat"))
	// Urgency without affect is not enough either.
	require.Equal(t, types.CategoryStatement, Classify("New menu starts today"))
}
