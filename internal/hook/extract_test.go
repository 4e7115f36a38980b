package hook

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractFirstSegment(t *testing.T) {
	e := NewExtractor(DefaultMaxLength)

	require.Equal(t,
		"POV: you just landed your dream job",
		e.Extract("POV: you just landed your dream job. Here's how."))
}

func TestExtractSplitsOnLineBreaks(t *testing.T) {
	e := NewExtractor(DefaultMaxLength)

	require.Equal(t, "first line", e.Extract("first line\nsecond line"))
	require.Equal(t, "first line", e.Extract("first line\r\nsecond line"))
}

func TestExtractSkipsTinySegments(t *testing.T) {
	e := NewExtractor(DefaultMaxLength)

	require.Equal(t, "This is the real hook", e.Extract("Hi! This is the real hook."))
}

func TestExtractCollapsesWhitespace(t *testing.T) {
	e := NewExtractor(DefaultMaxLength)

	require.Equal(t, "So many spaces here", e.Extract("  So   many \t spaces here. rest"))
}

func TestExtractFallsBackToWholeCaption(t *testing.T) {
	e := NewExtractor(DefaultMaxLength)

	// No segment reaches three characters, so the whole trimmed caption
	// is the hook.
	require.Equal(t, "a. b!", e.Extract("a. b!"))
}

func TestExtractEmptyCaption(t *testing.T) {
	e := NewExtractor(DefaultMaxLength)

	require.Equal(t, "", e.Extract(""))
	require.Equal(t, "", e.Extract("   \n\t  "))
}

func TestExtractTruncatesByRunes(t *testing.T) {
	e := NewExtractor(10)

	require.Equal(t, "abcdefghij", e.Extract("abcdefghijklmnop"))
	// Multi-byte runes count as one character each.
	require.Equal(t, "éééééééééé", e.Extract("éééééééééééééééé"))
}

func TestExtractTruncationDropsTrailingSpace(t *testing.T) {
	e := NewExtractor(8)

	require.Equal(t, "abcdefg", e.Extract("abcdefg hijklmnop"))
}

func TestExtractorDefaultsMaxLength(t *testing.T) {
	e := NewExtractor(0)
	require.Equal(t, DefaultMaxLength, e.maxLen)
}
