// Package hook derives the opening hook from a post caption and
// classifies and scores it. Everything here is deterministic: the same
// caption and configuration always produce the same hook.
package hook

import "strings"

// DefaultMaxLength caps hook length when no configuration is given.
const DefaultMaxLength = 200

// minSegmentLength is the shortest trimmed segment that counts as a hook.
const minSegmentLength = 3

// Extractor derives hooks from captions.
type Extractor struct {
	maxLen int
}

// NewExtractor creates an extractor with the given maximum hook length.
func NewExtractor(maxLen int) *Extractor {
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}
	return &Extractor{maxLen: maxLen}
}

// Extract returns the hook for a caption: the first segment of at least
// three characters when the caption is split on sentence-terminal
// punctuation and line breaks. When no segment qualifies the whole
// trimmed caption is used. The result is truncated to the configured
// maximum length with no truncation marker. Empty or whitespace-only
// captions yield an empty hook.
func (e *Extractor) Extract(caption string) string {
	for _, seg := range splitSegments(caption) {
		seg = collapseWhitespace(seg)
		if len([]rune(seg)) >= minSegmentLength {
			return truncate(seg, e.maxLen)
		}
	}
	return truncate(collapseWhitespace(caption), e.maxLen)
}

// splitSegments cuts a caption on . ! ? and line breaks, preserving order.
func splitSegments(caption string) []string {
	return strings.FieldsFunc(caption, func(r rune) bool {
		switch r {
		case '.', '!', '?', '\n', '\r':
			return true
		}
		return false
	})
}

// collapseWhitespace trims a string and collapses interior whitespace
// runs to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts a string to at most max runes, dropping a trailing
// partial word's whitespace.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max]))
}
