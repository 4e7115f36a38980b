// Package filter decides which fetched posts qualify as slideshow posts
// worth keeping. Rejection is the expected outcome for most posts, not an
// error.
package filter

import "hookline/internal/types"

// Filter applies the slideshow and engagement acceptance rules.
type Filter struct {
	minLikes int
	minViews int
}

// New creates a filter with the given engagement thresholds. A post
// missing a metric carries it as zero, so default thresholds reject it.
func New(minLikes, minViews int) *Filter {
	return &Filter{minLikes: minLikes, minViews: minViews}
}

// Accepts reports whether a fetched post qualifies for retention: it must
// be carousel content and meet both engagement thresholds.
func (f *Filter) Accepts(p types.RawPost) bool {
	if !p.IsSlideshow {
		return false
	}
	return p.Likes >= f.minLikes && p.Views >= f.minViews
}
