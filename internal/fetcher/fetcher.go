// Package fetcher obtains raw posts from a profile page. The PageFetcher
// interface is the boundary between the pipeline and the browser
// automation layer; everything behind it is replaceable in tests.
package fetcher

import (
	"context"
	"fmt"

	"hookline/internal/types"
)

// PageFetcher fetches up to limit raw posts from a profile page, in the
// order the page presents them. Implementations may return a partial
// slice together with a non-nil error when a fetch is interrupted;
// callers keep those posts best-effort.
type PageFetcher interface {
	FetchPosts(ctx context.Context, handle string, limit int) ([]types.RawPost, error)
}

// FetchError wraps a navigation or network failure for one profile. It is
// recovered at the profile level: the profile is marked failed and the
// run continues.
type FetchError struct {
	Handle string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed for @%s: %v", e.Handle, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// MalformedPostError marks a raw post missing required fields. The post
// is skipped and counted; it never fails the profile.
type MalformedPostError struct {
	Reason string
}

func (e *MalformedPostError) Error() string {
	return "malformed post: " + e.Reason
}

// Validate checks a raw post for the fields the pipeline requires.
// Validation happens at this boundary so malformed data never surfaces
// as a type error deep in the pipeline.
func Validate(p types.RawPost) error {
	if p.ID == "" {
		return &MalformedPostError{Reason: "missing post id"}
	}
	if p.Likes < 0 || p.Views < 0 {
		return &MalformedPostError{Reason: "negative engagement counts"}
	}
	return nil
}
