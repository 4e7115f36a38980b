package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hookline/internal/types"
)

func TestAccepts(t *testing.T) {
	f := New(1000, 5000)

	cases := []struct {
		name string
		post types.RawPost
		want bool
	}{
		{"slideshow over both thresholds", types.RawPost{IsSlideshow: true, Likes: 1500, Views: 9000}, true},
		{"exactly at both thresholds", types.RawPost{IsSlideshow: true, Likes: 1000, Views: 5000}, true},
		{"video is never accepted", types.RawPost{IsSlideshow: false, Likes: 99999, Views: 999999}, false},
		{"below likes threshold", types.RawPost{IsSlideshow: true, Likes: 999, Views: 9000}, false},
		{"below views threshold", types.RawPost{IsSlideshow: true, Likes: 1500, Views: 4999}, false},
		{"missing metrics carried as zero", types.RawPost{IsSlideshow: true}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, f.Accepts(c.post))
		})
	}
}

func TestAcceptsZeroThresholds(t *testing.T) {
	f := New(0, 0)

	require.True(t, f.Accepts(types.RawPost{IsSlideshow: true}))
	require.False(t, f.Accepts(types.RawPost{IsSlideshow: false}))
}
