package fetcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hookline/internal/types"
)

func TestParseMetric(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"423", 423},
		{"1.2K", 1200},
		{"5.7M", 5700000},
		{"1B", 1000000000},
		{"2,345", 2345},
		{"14k", 14000},
		{" 3.5K ", 3500},
		{"", 0},
		{"n/a", 0},
	}
	for _, c := range cases {
		require.Equal(t, c.want, parseMetric(c.in), "input: %q", c.in)
	}
}

func rawPost(id string, likes, views int) types.RawPost {
	return types.RawPost{ID: id, Likes: likes, Views: views}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(rawPost("abc", 10, 20)))
	require.Error(t, Validate(rawPost("", 10, 20)))
	require.Error(t, Validate(rawPost("abc", -1, 20)))
	require.Error(t, Validate(rawPost("abc", 10, -1)))

	err := Validate(rawPost("", 0, 0))
	var malformed *MalformedPostError
	require.ErrorAs(t, err, &malformed)
}
