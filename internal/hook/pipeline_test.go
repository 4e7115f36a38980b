package hook

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hookline/internal/types"
)

func TestPipelineDerive(t *testing.T) {
	p := NewPipeline(NewExtractor(DefaultMaxLength), defaultScorer())

	h := p.Derive("POV: you just landed your dream job. Here's how.", 2000, 40000)
	require.Equal(t, "POV: you just landed your dream job", h.Text)
	require.Equal(t, types.CategoryStory, h.Category)
	require.Greater(t, h.Quality, 0.0)
	require.LessOrEqual(t, h.Quality, 1.0)
}

func TestPipelineDeriveEmptyCaption(t *testing.T) {
	p := NewPipeline(NewExtractor(DefaultMaxLength), defaultScorer())

	h := p.Derive("", 2000, 40000)
	require.Empty(t, h.Text)
	require.Equal(t, types.CategoryStatement, h.Category)
	require.Zero(t, h.Quality)
}

func TestPipelineDeterministic(t *testing.T) {
	p := NewPipeline(NewExtractor(DefaultMaxLength), defaultScorer())

	first := p.Derive("How many of these 5 tips do you know? Comment below!", 900, 12000)
	second := p.Derive("How many of these 5 tips do you know? Comment below!", 900, 12000)
	require.Equal(t, first, second)
	require.Equal(t, types.CategoryQuestion, first.Category)
}
