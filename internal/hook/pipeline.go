package hook

import "hookline/internal/types"

// Pipeline bundles extraction, classification and scoring under one
// configuration so every consumer derives hooks identically.
type Pipeline struct {
	extractor *Extractor
	scorer    *Scorer
}

// NewPipeline wires an extractor and scorer into a single derivation
// pipeline.
func NewPipeline(extractor *Extractor, scorer *Scorer) *Pipeline {
	return &Pipeline{extractor: extractor, scorer: scorer}
}

// Derive computes the hook projection for a caption and its engagement.
// An empty caption yields an empty Statement hook with quality 0.
func (p *Pipeline) Derive(caption string, likes, views int) types.Hook {
	text := p.extractor.Extract(caption)
	return types.Hook{
		Text:     text,
		Category: Classify(text),
		Quality:  p.scorer.Score(text, likes, views),
	}
}
