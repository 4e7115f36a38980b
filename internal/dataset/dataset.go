// Package dataset merges every profile's stored posts into a
// training-ready dataset with corpus statistics.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"hookline/internal/hook"
	"hookline/internal/registry"
	"hookline/internal/store"
	"hookline/internal/types"
)

// DefaultTopWords is the number of opening words reported in the
// statistics when no configuration is given.
const DefaultTopWords = 10

// Builder aggregates the post store into a Dataset. It reads the store
// only and re-derives every hook from the raw caption, so rule changes
// are reflected on the next build and repeated builds over an unchanged
// store yield identical output.
type Builder struct {
	registry *registry.Registry
	store    *store.Store
	pipeline *hook.Pipeline
	topWords int
}

// NewBuilder creates a dataset builder.
func NewBuilder(reg *registry.Registry, st *store.Store, pipeline *hook.Pipeline, topWords int) *Builder {
	if topWords <= 0 {
		topWords = DefaultTopWords
	}
	return &Builder{registry: reg, store: st, pipeline: pipeline, topWords: topWords}
}

// Build produces the dataset: one record per retained post, ordered by
// profile insertion order then capture order, plus corpus statistics.
// An empty store yields an empty dataset with zeroed statistics.
func (b *Builder) Build() (*types.Dataset, error) {
	profiles, err := b.registry.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	records := []types.TrainingRecord{}
	for _, p := range profiles {
		posts, err := b.store.PostsByHandle(p.Handle)
		if err != nil {
			return nil, fmt.Errorf("failed to read posts for %q: %w", p.Handle, err)
		}
		for _, post := range posts {
			h := b.pipeline.Derive(post.Caption, post.Likes, post.Views)
			records = append(records, types.TrainingRecord{
				Hook:     h.Text,
				Category: h.Category,
				Quality:  h.Quality,
				Likes:    post.Likes,
				Views:    post.Views,
				Handle:   post.Handle,
				PostID:   post.ID,
			})
		}
	}

	return &types.Dataset{
		GeneratedAt: time.Now(),
		Records:     records,
		Stats:       b.statistics(records),
	}, nil
}

func (b *Builder) statistics(records []types.TrainingRecord) types.Statistics {
	stats := types.Statistics{
		TotalRecords:    len(records),
		Categories:      emptyCategoryCounts(),
		TopOpeningWords: []types.WordCount{},
		LengthBuckets:   emptyLengthBuckets(),
	}

	var totalLength, totalQuality float64
	openings := make(map[string]int)

	for _, r := range records {
		stats.Categories[r.Category]++
		stats.LengthBuckets[lengthBucket(len([]rune(r.Hook)))]++
		totalLength += float64(len([]rune(r.Hook)))
		totalQuality += r.Quality

		if w := openingWord(r.Hook); w != "" {
			openings[w]++
		}
	}

	if len(records) > 0 {
		stats.AvgHookLength = totalLength / float64(len(records))
		stats.AvgQuality = totalQuality / float64(len(records))
	}

	stats.TopOpeningWords = topWords(openings, b.topWords)
	return stats
}

func emptyCategoryCounts() map[types.Category]int {
	counts := make(map[types.Category]int)
	for _, c := range []types.Category{
		types.CategoryQuestion, types.CategoryStory, types.CategoryList,
		types.CategoryChallenge, types.CategoryEmotional, types.CategoryEducational,
		types.CategoryControversial, types.CategoryStatement,
	} {
		counts[c] = 0
	}
	return counts
}

func emptyLengthBuckets() map[string]int {
	return map[string]int{"0-20": 0, "21-40": 0, "41-60": 0, "61-80": 0, "81+": 0}
}

func lengthBucket(n int) string {
	switch {
	case n <= 20:
		return "0-20"
	case n <= 40:
		return "21-40"
	case n <= 60:
		return "41-60"
	case n <= 80:
		return "61-80"
	default:
		return "81+"
	}
}

// stopWords are excluded from the opening-word statistics.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "is": true, "are": true, "was": true, "were": true,
}

// openingWord returns the first word of a hook, lowercased and stripped
// of surrounding punctuation, or "" when there is none worth counting.
func openingWord(hookText string) string {
	fields := strings.Fields(strings.ToLower(hookText))
	if len(fields) == 0 {
		return ""
	}
	w := strings.TrimFunc(fields[0], func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if w == "" || stopWords[w] {
		return ""
	}
	return w
}

// topWords ranks opening words by count descending, breaking ties
// alphabetically so repeated builds order identically.
func topWords(counts map[string]int, n int) []types.WordCount {
	ranked := make([]types.WordCount, 0, len(counts))
	for w, c := range counts {
		ranked = append(ranked, types.WordCount{Word: w, Count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Word < ranked[j].Word
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Write serializes a dataset to a single self-contained JSON document,
// replacing any previous file wholesale.
func Write(ds *types.Dataset, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
