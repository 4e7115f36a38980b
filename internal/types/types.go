package types

import "time"

// Category is one value of the fixed hook taxonomy.
type Category string

const (
	CategoryQuestion      Category = "question"
	CategoryStory         Category = "story"
	CategoryList          Category = "list"
	CategoryChallenge     Category = "challenge"
	CategoryEmotional     Category = "emotional"
	CategoryEducational   Category = "educational"
	CategoryControversial Category = "controversial"
	CategoryStatement     Category = "statement"
)

// RawPost is a post exactly as the page fetcher returned it, before
// validation and filtering.
type RawPost struct {
	ID          string    `json:"id"`
	Caption     string    `json:"caption"`
	IsSlideshow bool      `json:"is_slideshow"`
	ImageCount  int       `json:"image_count"`
	Likes       int       `json:"likes"`
	Views       int       `json:"views"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}

// Post is a retained slideshow post, persisted per profile.
type Post struct {
	ID          string    `json:"id"`
	Handle      string    `json:"handle"`
	Caption     string    `json:"caption"`
	IsSlideshow bool      `json:"is_slideshow"`
	ImageCount  int       `json:"image_count"`
	Likes       int       `json:"likes"`
	Views       int       `json:"views"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
	ScrapedAt   time.Time `json:"scraped_at"`
}

// Hook is the projection derived from a post's caption. It is recomputed
// from the owning post on every aggregation run, never persisted.
type Hook struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
	Quality  float64  `json:"quality"`
}

// TrainingRecord is one dataset entry per retained post.
type TrainingRecord struct {
	Hook     string   `json:"hook"`
	Category Category `json:"category"`
	Quality  float64  `json:"quality_score"`
	Likes    int      `json:"likes"`
	Views    int      `json:"views"`
	Handle   string   `json:"profile"`
	PostID   string   `json:"post_id"`
}

// WordCount pairs an opening word with its frequency across the corpus.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Statistics holds corpus-level aggregates. Given an unchanged post store
// the same statistics are produced on every build.
type Statistics struct {
	TotalRecords    int              `json:"total_records"`
	Categories      map[Category]int `json:"categories"`
	AvgHookLength   float64          `json:"avg_hook_length"`
	AvgQuality      float64          `json:"avg_quality_score"`
	TopOpeningWords []WordCount      `json:"top_opening_words"`
	LengthBuckets   map[string]int   `json:"length_distribution"`
}

// Dataset is the training-ready output document: ordered records plus
// corpus statistics. Rebuilt wholesale on every aggregation run.
type Dataset struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Records     []TrainingRecord `json:"records"`
	Stats       Statistics       `json:"statistics"`
}
