package fetcher

// TikTok DOM selectors
// These are isolated here because TikTok changes their DOM frequently
// Update these when scraping breaks

const (
	// Profile grid selectors
	PostItem = `div[data-e2e="user-post-item"]`

	// Post content selectors
	PostCaption = `[data-e2e="user-post-item-desc"]`
	PostViews   = `[data-e2e="video-views"]`

	// Carousel indicators
	CarouselBadge = `[data-e2e="photo-mode-icon"]`

	// Page state indicators
	CaptchaOverlay = `[class*="captcha"]`
	EmptyProfile   = `[data-e2e="user-post-item-list"] p`
)

// Common wait conditions
const (
	WaitForPosts = PostItem
)
