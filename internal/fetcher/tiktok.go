package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"hookline/internal/browser"
	"hookline/internal/types"
)

// DefaultTimeout bounds one profile fetch end to end.
const DefaultTimeout = 5 * time.Minute

// TikTok fetches posts from a TikTok profile page with chromedp.
type TikTok struct {
	headless bool
	timeout  time.Duration
}

// NewTikTok creates a TikTok page fetcher.
func NewTikTok(headless bool, timeout time.Duration) *TikTok {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TikTok{headless: headless, timeout: timeout}
}

// FetchPosts navigates to a profile and extracts up to limit posts in
// page order. Navigation and extraction failures come back as a
// FetchError for the profile; posts gathered before the failure are
// returned alongside it.
func (t *TikTok) FetchPosts(ctx context.Context, handle string, limit int) ([]types.RawPost, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, browser.Options(t.headless)...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	browserCtx, timeoutCancel := context.WithTimeout(browserCtx, t.timeout)
	defer timeoutCancel()

	url := "https://www.tiktok.com/@" + handle
	if err := chromedp.Run(browserCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language": "en-US,en;q=0.9",
		}),
		chromedp.Navigate(url),
		chromedp.WaitVisible(WaitForPosts, chromedp.ByQuery),
	); err != nil {
		// The grid never appeared. Distinguish a captcha wall and a
		// profile with no posts from a plain navigation failure.
		var captcha, empty bool
		_ = chromedp.Run(browserCtx, chromedp.Evaluate(
			`document.querySelector('`+CaptchaOverlay+`') !== null`, &captcha))
		if captcha {
			return nil, &FetchError{Handle: handle, Err: fmt.Errorf("captcha challenge presented")}
		}
		_ = chromedp.Run(browserCtx, chromedp.Evaluate(
			`document.querySelector('`+EmptyProfile+`') !== null`, &empty))
		if empty {
			return []types.RawPost{}, nil
		}
		return nil, &FetchError{Handle: handle, Err: fmt.Errorf("failed to load profile page: %w", err)}
	}

	posts, err := t.extractPosts(browserCtx, limit)
	if err != nil {
		// Posts collected before the failure ride along with the error
		// so an aborted scrape can still keep them.
		return posts, &FetchError{Handle: handle, Err: err}
	}

	return posts, nil
}

// extractPosts scrolls the profile grid until limit posts are collected
// or scrolling stops loading new ones.
func (t *TikTok) extractPosts(ctx context.Context, limit int) ([]types.RawPost, error) {
	var posts []types.RawPost
	seenIDs := make(map[string]bool)
	scrollAttempts := 0
	maxScrollAttempts := limit/6 + 3 // the grid loads roughly 6 posts per viewport

	for len(posts) < limit && scrollAttempts < maxScrollAttempts {
		visible, err := t.extractVisiblePosts(ctx)
		if err != nil {
			return nil, err
		}

		for _, p := range visible {
			if !seenIDs[p.ID] {
				seenIDs[p.ID] = true
				posts = append(posts, p)
			}
		}

		if err := chromedp.Run(ctx,
			chromedp.Evaluate(`window.scrollBy(0, window.innerHeight)`, nil),
		); err != nil {
			return nil, err
		}

		// Wait for new content, backing off as the page grows
		select {
		case <-ctx.Done():
			return posts, ctx.Err()
		case <-time.After(time.Duration(500+scrollAttempts*150) * time.Millisecond):
		}
		scrollAttempts++
	}

	if len(posts) > limit {
		posts = posts[:limit]
	}

	return posts, nil
}

// domPost is the raw data extracted from the page via JavaScript.
type domPost struct {
	ID          string `json:"id"`
	Caption     string `json:"caption"`
	IsSlideshow bool   `json:"isSlideshow"`
	ImageCount  int    `json:"imageCount"`
	Likes       string `json:"likes"`
	Views       string `json:"views"`
	URL         string `json:"url"`
	CreateTime  int64  `json:"createTime"`
}

// stateExtractJS pulls posts out of TikTok's embedded hydration state,
// which carries full captions and engagement counts.
const stateExtractJS = `
	(function() {
		const results = [];
		let state = window.SIGI_STATE || window.__INIT_DATA__;
		if (!state || !state.ItemModule) {
			const script = document.getElementById('__UNIVERSAL_DATA_FOR_REHYDRATION__');
			if (script && script.textContent) {
				try { state = JSON.parse(script.textContent); } catch (e) {}
			}
		}
		const items = state && state.ItemModule ? Object.values(state.ItemModule) : [];

		items.forEach(item => {
			try {
				const images = item.imagePost && Array.isArray(item.imagePost.images)
					? item.imagePost.images.length : 0;
				const author = item.author || '';
				const kind = images > 0 ? '/photo/' : '/video/';

				results.push({
					id: String(item.id || ''),
					caption: item.desc || '',
					isSlideshow: images > 1,
					imageCount: images,
					likes: String((item.stats && item.stats.diggCount) || 0),
					views: String((item.stats && item.stats.playCount) || 0),
					url: 'https://www.tiktok.com/@' + author + kind + item.id,
					createTime: Number(item.createTime || 0)
				});
			} catch (e) {
				console.error('Error extracting item:', e);
			}
		});

		return results;
	})()
`

// gridExtractJS walks the profile grid DOM. It sees less than the
// hydration state (no likes, no timestamps) but works when the state is
// absent or renamed.
var gridExtractJS = `
	(function() {
		const items = document.querySelectorAll('` + PostItem + `');
		const results = [];

		items.forEach(el => {
			try {
				const link = el.querySelector('a');
				const href = link ? link.href : '';
				const m = href.match(/\/(photo|video)\/(\d+)/);
				if (!m) return;

				const viewsEl = el.querySelector('` + PostViews + `');
				const captionEl = el.querySelector('` + PostCaption + `');
				const isPhoto = m[1] === 'photo' || el.querySelector('` + CarouselBadge + `') !== null;

				results.push({
					id: m[2],
					caption: captionEl ? captionEl.textContent :
						(link ? (link.getAttribute('title') || '') : ''),
					isSlideshow: isPhoto,
					imageCount: isPhoto ? 2 : 0,
					likes: '0',
					views: viewsEl ? viewsEl.textContent.trim() : '0',
					url: href,
					createTime: 0
				});
			} catch (e) {
				console.error('Error extracting grid item:', e);
			}
		});

		return results;
	})()
`

// extractVisiblePosts parses posts currently present on the page,
// preferring the hydration state and falling back to the DOM grid.
func (t *TikTok) extractVisiblePosts(ctx context.Context) ([]types.RawPost, error) {
	var rawPosts []domPost

	if err := chromedp.Run(ctx, chromedp.Evaluate(stateExtractJS, &rawPosts)); err != nil {
		return nil, fmt.Errorf("failed to extract posts from page state: %w", err)
	}

	if len(rawPosts) == 0 {
		if err := chromedp.Run(ctx, chromedp.Evaluate(gridExtractJS, &rawPosts)); err != nil {
			return nil, fmt.Errorf("failed to extract posts from grid: %w", err)
		}
	}

	posts := make([]types.RawPost, 0, len(rawPosts))
	for _, rp := range rawPosts {
		if rp.ID == "" {
			continue
		}

		var createdAt time.Time
		if rp.CreateTime > 0 {
			createdAt = time.Unix(rp.CreateTime, 0).UTC()
		}

		posts = append(posts, types.RawPost{
			ID:          rp.ID,
			Caption:     rp.Caption,
			IsSlideshow: rp.IsSlideshow,
			ImageCount:  rp.ImageCount,
			Likes:       parseMetric(rp.Likes),
			Views:       parseMetric(rp.Views),
			URL:         rp.URL,
			CreatedAt:   createdAt,
		})
	}

	return posts, nil
}
