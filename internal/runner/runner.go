// Package runner orchestrates a scrape run: it claims profiles from the
// registry, fetches their pages, filters and persists posts, and records
// each profile's state transition.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"hookline/internal/fetcher"
	"hookline/internal/filter"
	"hookline/internal/registry"
	"hookline/internal/store"
	"hookline/internal/types"
)

// SleepFunc pauses for d or until ctx is done. Injected so tests can run
// with no delay.
type SleepFunc func(ctx context.Context, d time.Duration)

func defaultSleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// Options configures a scrape run.
type Options struct {
	// Workers bounds concurrent profile scrapes. Concurrency is a
	// throughput knob only; correctness holds at any setting.
	Workers int
	// PostsPerProfile caps how many posts are fetched per profile.
	PostsPerProfile int
	// MinDelay and MaxDelay bound the random pause a worker takes
	// between profiles.
	MinDelay time.Duration
	MaxDelay time.Duration
	// Sleep replaces the pause implementation. Defaults to a real sleep.
	Sleep SleepFunc
}

// ProfileFailure records why one profile's scrape failed.
type ProfileFailure struct {
	Handle string
	Reason string
}

// Summary reports the outcome of a run.
type Summary struct {
	Completed int
	Failed    []ProfileFailure
	Accepted  int
	Rejected  int
	Malformed int
}

// Runner drives scrape runs over the registry and store.
type Runner struct {
	registry *registry.Registry
	store    *store.Store
	filter   *filter.Filter
	fetcher  fetcher.PageFetcher

	workers  int
	limit    int
	minDelay time.Duration
	maxDelay time.Duration
	sleep    SleepFunc
}

// New creates a runner.
func New(reg *registry.Registry, st *store.Store, f *filter.Filter, pf fetcher.PageFetcher, opts Options) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.PostsPerProfile <= 0 {
		opts.PostsPerProfile = 50
	}
	if opts.Sleep == nil {
		opts.Sleep = defaultSleep
	}
	return &Runner{
		registry: reg,
		store:    st,
		filter:   f,
		fetcher:  pf,
		workers:  opts.Workers,
		limit:    opts.PostsPerProfile,
		minDelay: opts.MinDelay,
		maxDelay: opts.MaxDelay,
		sleep:    opts.Sleep,
	}
}

// Run scrapes profiles with a bounded worker pool. With no handles it
// drains every pending profile; with explicit handles it claims those,
// silently skipping completed and skipped ones (terminal until reset).
// Per-profile failures are recorded in the summary and never abort the
// run; only storage failures do.
func (r *Runner) Run(ctx context.Context, handles []string) (*Summary, error) {
	summary := &Summary{}
	var mu sync.Mutex

	next := r.nextPending
	if len(handles) > 0 {
		next = r.claimQueue(handles)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < r.workers; i++ {
		g.Go(func() error {
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				p, err := next()
				if err != nil {
					return err
				}
				if p == nil {
					return nil
				}
				if err := r.scrapeProfile(gctx, p, summary, &mu); err != nil {
					return err
				}
				r.pause(gctx)
			}
		})
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		// Shutdown, not a storage failure; the summary still counts
		// whatever finished.
		err = nil
	}
	return summary, err
}

func (r *Runner) nextPending() (*registry.Profile, error) {
	return r.registry.NextPending()
}

// claimQueue returns a claim source over an explicit handle list. The
// list is deduplicated after normalization so no two workers scrape the
// same profile. Each handle is claimed only when a worker is ready for
// it, so a canceled run never strands unprocessed profiles in Scraping.
func (r *Runner) claimQueue(handles []string) func() (*registry.Profile, error) {
	remaining := make([]string, 0, len(handles))
	seen := make(map[string]bool)
	for _, h := range handles {
		n := registry.Normalize(h)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		remaining = append(remaining, n)
	}
	var mu sync.Mutex

	return func() (*registry.Profile, error) {
		mu.Lock()
		defer mu.Unlock()

		for len(remaining) > 0 {
			h := remaining[0]
			remaining = remaining[1:]

			p, err := r.registry.Claim(h)
			if errors.Is(err, registry.ErrNotFound) {
				slog.Warn("profile not tracked, skipping", "handle", h)
				continue
			}
			if err != nil {
				return nil, err
			}
			if p == nil {
				slog.Info("profile is completed or skipped, not re-scraping", "handle", h)
				continue
			}
			return p, nil
		}
		return nil, nil
	}
}

// scrapeProfile processes one claimed profile. Fetch failures mark the
// profile failed and return nil; only persistence failures propagate.
// Posts fetched before an abort are persisted best-effort, never rolled
// back.
func (r *Runner) scrapeProfile(ctx context.Context, p *registry.Profile, summary *Summary, mu *sync.Mutex) error {
	slog.Info("scraping profile", "handle", p.Handle, "limit", r.limit)

	raw, fetchErr := r.fetcher.FetchPosts(ctx, p.Handle, r.limit)

	accepted, rejected, malformed := 0, 0, 0
	now := time.Now()
	for _, rp := range raw {
		if err := fetcher.Validate(rp); err != nil {
			malformed++
			slog.Debug("skipping malformed post", "handle", p.Handle, "error", err)
			continue
		}
		if !r.filter.Accepts(rp) {
			rejected++
			continue
		}

		post := types.Post{
			ID:          rp.ID,
			Handle:      p.Handle,
			Caption:     rp.Caption,
			IsSlideshow: rp.IsSlideshow,
			ImageCount:  rp.ImageCount,
			Likes:       rp.Likes,
			Views:       rp.Views,
			URL:         rp.URL,
			CreatedAt:   rp.CreatedAt,
			ScrapedAt:   now,
		}
		if err := r.store.SavePost(&post); err != nil {
			// Posts persisted so far are kept; the profile is left
			// failed so a later run can resume it.
			_ = r.registry.MarkFailed(p.Handle, "store write failed: "+err.Error())
			return fmt.Errorf("failed to persist post %s for @%s: %w", rp.ID, p.Handle, err)
		}
		accepted++
	}

	mu.Lock()
	summary.Accepted += accepted
	summary.Rejected += rejected
	summary.Malformed += malformed
	mu.Unlock()

	if fetchErr != nil {
		return r.failProfile(p.Handle, failureReason(ctx, fetchErr), summary, mu)
	}
	if ctx.Err() != nil {
		return r.failProfile(p.Handle, failureReason(ctx, ctx.Err()), summary, mu)
	}

	if err := r.registry.MarkCompleted(p.Handle, len(raw), accepted); err != nil {
		return err
	}

	mu.Lock()
	summary.Completed++
	mu.Unlock()

	slog.Info("profile completed", "handle", p.Handle,
		"total", len(raw), "accepted", accepted, "rejected", rejected, "malformed", malformed)
	return nil
}

// failProfile transitions a profile to failed and records the reason.
// The registry write must succeed so the profile is not stranded in
// Scraping; if it cannot, that is a storage failure and aborts the run.
func (r *Runner) failProfile(handle, reason string, summary *Summary, mu *sync.Mutex) error {
	if err := r.registry.MarkFailed(handle, reason); err != nil {
		return err
	}

	mu.Lock()
	summary.Failed = append(summary.Failed, ProfileFailure{Handle: handle, Reason: reason})
	mu.Unlock()

	slog.Warn("profile failed", "handle", handle, "reason", reason)
	return nil
}

func failureReason(ctx context.Context, err error) string {
	if ctx.Err() != nil {
		return "scrape canceled: " + ctx.Err().Error()
	}
	return err.Error()
}

// pause waits a random interval inside the configured delay range.
func (r *Runner) pause(ctx context.Context) {
	if r.maxDelay <= 0 {
		return
	}
	d := r.minDelay
	if r.maxDelay > r.minDelay {
		d += time.Duration(rand.Int63n(int64(r.maxDelay - r.minDelay)))
	}
	if d > 0 {
		r.sleep(ctx, d)
	}
}
