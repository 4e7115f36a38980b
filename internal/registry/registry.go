// Package registry tracks the set of target profiles and their scrape
// lifecycle across runs.
package registry

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Status is the scrape lifecycle state of a tracked profile.
type Status string

const (
	StatusPending   Status = "pending"
	StatusScraping  Status = "scraping"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// ErrNotFound is returned when a handle is not tracked.
var ErrNotFound = errors.New("profile not found")

// Profile is one tracked profile record.
type Profile struct {
	Handle         string     `json:"handle"`
	URL            string     `json:"url"`
	Status         Status     `json:"status"`
	AddedAt        time.Time  `json:"added_at"`
	LastScraped    *time.Time `json:"last_scraped,omitempty"`
	PostCount      int        `json:"post_count"`
	SlideshowCount int        `json:"slideshow_count"`
	ErrorCount     int        `json:"error_count"`
	LastError      string     `json:"last_error,omitempty"`
}

// Normalize lowercases a handle and strips surrounding space and a
// leading @. Profiles are keyed by the normalized form.
func Normalize(handle string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(handle), "@"))
}

// ProfileURL returns the canonical page URL for a normalized handle.
func ProfileURL(handle string) string {
	return "https://www.tiktok.com/@" + handle
}

// Registry persists profile records and serializes all state transitions.
type Registry struct {
	mu sync.Mutex
	db *sql.DB
}

// New creates a Registry on the given database, creating the schema if
// needed.
func New(db *sql.DB) (*Registry, error) {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		handle TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		status TEXT NOT NULL,
		added_at DATETIME NOT NULL,
		last_scraped DATETIME,
		post_count INTEGER NOT NULL DEFAULT 0,
		slideshow_count INTEGER NOT NULL DEFAULT 0,
		error_count INTEGER NOT NULL DEFAULT 0,
		last_error TEXT NOT NULL DEFAULT ''
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to migrate profiles schema: %w", err)
	}
	return &Registry{db: db}, nil
}

// Add tracks the given handles, defaulting them to pending. Handles
// already tracked (any case, with or without @) are silently skipped.
// Returns the number of profiles actually added.
func (r *Registry) Add(handles ...string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	added := 0
	for _, h := range handles {
		handle := Normalize(h)
		if handle == "" {
			continue
		}
		res, err := r.db.Exec(`
			INSERT OR IGNORE INTO profiles (handle, url, status, added_at)
			VALUES (?, ?, ?, ?)
		`, handle, ProfileURL(handle), StatusPending, time.Now())
		if err != nil {
			return added, fmt.Errorf("failed to add profile %q: %w", handle, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	return added, nil
}

// Remove deletes tracked profiles. Missing handles are a no-op.
func (r *Registry) Remove(handles ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, h := range handles {
		if _, err := r.db.Exec(`DELETE FROM profiles WHERE handle = ?`, Normalize(h)); err != nil {
			return fmt.Errorf("failed to remove profile %q: %w", h, err)
		}
	}
	return nil
}

const profileColumns = `handle, url, status, added_at, last_scraped,
	post_count, slideshow_count, error_count, last_error`

// ListAll returns every tracked profile in insertion order.
func (r *Registry) ListAll() ([]Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT ` + profileColumns + ` FROM profiles ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// Get returns a single profile, or ErrNotFound.
func (r *Registry) Get(handle string) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(r.db, Normalize(handle))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*Profile, error) {
	var p Profile
	var lastScraped sql.NullTime
	err := row.Scan(&p.Handle, &p.URL, &p.Status, &p.AddedAt, &lastScraped,
		&p.PostCount, &p.SlideshowCount, &p.ErrorCount, &p.LastError)
	if err != nil {
		return nil, err
	}
	if lastScraped.Valid {
		p.LastScraped = &lastScraped.Time
	}
	return &p, nil
}

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

func (r *Registry) get(q querier, handle string) (*Profile, error) {
	p, err := scanProfile(q.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE handle = ?`, handle))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// NextPending atomically claims the oldest pending profile, moving it to
// scraping. Returns nil when no profile is pending.
func (r *Registry) NextPending() (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	p, err := scanProfile(tx.QueryRow(`
		SELECT ` + profileColumns + ` FROM profiles
		WHERE status = 'pending' ORDER BY rowid LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(`UPDATE profiles SET status = ? WHERE handle = ?`, StatusScraping, p.Handle); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	p.Status = StatusScraping
	return p, nil
}

// Claim moves a named profile to scraping. Completed and skipped profiles
// are terminal until reset; claiming one returns nil without error.
// Claiming from scraping is allowed so an interrupted run can resume.
func (r *Registry) Claim(handle string) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle = Normalize(handle)

	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	p, err := r.get(tx, handle)
	if err != nil {
		return nil, err
	}
	if p.Status == StatusCompleted || p.Status == StatusSkipped {
		return nil, nil
	}

	if _, err := tx.Exec(`UPDATE profiles SET status = ? WHERE handle = ?`, StatusScraping, handle); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	p.Status = StatusScraping
	return p, nil
}

// MarkCompleted transitions a profile to completed and records its scrape
// counters.
func (r *Registry) MarkCompleted(handle string, totalPosts, slideshowPosts int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`
		UPDATE profiles
		SET status = ?, last_scraped = ?, post_count = ?, slideshow_count = ?
		WHERE handle = ?
	`, StatusCompleted, time.Now(), totalPosts, slideshowPosts, Normalize(handle))
	if err != nil {
		return fmt.Errorf("failed to mark %q completed: %w", handle, err)
	}
	return nil
}

// MarkFailed transitions a profile to failed with a reason.
func (r *Registry) MarkFailed(handle, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reason == "" {
		reason = "unknown error"
	}
	_, err := r.db.Exec(`
		UPDATE profiles
		SET status = ?, last_error = ?, error_count = error_count + 1
		WHERE handle = ?
	`, StatusFailed, reason, Normalize(handle))
	if err != nil {
		return fmt.Errorf("failed to mark %q failed: %w", handle, err)
	}
	return nil
}

// MarkSkipped transitions a profile to skipped. Skipped is terminal until
// an explicit reset.
func (r *Registry) MarkSkipped(handle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`UPDATE profiles SET status = ? WHERE handle = ?`, StatusSkipped, Normalize(handle))
	if err != nil {
		return fmt.Errorf("failed to mark %q skipped: %w", handle, err)
	}
	return nil
}

// Reset returns the given profiles to pending and clears their error
// state. With no handles, every failed profile is reset. Returns the
// number of profiles reset.
func (r *Registry) Reset(handles ...string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(handles) == 0 {
		res, err := r.db.Exec(`
			UPDATE profiles SET status = ?, error_count = 0, last_error = ''
			WHERE status = ?
		`, StatusPending, StatusFailed)
		if err != nil {
			return 0, err
		}
		n, _ := res.RowsAffected()
		return int(n), nil
	}

	reset := 0
	for _, h := range handles {
		res, err := r.db.Exec(`
			UPDATE profiles SET status = ?, error_count = 0, last_error = ''
			WHERE handle = ?
		`, StatusPending, Normalize(h))
		if err != nil {
			return reset, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			reset++
		}
	}
	return reset, nil
}

// RequeueCompleted returns completed profiles to pending so they can be
// scraped again. Failed and skipped profiles are left alone.
func (r *Registry) RequeueCompleted() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.Exec(`
		UPDATE profiles SET status = ? WHERE status = ?
	`, StatusPending, StatusCompleted)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// ResetAll returns every profile to pending and clears all scrape state,
// including post counters and the last-scraped timestamp. Meant to pair
// with deleting the stored posts.
func (r *Registry) ResetAll() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.Exec(`
		UPDATE profiles SET status = ?, last_scraped = NULL,
			post_count = 0, slideshow_count = 0,
			error_count = 0, last_error = ''
	`, StatusPending)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
