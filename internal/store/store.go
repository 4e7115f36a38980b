// Package store persists retained slideshow posts, one append-only
// collection per profile.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"hookline/internal/types"
)

// Open opens the tracking database at dbPath, creating the parent
// directory if needed. SQLite allows a single writer; limiting the pool
// to one connection keeps concurrent workers from hitting SQLITE_BUSY.
func Open(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	return db, nil
}

// Store handles all post persistence.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// New creates a Store on the given database, creating the schema if
// needed.
func New(db *sql.DB) (*Store, error) {
	schema := `
	CREATE TABLE IF NOT EXISTS posts (
		handle TEXT NOT NULL,
		id TEXT NOT NULL,
		caption TEXT NOT NULL,
		is_slideshow BOOLEAN NOT NULL,
		image_count INTEGER NOT NULL DEFAULT 0,
		likes INTEGER NOT NULL DEFAULT 0,
		views INTEGER NOT NULL DEFAULT 0,
		url TEXT NOT NULL DEFAULT '',
		created_at DATETIME,
		scraped_at DATETIME NOT NULL,
		PRIMARY KEY (handle, id)
	);

	CREATE INDEX IF NOT EXISTS idx_posts_handle ON posts(handle);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to migrate posts schema: %w", err)
	}
	return &Store{db: db}, nil
}

// SavePost inserts or updates a post. A duplicate post id for the same
// profile is a silent overwrite, which keeps re-scraping idempotent; the
// original capture order is preserved.
func (s *Store) SavePost(p *types.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO posts (handle, id, caption, is_slideshow, image_count,
			likes, views, url, created_at, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(handle, id) DO UPDATE SET
			caption = excluded.caption,
			is_slideshow = excluded.is_slideshow,
			image_count = excluded.image_count,
			likes = excluded.likes,
			views = excluded.views,
			url = excluded.url,
			scraped_at = excluded.scraped_at
	`, p.Handle, p.ID, p.Caption, p.IsSlideshow, p.ImageCount,
		p.Likes, p.Views, p.URL, p.CreatedAt, p.ScrapedAt)

	return err
}

// PostsByHandle returns a profile's posts in capture order.
func (s *Store) PostsByHandle(handle string) ([]types.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT handle, id, caption, is_slideshow, image_count,
			likes, views, url, created_at, scraped_at
		FROM posts WHERE handle = ? ORDER BY rowid
	`, handle)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []types.Post
	for rows.Next() {
		var p types.Post
		var createdAt sql.NullTime
		err := rows.Scan(&p.Handle, &p.ID, &p.Caption, &p.IsSlideshow, &p.ImageCount,
			&p.Likes, &p.Views, &p.URL, &createdAt, &p.ScrapedAt)
		if err != nil {
			return nil, err
		}
		if createdAt.Valid {
			p.CreatedAt = createdAt.Time
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CountByHandle returns the number of stored posts for a profile.
func (s *Store) CountByHandle(handle string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE handle = ?`, handle).Scan(&n)
	return n, err
}

// DeleteByHandle removes a profile's stored posts.
func (s *Store) DeleteByHandle(handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM posts WHERE handle = ?`, handle)
	return err
}

// DeleteAll removes every stored post and returns how many were deleted.
func (s *Store) DeleteAll() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM posts`)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
