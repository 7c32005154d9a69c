// Package store caches fetched games documents in SQLite.
//
// The cache exists so the app can start offline: the last good document is
// replayed through model.ParseDocument at startup while a fresh fetch runs
// in the background. Documents are stored as the raw JSON bytes they
// arrived as - parsing stays in one place.
//
// Store is safe for concurrent use; the underlying sql.DB serializes
// access.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// ErrNotFound reports an empty cache. It is an absence, not a failure.
var ErrNotFound = errors.New("document not found")

// Store handles persistence of fetched documents.
type Store struct {
	db *sql.DB
}

// CachedDocument is one cached snapshot plus its fetch provenance.
type CachedDocument struct {
	Raw         []byte
	URL         string
	GeneratedAt time.Time
	FetchedAt   time.Time
}

// New creates a new SQLite store at the given path.
//
// The database is created if it doesn't exist, and migrations are applied
// automatically.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		raw BLOB NOT NULL,
		generated_at DATETIME NOT NULL,
		fetched_at DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_documents_fetched ON documents(fetched_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveDocument caches a fetched document. Older snapshots are kept for a
// while (see Prune) so a bad deploy of the document can be diagnosed.
func (s *Store) SaveDocument(url string, raw []byte, generatedAt, fetchedAt time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO documents (url, raw, generated_at, fetched_at)
		VALUES (?, ?, ?, ?)
	`, url, raw, generatedAt.UTC(), fetchedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// LatestDocument returns the most recently fetched snapshot, or ErrNotFound
// when the cache is empty.
func (s *Store) LatestDocument() (*CachedDocument, error) {
	var doc CachedDocument
	err := s.db.QueryRow(`
		SELECT url, raw, generated_at, fetched_at
		FROM documents
		ORDER BY fetched_at DESC, id DESC
		LIMIT 1
	`).Scan(&doc.URL, &doc.Raw, &doc.GeneratedAt, &doc.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return &doc, nil
}

// Prune deletes snapshots older than maxAge, always keeping the newest one
// regardless of age. Returns the number of rows removed.
func (s *Store) Prune(maxAge time.Duration, now time.Time) (int64, error) {
	res, err := s.db.Exec(`
		DELETE FROM documents
		WHERE fetched_at < ?
		AND id != (SELECT id FROM documents ORDER BY fetched_at DESC, id DESC LIMIT 1)
	`, now.Add(-maxAge).UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune documents: %w", err)
	}
	return res.RowsAffected()
}

// DocumentCount returns how many snapshots are cached.
func (s *Store) DocumentCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&count)
	return count, err
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
