package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"feedreader/internal/domain/entity"
	"feedreader/internal/domain/repository"

	_ "modernc.org/sqlite"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteEntryRepository opens (or creates) the entry database at dbPath.
// Entries are keyed by link; refetching a feed upserts rather than
// duplicates.
func NewSQLiteEntryRepository(dbPath string) (repository.EntryRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}

	store := &sqliteStore{db: db}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *sqliteStore) initSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			link TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			published_at INTEGER NOT NULL,
			content_snippet TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			categories TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_published_at ON entries(published_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute schema query: %w", err)
		}
	}

	return nil
}

// Save writes one entry inside its own transaction, so a partially written
// entry is never visible. No transaction spans a whole batch.
func (s *sqliteStore) Save(ctx context.Context, entry *entity.Entry) error {
	categories, err := json.Marshal(entry.Categories)
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO entries (link, title, author, published_at, content_snippet, content, categories)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(link) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			published_at = excluded.published_at,
			content_snippet = excluded.content_snippet,
			content = excluded.content,
			categories = excluded.categories`,
		entry.Link,
		entry.Title,
		entry.Author,
		entry.Published.Unix(),
		entry.ContentSnippet,
		entry.Content,
		string(categories),
	)
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit entry: %w", err)
	}

	return nil
}

func (s *sqliteStore) List(ctx context.Context, limit int) ([]*entity.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT link, title, author, published_at, content_snippet, content, categories
		FROM entries ORDER BY published_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.Entry
	for rows.Next() {
		var (
			link, title, author, snippet, content, categoriesJSON string
			publishedAt                                           int64
		)
		if err := rows.Scan(&link, &title, &author, &publishedAt, &snippet, &content, &categoriesJSON); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}

		var categories []string
		if err := json.Unmarshal([]byte(categoriesJSON), &categories); err != nil {
			return nil, fmt.Errorf("failed to decode categories for %s: %w", link, err)
		}

		entry, err := entity.NewEntry(title, link, author, time.Unix(publishedAt, 0).UTC(),
			snippet, content, categories)
		if err != nil {
			return nil, fmt.Errorf("stored entry %s is invalid: %w", link, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// PurgeOlderThan drops entries published before the cutoff. Keeps the demo
// database from growing without bound on long-lived installs.
func (s *sqliteStore) PurgeOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).Unix()
	result, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE published_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge old entries: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}
