// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists the book catalog in SQLite and serves it to the
// recommender. Title, author, and genre columns are nullable; rows missing
// any of them are returned with blank fields and never match.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bookmatch/internal/logging"
	"github.com/pdiddy/bookmatch/internal/similarity"
	"github.com/pdiddy/bookmatch/pkg/types"
)

const dbFile = "catalog.db"

// idNamespace seeds deterministic book IDs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("bookmatch/catalog"))

// Store manages the catalog SQLite database.
type Store struct {
	db  *sql.DB
	dir string
}

// NewStore opens or creates dir/catalog.db and its schema.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "catalog"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS books (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT,
			author TEXT,
			genre TEXT,
			summary TEXT,
			image_url TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_books_genre ON books(genre)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// BookID returns the deterministic ID for a title and author pair.
func BookID(title, author string) string {
	key := similarity.Normalize(title) + "\x00" + similarity.Normalize(author)
	return uuid.NewSHA1(idNamespace, []byte(key)).String()
}

// ImportSummary holds counts from one import run.
type ImportSummary struct {
	Added   int
	Updated int
	Skipped int
}

// Total returns the number of records read.
func (s ImportSummary) Total() int {
	return s.Added + s.Updated + s.Skipped
}

// Import reads a YAML list of books from path and upserts them. Entries
// without a title are skipped. Entries without an ID get BookID. Progress
// lines go to w.
func (s *Store) Import(ctx context.Context, path string, w io.Writer) (ImportSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var books []types.CatalogEntry
	if err := yaml.Unmarshal(data, &books); err != nil {
		return ImportSummary{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var summary ImportSummary
	for i, b := range books {
		if strings.TrimSpace(b.Title) == "" {
			fmt.Fprintf(w, "skipped #%d: no title\n", i+1)
			summary.Skipped++
			continue
		}
		if b.ID == "" {
			b.ID = BookID(b.Title, b.Author)
		}

		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM books WHERE id = ?`, b.ID).Scan(&exists); err != nil {
			return summary, fmt.Errorf("checking book %s: %w", b.ID, err)
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO books (id, title, author, genre, summary, image_url)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
				title=excluded.title, author=excluded.author, genre=excluded.genre,
				summary=excluded.summary, image_url=excluded.image_url`,
			b.ID, nullable(b.Title), nullable(b.Author), nullable(b.Genre),
			nullable(b.Summary), nullable(b.ImageURL),
		)
		if err != nil {
			return summary, fmt.Errorf("upserting book %q: %w", b.Title, err)
		}

		if exists > 0 {
			fmt.Fprintf(w, "updated %s (%s)\n", b.Title, b.ID)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "added   %s (%s)\n", b.Title, b.ID)
			summary.Added++
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing import: %w", err)
	}

	fmt.Fprintf(w, "\nadded: %d, updated: %d, skipped: %d\n",
		summary.Added, summary.Updated, summary.Skipped)
	logging.Ctx(ctx).Info().
		Str("file", path).
		Int("added", summary.Added).
		Int("updated", summary.Updated).
		Int("skipped", summary.Skipped).
		Msg("catalog import finished")

	return summary, nil
}

// All returns every book in insertion order. NULL columns come back blank.
func (s *Store) All(ctx context.Context) ([]types.CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, author, genre, summary, image_url FROM books ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	var entries []types.CatalogEntry
	for rows.Next() {
		var (
			e                                       types.CatalogEntry
			title, author, genre, summary, imageURL sql.NullString
		)
		if err := rows.Scan(&e.ID, &title, &author, &genre, &summary, &imageURL); err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		e.Title = title.String
		e.Author = author.String
		e.Genre = genre.String
		e.Summary = summary.String
		e.ImageURL = imageURL.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}
	return entries, nil
}

// Count returns the number of stored books.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting books: %w", err)
	}
	return n, nil
}

// nullable maps blank strings to SQL NULL.
func nullable(v string) sql.NullString {
	v = strings.TrimSpace(v)
	return sql.NullString{String: v, Valid: v != ""}
}
