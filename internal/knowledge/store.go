// Package knowledge provides the local knowledge store: article storage in
// SQLite with an FTS5 index for ranked full-text search and RAG-style
// context assembly.
package knowledge

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a file-backed article store with a full-text index.
type Store struct {
	conn *sql.DB
	path string

	// Serializes writers. SQLite in WAL mode supports a single writer
	// with concurrent readers.
	writeMu sync.Mutex
}

// Open creates or opens the knowledge database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &Store{conn: conn, path: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// AddArticle inserts an article or, if an article with the same (title,
// source) pair already exists, updates its content, category, url, and
// last_updated. The FTS index stays in sync through triggers, so the row
// and its searchable entry commit as a unit. Returns the article ID.
func (s *Store) AddArticle(title, content, category, source, url string) (int64, error) {
	if category == "" {
		category = "general"
	}
	if source == "" {
		source = "custom"
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var id int64
	err := s.conn.QueryRow(
		`INSERT INTO articles (title, content, category, source, url, last_updated)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(title, source) DO UPDATE SET
			content = excluded.content,
			category = excluded.category,
			url = excluded.url,
			last_updated = excluded.last_updated
		RETURNING id`,
		title, content, category, source, nullable(url), time.Now().Format(time.RFC3339),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upserting article %q: %w", title, err)
	}
	return id, nil
}

// GetArticle returns an article by ID, or nil if it does not exist.
func (s *Store) GetArticle(id int64) (*Article, error) {
	row := s.conn.QueryRow(
		`SELECT id, title, content, category, source, url, last_updated
		FROM articles WHERE id = ?`, id,
	)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListArticles returns all articles ordered by title.
func (s *Store) ListArticles() ([]Article, error) {
	rows, err := s.conn.Query(
		`SELECT id, title, content, category, source, url, last_updated
		FROM articles ORDER BY title`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// HasArticle reports whether an article with the given title and source exists.
func (s *Store) HasArticle(title, source string) (bool, error) {
	var count int
	err := s.conn.QueryRow(
		"SELECT COUNT(*) FROM articles WHERE title = ? AND source = ?", title, source,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetStats returns aggregate statistics for the store.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{
		BySource:   make(map[string]int),
		ByCategory: make(map[string]int),
	}

	if err := s.conn.QueryRow("SELECT COUNT(*) FROM articles").Scan(&stats.TotalArticles); err != nil {
		return nil, fmt.Errorf("counting articles: %w", err)
	}

	if err := s.countsInto("source", stats.BySource); err != nil {
		return nil, err
	}
	if err := s.countsInto("category", stats.ByCategory); err != nil {
		return nil, err
	}

	if info, err := os.Stat(s.path); err == nil {
		stats.SizeBytes = info.Size()
	}
	return stats, nil
}

func (s *Store) countsInto(column string, dest map[string]int) error {
	rows, err := s.conn.Query(
		fmt.Sprintf("SELECT %s, COUNT(*) FROM articles GROUP BY %s", column, column),
	)
	if err != nil {
		return fmt.Errorf("counting by %s: %w", column, err)
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		dest[key] = count
	}
	return rows.Err()
}

func scanArticles(rows *sql.Rows) ([]Article, error) {
	var articles []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.Category, &a.Source,
			&a.URL, &a.LastUpdated); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func scanArticle(row *sql.Row) (*Article, error) {
	var a Article
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Category, &a.Source,
		&a.URL, &a.LastUpdated); err != nil {
		return nil, err
	}
	return &a, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
