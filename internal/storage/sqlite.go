package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bilgisen/haberci/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps articles in a single SQLite file
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore opens or creates an SQLite database at the given path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One writer at a time; the pipeline commits serially anyway
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}

	s := &SQLiteStore{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS articles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL UNIQUE,
		url TEXT NOT NULL,
		content TEXT NOT NULL,
		image_url TEXT NOT NULL,
		publish_date_str TEXT,
		category TEXT NOT NULL,
		cities TEXT NOT NULL DEFAULT '[]',
		source_name TEXT NOT NULL,
		created_at_server TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category);
	`
	_, err := s.conn.Exec(schema)
	return err
}

func (s *SQLiteStore) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var one int
	err := s.conn.QueryRowContext(ctx, "SELECT 1 FROM articles WHERE title = ? LIMIT 1", title).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, article *models.Article) error {
	cities := article.Cities
	if cities == nil {
		cities = []string{}
	}
	raw, err := json.Marshal(cities)
	if err != nil {
		return fmt.Errorf("failed to marshal cities: %w", err)
	}

	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO articles (title, url, content, image_url, publish_date_str, category, cities, source_name, created_at_server)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		article.Title, article.URL, article.Content, article.ImageURL, article.PublishDateStr,
		article.Category, string(raw), article.SourceName,
		article.CreatedAtServer.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// CountByCategory returns how many articles are stored for category
func (s *SQLiteStore) CountByCategory(ctx context.Context, category string) (int, error) {
	var n int
	err := s.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles WHERE category = ?", category).Scan(&n)
	return n, err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
