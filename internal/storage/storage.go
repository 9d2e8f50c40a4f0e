package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bilgisen/haberci/internal/models"
)

var (
	// ErrDuplicate is returned by Insert when the title is already stored
	ErrDuplicate = errors.New("storage: duplicate title")
	// ErrUnknownDriver is returned by Open for an unsupported STORE_DRIVER
	ErrUnknownDriver = errors.New("storage: unknown driver")
)

// Store is the document store as seen by the pipeline: an exact-match
// lookup by title and a write-once insert
type Store interface {
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Insert(ctx context.Context, article *models.Article) error
	Close() error
}

// FileStore keeps one JSON document per article on disk, grouped in
// dated directories (articles/YYYY/MM/DD/<title key>.json)
type FileStore struct {
	basePath string
	mu       sync.RWMutex
}

func NewFileStore(basePath string) (*FileStore, error) {
	articlesPath := filepath.Join(basePath, "articles")
	if err := os.MkdirAll(articlesPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &FileStore{
		basePath: basePath,
	}, nil
}

// ExistsByTitle looks for a document named after the title key in any
// dated directory
func (s *FileStore) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	path, err := s.find(models.TitleKey(title))
	if err != nil {
		return false, err
	}
	return path != "", nil
}

// Insert writes the article under the directory of its creation date
func (s *FileStore) Insert(ctx context.Context, article *models.Article) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := article.Key()
	existing, err := s.find(key)
	if err != nil {
		return err
	}
	if existing != "" {
		return ErrDuplicate
	}

	datePath := filepath.Join(s.basePath, "articles", article.CreatedAtServer.UTC().Format("2006/01/02"))
	if err := os.MkdirAll(datePath, 0755); err != nil {
		return fmt.Errorf("failed to create date directory: %w", err)
	}

	data, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal article: %w", err)
	}

	filePath := filepath.Join(datePath, key+".json")
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write article file: %w", err)
	}

	return nil
}

// Get reads the stored article with the given title
func (s *FileStore) Get(ctx context.Context, title string) (*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	path, err := s.find(models.TitleKey(title))
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("article %q not found", title)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var article models.Article
	if err := json.Unmarshal(data, &article); err != nil {
		return nil, fmt.Errorf("failed to unmarshal article: %w", err)
	}
	return &article, nil
}

func (s *FileStore) Close() error {
	return nil
}

// find must be called with mu held
func (s *FileStore) find(key string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(s.basePath, "articles", "*", "*", "*", key+".json"))
	if err != nil {
		return "", fmt.Errorf("error searching articles: %w", err)
	}
	if len(matches) == 0 {
		return "", nil
	}
	return matches[0], nil
}
