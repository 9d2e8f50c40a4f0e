package storage

import (
	"context"
	"sync"

	"github.com/bilgisen/haberci/internal/models"
)

// MemoryStore keeps articles in process memory; used for dry runs
type MemoryStore struct {
	mu       sync.RWMutex
	byTitle  map[string]struct{}
	articles []models.Article
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byTitle: make(map[string]struct{})}
}

func (m *MemoryStore) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byTitle[title]
	return ok, nil
}

func (m *MemoryStore) Insert(ctx context.Context, article *models.Article) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byTitle[article.Title]; ok {
		return ErrDuplicate
	}
	m.byTitle[article.Title] = struct{}{}
	m.articles = append(m.articles, *article)
	return nil
}

// Articles returns the stored articles in insertion order
func (m *MemoryStore) Articles() []models.Article {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Article(nil), m.articles...)
}

func (m *MemoryStore) Close() error {
	return nil
}
