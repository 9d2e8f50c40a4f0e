package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bilgisen/haberci/internal/models"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// articleRecord is the relational shape of models.Article. The unique
// index on title backs the dedup check when runs overlap.
type articleRecord struct {
	ID              uint           `gorm:"primaryKey"`
	Title           string         `gorm:"size:1024;uniqueIndex"`
	URL             string         `gorm:"size:2048"`
	Content         string         `gorm:"type:text"`
	ImageURL        string         `gorm:"size:2048"`
	PublishDateStr  *string        `gorm:"size:128"`
	Category        string         `gorm:"size:64;index"`
	Cities          datatypes.JSON `gorm:"type:jsonb"`
	SourceName      string         `gorm:"size:64"`
	CreatedAtServer time.Time      `gorm:"index"`
}

func (articleRecord) TableName() string {
	return "articles"
}

func newArticleRecord(a *models.Article) (*articleRecord, error) {
	cities := a.Cities
	if cities == nil {
		cities = []string{}
	}
	raw, err := json.Marshal(cities)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cities: %w", err)
	}

	return &articleRecord{
		Title:           a.Title,
		URL:             a.URL,
		Content:         a.Content,
		ImageURL:        a.ImageURL,
		PublishDateStr:  a.PublishDateStr,
		Category:        a.Category,
		Cities:          datatypes.JSON(raw),
		SourceName:      a.SourceName,
		CreatedAtServer: a.CreatedAtServer.UTC(),
	}, nil
}

// PostgresStore keeps articles in PostgreSQL through gorm
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.AutoMigrate(&articleRecord{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&articleRecord{}).
		Where("title = ?", title).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

func (s *PostgresStore) Insert(ctx context.Context, article *models.Article) error {
	rec, err := newArticleRecord(article)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
