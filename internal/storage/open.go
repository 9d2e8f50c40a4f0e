package storage

import (
	"context"
	"fmt"

	"github.com/bilgisen/haberci/internal/config"
)

// Open builds the document store selected by cfg.StoreDriver
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case "file":
		return NewFileStore(cfg.StoragePath)
	case "memory":
		return NewMemoryStore(), nil
	case "postgres":
		return NewPostgresStore(cfg.PostgresDSN)
	case "sqlite":
		return NewSQLiteStore(cfg.SQLitePath)
	case "mongo":
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	case "s3":
		return NewS3Store(ctx, cfg.R2Endpoint, cfg.R2AccessKey, cfg.R2SecretKey, cfg.R2Bucket)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StoreDriver)
	}
}
