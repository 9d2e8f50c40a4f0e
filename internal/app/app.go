// Package app wires configuration into the running pipeline. Both the
// HTTP server and the one-shot command build their dependencies here.
package app

import (
	"context"
	"fmt"

	"github.com/bilgisen/haberci/internal/cache"
	"github.com/bilgisen/haberci/internal/config"
	"github.com/bilgisen/haberci/internal/feed"
	"github.com/bilgisen/haberci/internal/ingest"
	"github.com/bilgisen/haberci/internal/logger"
	"github.com/bilgisen/haberci/internal/storage"
)

// App holds the long-lived dependencies of a process
type App struct {
	Config     *config.Config
	Cache      cache.Cache
	Gateway    *storage.Gateway
	Processor  *ingest.Processor
	Categories []feed.Category
}

// New connects the cache and the store selected by cfg and builds the
// processor on top of them. The caller owns Close.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.Get()

	var c cache.Cache
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisClient(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
		}
		c = rc
		log.Info().Str("prefix", cfg.RedisPrefix).Msg("Redis title cache enabled")
	} else {
		log.Info().Msg("REDIS_URL not set, running without title cache")
	}

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		if c != nil {
			_ = c.Close()
		}
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}
	log.Info().Str("driver", cfg.StoreDriver).Msg("Document store ready")

	gw := storage.NewGateway(store, c, storage.GatewayConfig{
		Retries:   cfg.StoreRetries,
		RetryWait: cfg.StoreRetryWait,
		CacheTTL:  cfg.CacheTTL,
		LockTTL:   cfg.LockTTL,
	})

	categories := feed.DefaultCategories()
	fetcher := feed.NewFetcher(feed.FetcherConfig{
		Timeout:    cfg.FeedTimeout,
		RetryCount: cfg.FeedRetryCount,
		UserAgent:  cfg.UserAgent,
	})
	details := feed.NewDetailFetcher(feed.DetailConfig{
		Timeout:   cfg.DetailTimeout,
		UserAgent: cfg.UserAgent,
		Selector:  cfg.ContentSelector,
	})

	proc := ingest.NewProcessor(fetcher, details, gw, ingest.Config{
		Categories:  categories,
		Concurrency: cfg.MaxConcurrency,
		SourceName:  cfg.SourceName,
	})

	return &App{
		Config:     cfg,
		Cache:      c,
		Gateway:    gw,
		Processor:  proc,
		Categories: categories,
	}, nil
}

// Close releases the store and the cache
func (a *App) Close() error {
	return a.Gateway.Close()
}
