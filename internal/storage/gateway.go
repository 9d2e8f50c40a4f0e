package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bilgisen/haberci/internal/cache"
	"github.com/bilgisen/haberci/internal/logger"
	"github.com/bilgisen/haberci/internal/models"
	"github.com/go-playground/validator/v10"
)

const maxRetryWait = 10 * time.Second

// GatewayConfig tunes retries and the optional title cache
type GatewayConfig struct {
	Retries   int
	RetryWait time.Duration
	CacheTTL  time.Duration
	LockTTL   time.Duration
}

// Gateway is the single point of contact with the document store. It
// validates articles, retries transient store errors and, when a cache is
// configured, short-circuits known titles and serializes concurrent
// writers of the same title across processes.
type Gateway struct {
	store    Store
	cache    cache.Cache
	validate *validator.Validate
	cfg      GatewayConfig
}

// NewGateway wraps store. c may be nil.
func NewGateway(store Store, c cache.Cache, cfg GatewayConfig) *Gateway {
	return &Gateway{
		store:    store,
		cache:    c,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// ExistsByTitle reports whether an article with exactly this title is
// already stored
func (g *Gateway) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	log := logger.Get()
	key := models.TitleKey(title)

	if g.cache != nil {
		seen, err := g.cache.IsProcessed(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("title", title).Msg("Title cache lookup failed, asking the store")
		} else if seen {
			return true, nil
		}
	}

	var exists bool
	err := g.retry(ctx, "exists", func(ctx context.Context) error {
		var err error
		exists, err = g.store.ExistsByTitle(ctx, title)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("error checking title: %w", err)
	}

	if exists {
		g.remember(ctx, key)
	}
	return exists, nil
}

// Insert validates and commits the article. It returns ErrDuplicate when
// the store rejects the title as already present.
func (g *Gateway) Insert(ctx context.Context, article *models.Article) error {
	if err := g.validate.Struct(article); err != nil {
		return fmt.Errorf("invalid article: %w", err)
	}

	err := g.retry(ctx, "insert", func(ctx context.Context) error {
		return g.store.Insert(ctx, article)
	})
	if err != nil && !errors.Is(err, ErrDuplicate) {
		return fmt.Errorf("error inserting article: %w", err)
	}

	g.remember(ctx, article.Key())
	return err
}

// Lock claims the title for the current process. ok is false when another
// process holds it. Without a cache, or when the cache is unreachable,
// the lock is a no-op that always succeeds.
func (g *Gateway) Lock(ctx context.Context, title string) (release func(), ok bool) {
	noop := func() {}
	if g.cache == nil {
		return noop, true
	}

	key := models.TitleKey(title)
	acquired, err := g.cache.AcquireLock(ctx, key, g.cfg.LockTTL)
	if err != nil {
		logger.Get().Warn().Err(err).Str("title", title).Msg("Title lock unavailable, continuing without it")
		return noop, true
	}
	if !acquired {
		return noop, false
	}

	return func() {
		// Release even if the run context is already cancelled
		if err := g.cache.ReleaseLock(context.WithoutCancel(ctx), key); err != nil {
			logger.Get().Warn().Err(err).Str("title", title).Msg("Failed to release title lock")
		}
	}, true
}

func (g *Gateway) Close() error {
	var errs []error
	if err := g.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing store: %w", err))
	}
	if g.cache != nil {
		if err := g.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing cache: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (g *Gateway) remember(ctx context.Context, key string) {
	if g.cache == nil {
		return
	}
	if err := g.cache.MarkProcessed(ctx, key, g.cfg.CacheTTL); err != nil {
		logger.Get().Warn().Err(err).Str("key", key).Msg("Failed to update title cache")
	}
}

// retry runs fn until it succeeds, fails permanently or the retry budget
// is spent, doubling the wait between attempts
func (g *Gateway) retry(ctx context.Context, op string, fn func(context.Context) error) error {
	wait := g.cfg.RetryWait
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil || !retryable(err) || attempt >= g.cfg.Retries {
			return err
		}

		logger.Get().Warn().
			Err(err).
			Str("op", op).
			Int("attempt", attempt+1).
			Dur("backoff", wait).
			Msg("Store operation failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		wait *= 2
		if wait > maxRetryWait {
			wait = maxRetryWait
		}
	}
}

func retryable(err error) bool {
	return !errors.Is(err, ErrDuplicate) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
