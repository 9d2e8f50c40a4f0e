package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache remembers which titles were already stored and guards the
// check-then-insert step with a short-lived lock per title
type Cache interface {
	IsProcessed(ctx context.Context, hash string) (bool, error)
	MarkProcessed(ctx context.Context, hash string, ttl time.Duration) error
	ClearProcessed(ctx context.Context) error
	AcquireLock(ctx context.Context, hash string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, hash string) error
	Close() error
}

type RedisClient struct {
	client *redis.Client
	prefix string
}

func NewRedisClient(ctx context.Context, url, prefix string) (*RedisClient, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test the connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client: client,
		prefix: prefix,
	}, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func (r *RedisClient) titleKey(hash string) string {
	return r.prefix + "title:" + hash
}

func (r *RedisClient) lockKey(hash string) string {
	return r.prefix + "lock:" + hash
}

func (r *RedisClient) IsProcessed(ctx context.Context, hash string) (bool, error) {
	exists, err := r.client.Exists(ctx, r.titleKey(hash)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists error: %w", err)
	}
	return exists > 0, nil
}

func (r *RedisClient) MarkProcessed(ctx context.Context, hash string, ttl time.Duration) error {
	return r.client.Set(ctx, r.titleKey(hash), "1", ttl).Err()
}

// ClearProcessed forgets every remembered title; locks are left alone
func (r *RedisClient) ClearProcessed(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.prefix+"title:*", 0).Iterator()
	var keys []string

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("error scanning keys: %w", err)
	}

	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("error deleting keys: %w", err)
		}
	}

	return nil
}

// AcquireLock reports false when another process holds the title
func (r *RedisClient) AcquireLock(ctx context.Context, hash string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.lockKey(hash), "1", ttl).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("redis setnx error: %w", err)
	}
	return ok, nil
}

func (r *RedisClient) ReleaseLock(ctx context.Context, hash string) error {
	return r.client.Del(ctx, r.lockKey(hash)).Err()
}
