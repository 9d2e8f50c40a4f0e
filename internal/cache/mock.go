package cache

import (
	"context"
	"sync"
	"time"
)

// MockRedisClient provides an in-memory Cache for tests and for runs
// without Redis. TTLs are honoured on read.
type MockRedisClient struct {
	mu    sync.Mutex
	data  map[string]time.Time
	locks map[string]time.Time
	now   func() time.Time
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{
		data:  make(map[string]time.Time),
		locks: make(map[string]time.Time),
		now:   time.Now,
	}
}

func (m *MockRedisClient) Close() error {
	return nil
}

func (m *MockRedisClient) IsProcessed(ctx context.Context, hash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.alive(m.data, hash), nil
}

func (m *MockRedisClient) MarkProcessed(ctx context.Context, hash string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[hash] = m.expiry(ttl)
	return nil
}

func (m *MockRedisClient) ClearProcessed(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]time.Time)
	return nil
}

func (m *MockRedisClient) AcquireLock(ctx context.Context, hash string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.alive(m.locks, hash) {
		return false, nil
	}
	m.locks[hash] = m.expiry(ttl)
	return true, nil
}

func (m *MockRedisClient) ReleaseLock(ctx context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, hash)
	return nil
}

func (m *MockRedisClient) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return m.now().Add(ttl)
}

// alive must be called with mu held
func (m *MockRedisClient) alive(set map[string]time.Time, key string) bool {
	exp, ok := set[key]
	if !ok {
		return false
	}
	if !exp.IsZero() && !m.now().Before(exp) {
		delete(set, key)
		return false
	}
	return true
}
