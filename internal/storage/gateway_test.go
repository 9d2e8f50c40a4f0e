package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bilgisen/haberci/internal/cache"
	"github.com/bilgisen/haberci/internal/models"
)

// flakyStore fails the first failures calls of each kind
type flakyStore struct {
	*MemoryStore
	failures    int
	existsCalls int
	insertCalls int
	err         error
}

func (f *flakyStore) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	f.existsCalls++
	if f.existsCalls <= f.failures {
		return false, f.err
	}
	return f.MemoryStore.ExistsByTitle(ctx, title)
}

func (f *flakyStore) Insert(ctx context.Context, a *models.Article) error {
	f.insertCalls++
	if f.insertCalls <= f.failures {
		return f.err
	}
	return f.MemoryStore.Insert(ctx, a)
}

// brokenCache fails every call
type brokenCache struct{}

var errCacheDown = errors.New("cache down")

func (brokenCache) IsProcessed(context.Context, string) (bool, error) { return false, errCacheDown }
func (brokenCache) MarkProcessed(context.Context, string, time.Duration) error {
	return errCacheDown
}
func (brokenCache) ClearProcessed(context.Context) error { return errCacheDown }
func (brokenCache) AcquireLock(context.Context, string, time.Duration) (bool, error) {
	return false, errCacheDown
}
func (brokenCache) ReleaseLock(context.Context, string) error { return errCacheDown }
func (brokenCache) Close() error                              { return nil }

var testGatewayConfig = GatewayConfig{
	Retries:   2,
	RetryWait: time.Millisecond,
	CacheTTL:  time.Hour,
	LockTTL:   time.Minute,
}

func TestGatewayRetriesTransientErrors(t *testing.T) {
	store := &flakyStore{MemoryStore: NewMemoryStore(), failures: 2, err: errors.New("connection reset")}
	gw := NewGateway(store, nil, testGatewayConfig)
	ctx := context.Background()

	exists, err := gw.ExistsByTitle(ctx, "Haber")
	if err != nil {
		t.Fatalf("ExistsByTitle returned error: %v", err)
	}
	if exists {
		t.Fatal("expected title to be missing")
	}
	if store.existsCalls != 3 {
		t.Errorf("expected 3 exists calls, got %d", store.existsCalls)
	}

	if err := gw.Insert(ctx, testArticle("Haber")); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if store.insertCalls != 3 {
		t.Errorf("expected 3 insert calls, got %d", store.insertCalls)
	}
}

func TestGatewayGivesUpAfterRetries(t *testing.T) {
	boom := errors.New("connection refused")
	store := &flakyStore{MemoryStore: NewMemoryStore(), failures: 10, err: boom}
	gw := NewGateway(store, nil, testGatewayConfig)

	err := gw.Insert(context.Background(), testArticle("Haber"))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if store.insertCalls != testGatewayConfig.Retries+1 {
		t.Errorf("expected %d insert calls, got %d", testGatewayConfig.Retries+1, store.insertCalls)
	}
}

func TestGatewayDoesNotRetryDuplicate(t *testing.T) {
	store := &flakyStore{MemoryStore: NewMemoryStore()}
	gw := NewGateway(store, nil, testGatewayConfig)
	ctx := context.Background()

	if err := gw.Insert(ctx, testArticle("Haber")); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if err := gw.Insert(ctx, testArticle("Haber")); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if store.insertCalls != 2 {
		t.Errorf("expected 2 insert calls, got %d", store.insertCalls)
	}
}

func TestGatewayRejectsInvalidArticle(t *testing.T) {
	store := NewMemoryStore()
	gw := NewGateway(store, nil, testGatewayConfig)

	a := testArticle("Haber")
	a.ImageURL = ""
	if err := gw.Insert(context.Background(), a); err == nil {
		t.Fatal("expected validation error for missing image")
	}
	if len(store.Articles()) != 0 {
		t.Error("invalid article reached the store")
	}
}

func TestGatewayCacheShortCircuitsKnownTitles(t *testing.T) {
	store := &flakyStore{MemoryStore: NewMemoryStore()}
	c := cache.NewMockRedisClient()
	gw := NewGateway(store, c, testGatewayConfig)
	ctx := context.Background()

	if err := gw.Insert(ctx, testArticle("Haber")); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	exists, err := gw.ExistsByTitle(ctx, "Haber")
	if err != nil {
		t.Fatalf("ExistsByTitle returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected cached title to exist")
	}
	if store.existsCalls != 0 {
		t.Errorf("expected the store not to be asked, got %d calls", store.existsCalls)
	}
}

func TestGatewayToleratesBrokenCache(t *testing.T) {
	store := NewMemoryStore()
	gw := NewGateway(store, brokenCache{}, testGatewayConfig)
	ctx := context.Background()

	release, ok := gw.Lock(ctx, "Haber")
	if !ok {
		t.Fatal("expected lock to degrade to success when cache is down")
	}
	defer release()

	if err := gw.Insert(ctx, testArticle("Haber")); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	exists, err := gw.ExistsByTitle(ctx, "Haber")
	if err != nil {
		t.Fatalf("ExistsByTitle returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected store fallback to find the title")
	}
}

func TestGatewayLock(t *testing.T) {
	gw := NewGateway(NewMemoryStore(), cache.NewMockRedisClient(), testGatewayConfig)
	ctx := context.Background()

	release, ok := gw.Lock(ctx, "Haber")
	if !ok {
		t.Fatal("expected first lock to succeed")
	}
	if _, ok := gw.Lock(ctx, "Haber"); ok {
		t.Fatal("expected second lock on the same title to fail")
	}
	release()
	if _, ok := gw.Lock(ctx, "Haber"); !ok {
		t.Fatal("expected lock to succeed after release")
	}
}

func TestGatewayStopsRetryingOnCancel(t *testing.T) {
	store := &flakyStore{MemoryStore: NewMemoryStore(), failures: 10, err: errors.New("timeout")}
	gw := NewGateway(store, nil, GatewayConfig{Retries: 5, RetryWait: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := gw.Insert(ctx, testArticle("Haber"))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if store.insertCalls != 1 {
		t.Errorf("expected 1 insert call, got %d", store.insertCalls)
	}
}
