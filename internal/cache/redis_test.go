package cache

import (
	"context"
	"testing"
)

func TestNewRedisClientRejectsBadURL(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), "not a url", "haberci:"); err == nil {
		t.Fatal("expected error for an invalid Redis URL")
	}
}

func TestRedisKeys(t *testing.T) {
	r := &RedisClient{prefix: "haberci:"}
	if got := r.titleKey("abc"); got != "haberci:title:abc" {
		t.Errorf("titleKey = %q", got)
	}
	if got := r.lockKey("abc"); got != "haberci:lock:abc" {
		t.Errorf("lockKey = %q", got)
	}
}
