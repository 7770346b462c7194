package cache

import (
	"context"
	"testing"
	"time"

	"github.com/povarna/generative-ai-agents/campus-agent/internal/records"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func newUnreachableCache(t *testing.T) *RedisSearchCache {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	t.Cleanup(func() { _ = client.Close() })

	logger := zerolog.Nop()
	return NewRedisSearchCache(client, "search_cache:", time.Minute, &logger)
}

func TestKey_CaseFolded(t *testing.T) {
	c := newUnreachableCache(t)

	if got := c.Key(3, "Library Hours"); got != "search_cache:hits:3:library hours" {
		t.Errorf("Key: %q, want %q", got, "search_cache:hits:3:library hours")
	}
	if c.Key(0, "GYM") != c.Key(0, "gym") {
		t.Error("Expected queries differing only in case to share a key")
	}
	if c.Key(0, "gym") == c.Key(1, "gym") {
		t.Error("Expected generations to use distinct keys")
	}
}

func TestUnreachableRedis_DegradesToMiss(t *testing.T) {
	c := newUnreachableCache(t)
	ctx := context.Background()

	hits := records.NewHits()
	hits.Facilities = []records.Facility{{ID: 1, Name: "Gym"}}
	c.Set(ctx, 0, "gym", hits)

	_, generation, ok := c.Get(ctx, "gym")
	if ok {
		t.Error("Expected miss when Redis is unreachable")
	}
	if generation != -1 {
		t.Errorf("Expected unknown generation -1, got %d", generation)
	}
}

func TestUnreachableRedis_InvalidateReportsError(t *testing.T) {
	c := newUnreachableCache(t)

	if err := c.Invalidate(context.Background()); err == nil {
		t.Error("Expected error when Redis is unreachable")
	}
}
