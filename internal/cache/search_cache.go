package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/campus-agent/internal/records"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisSearchCache keeps search hits in Redis under prefix+generation+lower(query).
// Invalidate bumps the generation, so a write computed before an invalidation
// lands under a key no reader will ask for again.
type RedisSearchCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewRedisSearchCache(client redis.UniversalClient, prefix string, ttl time.Duration, logger *zerolog.Logger) *RedisSearchCache {
	return &RedisSearchCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

// Key is case-folded because matching is case-insensitive.
func (c *RedisSearchCache) Key(generation int64, query string) string {
	return fmt.Sprintf("%shits:%d:%s", c.prefix, generation, strings.ToLower(query))
}

func (c *RedisSearchCache) generationKey() string {
	return c.prefix + "generation"
}

// Get returns the cached hits and the generation they were looked up under.
// The generation is -1 when it could not be read; Set ignores such writes.
func (c *RedisSearchCache) Get(ctx context.Context, query string) (records.Hits, int64, bool) {
	generation, err := c.client.Get(ctx, c.generationKey()).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("query", query).Msg("Search cache generation read failed")
			return records.Hits{}, -1, false
		}
		generation = 0
	}

	data, err := c.client.Get(ctx, c.Key(generation, query)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("query", query).Msg("Search cache read failed")
		}
		return records.Hits{}, generation, false
	}

	var hits records.Hits
	if err := json.Unmarshal(data, &hits); err != nil {
		c.logger.Warn().Err(err).Str("query", query).Msg("Discarding undecodable cache entry")
		return records.Hits{}, generation, false
	}

	return hits, generation, true
}

func (c *RedisSearchCache) Set(ctx context.Context, generation int64, query string, hits records.Hits) {
	if generation < 0 {
		return
	}

	data, err := json.Marshal(hits)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Unable to encode search hits")
		return
	}

	if err := c.client.Set(ctx, c.Key(generation, query), data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("query", query).Msg("Search cache write failed")
	}
}

// Invalidate starts a new generation and drops the entries of earlier ones.
func (c *RedisSearchCache) Invalidate(ctx context.Context) error {
	generation, err := c.client.Incr(ctx, c.generationKey()).Result()
	if err != nil {
		return fmt.Errorf("unable to bump search cache generation: %w", err)
	}

	current := fmt.Sprintf("%shits:%d:", c.prefix, generation)
	var cursor uint64
	deleted := 0
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"hits:*", 100).Result()
		if err != nil {
			return fmt.Errorf("unable to scan search cache: %w", err)
		}

		stale := keys[:0]
		for _, key := range keys {
			if !strings.HasPrefix(key, current) {
				stale = append(stale, key)
			}
		}

		if len(stale) > 0 {
			if err := c.client.Del(ctx, stale...).Err(); err != nil {
				return fmt.Errorf("unable to clear search cache: %w", err)
			}
			deleted += len(stale)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	c.logger.Info().Int64("generation", generation).Int("deleted", deleted).Msg("Search cache cleared")
	return nil
}
