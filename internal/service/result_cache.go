package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"tnved-api/internal/domain"
)

// ResultCache stores classification results keyed by the composed
// product name. Classification runs at temperature 0, so a repeated
// description can reuse the previous answer and skip the provider
// round trip.
type ResultCache interface {
	Get(ctx context.Context, fullName string) (domain.ClassificationResult, bool, error)
	Set(ctx context.Context, fullName string, res domain.ClassificationResult) error
}

// NoopResultCache is used when Redis is not configured.
type NoopResultCache struct{}

func (NoopResultCache) Get(context.Context, string) (domain.ClassificationResult, bool, error) {
	return domain.ClassificationResult{}, false, nil
}

func (NoopResultCache) Set(context.Context, string, domain.ClassificationResult) error {
	return nil
}

// RedisResultCache implements ResultCache on Redis with a TTL.
type RedisResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisResultCache(client *redis.Client, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{client: client, ttl: ttl}
}

func cacheKey(fullName string) string {
	sum := sha256.Sum256([]byte(fullName))
	return "tnved:detect:" + hex.EncodeToString(sum[:])
}

func (c *RedisResultCache) Get(ctx context.Context, fullName string) (domain.ClassificationResult, bool, error) {
	val, err := c.client.Get(ctx, cacheKey(fullName)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.ClassificationResult{}, false, nil
	}
	if err != nil {
		return domain.ClassificationResult{}, false, err
	}

	var res domain.ClassificationResult
	if err := json.Unmarshal([]byte(val), &res); err != nil {
		// A stale or hand-edited entry is a miss, not an error.
		return domain.ClassificationResult{}, false, nil
	}
	return res, true, nil
}

func (c *RedisResultCache) Set(ctx context.Context, fullName string, res domain.ClassificationResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(fullName), payload, c.ttl).Err()
}
