package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimitStore implements RateLimitStore using a fixed window counter
// in Redis (INCR + EXPIRE on first hit). Shared across API instances, so the
// limit holds under horizontal scaling.
//
// Fail-open: if Redis is unavailable the request is allowed and the error
// counter incremented. A broken limiter must not take down the API.
type RedisRateLimitStore struct {
	client  *redis.Client
	metrics *Metrics
}

// NewRedisRateLimitStore creates a redis-backed rate limit store.
// metrics may be nil to disable fail-open instrumentation.
func NewRedisRateLimitStore(client *redis.Client, metrics *Metrics) *RedisRateLimitStore {
	return &RedisRateLimitStore{
		client:  client,
		metrics: metrics,
	}
}

// Allow implements the RateLimitStore interface.
func (s *RedisRateLimitStore) Allow(ctx context.Context, key string, config RateLimitConfig) (bool, int) {
	redisKey := "ratelimit:" + key

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncRateLimitStoreErrors()
		}
		return true, 0
	}

	if count == 1 {
		// First hit in this window: start the clock.
		if err := s.client.Expire(ctx, redisKey, config.WindowDuration).Err(); err != nil && s.metrics != nil {
			s.metrics.IncRateLimitStoreErrors()
		}
	}

	if count <= int64(config.RequestsPerWindow) {
		return true, 0
	}

	ttl, err := s.client.TTL(ctx, redisKey).Result()
	if err != nil || ttl <= 0 {
		return false, int(config.WindowDuration / time.Second)
	}
	return false, int(ttl / time.Second)
}
