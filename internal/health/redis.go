package health

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisChecker verifies the Redis connection used for the leaderboard
// snapshot and the shared rate-limit counters.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// HealthCheck sends a PING within the caller's deadline.
func (r *RedisChecker) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
