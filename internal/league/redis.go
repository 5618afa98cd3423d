package league

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SnapshotKey is the fixed redis key holding the leaderboard snapshot.
const SnapshotKey = "olybars:leaderboard:snapshot"

// RedisSnapshotStore keeps the leaderboard snapshot as a single JSON value
// under a fixed key. SET is a full replace, which gives the last-writer-wins
// behavior the aggregator expects for free.
type RedisSnapshotStore struct {
	client *redis.Client
}

// NewRedisSnapshotStore creates a snapshot store on the given redis client.
func NewRedisSnapshotStore(client *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client}
}

// Write implements SnapshotStore.
func (s *RedisSnapshotStore) Write(ctx context.Context, snap *Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	// No TTL: a stale snapshot is better than none when the rebuild job
	// is down.
	if err := s.client.Set(ctx, SnapshotKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Read implements SnapshotStore.
func (s *RedisSnapshotStore) Read(ctx context.Context) (*Snapshot, error) {
	payload, err := s.client.Get(ctx, SnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
