package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "curaise:cart:"

// RedisRepository persists cart snapshots in Redis, one key per owner.
// Concurrent writers race with last-write-wins semantics, matching the
// single-record persistence model of the cart.
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRepository creates a Redis-backed snapshot repository. A zero ttl
// keeps snapshots until explicitly cleared.
func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, ttl: ttl}
}

// Load returns the owner's snapshot, or an empty snapshot if the key is absent
func (r *RedisRepository) Load(ctx context.Context, ownerID string) (*Snapshot, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+ownerID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return NewSnapshot(), nil
		}
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	snap := NewSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("failed to decode cart snapshot: %w", err)
	}
	return snap, nil
}

// Save stores the owner's snapshot, replacing any previous one
func (r *RedisRepository) Save(ctx context.Context, ownerID string, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}

	if err := r.client.Set(ctx, redisKeyPrefix+ownerID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	return nil
}
