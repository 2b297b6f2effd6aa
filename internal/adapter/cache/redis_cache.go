package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"orderintake/internal/usecase"
)

// RedisStatusCache keeps the latest known order status for cheap reads.
// Best-effort only: the MySQL row stays authoritative.
type RedisStatusCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStatusCache(rdb *redis.Client, ttl time.Duration) *RedisStatusCache {
	return &RedisStatusCache{rdb: rdb, ttl: ttl}
}

func (r *RedisStatusCache) SetStatus(ctx context.Context, orderID, status string) error {
	return r.rdb.Set(ctx, "order:status:"+orderID, status, r.ttl).Err()
}

func (r *RedisStatusCache) GetStatus(ctx context.Context, orderID string) (string, error) {
	val, err := r.rdb.Get(ctx, "order:status:"+orderID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

var _ usecase.StatusCache = (*RedisStatusCache)(nil)
