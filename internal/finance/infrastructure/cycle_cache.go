package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sebuszqo/Expendas/internal/finance/domain"
	"github.com/sebuszqo/Expendas/internal/finance/recurrence"
)

// RedisCycleCache stores every cycle window under its own key with its own
// TTL. Keys carry the user's version counter; Invalidate bumps the counter and
// leaves the old keys to expire.
type RedisCycleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCycleCache(client *redis.Client, ttl time.Duration) *RedisCycleCache {
	return &RedisCycleCache{client: client, ttl: ttl}
}

func cycleVersionKey(userID string) string {
	return "cycle:" + userID + ":version"
}

func cycleKey(userID string, version int64, from time.Time, days int) string {
	return fmt.Sprintf("cycle:%s:v%d:%s:%d", userID, version, from.Format(recurrence.DateLayout), days)
}

// Version is 0 for a user whose cycle was never invalidated.
func (c *RedisCycleCache) Version(ctx context.Context, userID string) (int64, error) {
	version, err := c.client.Get(ctx, cycleVersionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

func (c *RedisCycleCache) Get(ctx context.Context, userID string, version int64, from time.Time, days int) ([]domain.CycleItem, bool, error) {
	raw, err := c.client.Get(ctx, cycleKey(userID, version, from, days)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var items []domain.CycleItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("decode cached cycle: %w", err)
	}
	return items, true, nil
}

func (c *RedisCycleCache) Set(ctx context.Context, userID string, version int64, from time.Time, days int, items []domain.CycleItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cycleKey(userID, version, from, days), raw, c.ttl).Err()
}

func (c *RedisCycleCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Incr(ctx, cycleVersionKey(userID)).Err()
}

// NoopCycleCache is used when no Redis address is configured.
type NoopCycleCache struct{}

func (NoopCycleCache) Version(context.Context, string) (int64, error) {
	return 0, nil
}

func (NoopCycleCache) Get(context.Context, string, int64, time.Time, int) ([]domain.CycleItem, bool, error) {
	return nil, false, nil
}

func (NoopCycleCache) Set(context.Context, string, int64, time.Time, int, []domain.CycleItem) error {
	return nil
}

func (NoopCycleCache) Invalidate(context.Context, string) error {
	return nil
}
