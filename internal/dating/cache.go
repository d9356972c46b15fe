// internal/dating/cache.go
// Per-user discover feed cache

package dating

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// PicksCache stores ranked discover feeds per user
type PicksCache interface {
	Get(ctx context.Context, userID string) ([]*ScoredCandidate, bool, error)
	Set(ctx context.Context, userID string, picks []*ScoredCandidate, ttl time.Duration) error
	Invalidate(ctx context.Context, userIDs ...string) error
}

const picksKeyPrefix = "dating:picks:"

func picksKey(userID string) string {
	return picksKeyPrefix + userID
}

type redisPicksCache struct {
	client *redis.Client
}

// NewRedisPicksCache creates a cache backed by Redis
func NewRedisPicksCache(client *redis.Client) PicksCache {
	return &redisPicksCache{client: client}
}

func (c *redisPicksCache) Get(ctx context.Context, userID string) ([]*ScoredCandidate, bool, error) {
	data, err := c.client.Get(ctx, picksKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read picks: %w", err)
	}

	var picks []*ScoredCandidate
	if err := json.Unmarshal(data, &picks); err != nil {
		return nil, false, fmt.Errorf("failed to decode picks: %w", err)
	}
	return picks, true, nil
}

func (c *redisPicksCache) Set(ctx context.Context, userID string, picks []*ScoredCandidate, ttl time.Duration) error {
	data, err := json.Marshal(picks)
	if err != nil {
		return fmt.Errorf("failed to encode picks: %w", err)
	}
	if err := c.client.Set(ctx, picksKey(userID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write picks: %w", err)
	}
	return nil
}

func (c *redisPicksCache) Invalidate(ctx context.Context, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = picksKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate picks: %w", err)
	}
	return nil
}

// noopPicksCache is used when Redis is not configured
type noopPicksCache struct{}

// NewNoopPicksCache returns a cache that never hits
func NewNoopPicksCache() PicksCache {
	return noopPicksCache{}
}

func (noopPicksCache) Get(context.Context, string) ([]*ScoredCandidate, bool, error) {
	return nil, false, nil
}

func (noopPicksCache) Set(context.Context, string, []*ScoredCandidate, time.Duration) error {
	return nil
}

func (noopPicksCache) Invalidate(context.Context, ...string) error {
	return nil
}
