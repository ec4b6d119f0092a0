// Package cache keeps availability listings in Redis. Entries are keyed by a
// per-user version that every mutation bumps, so stale lists are never read.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"wellvantage/fitness-app/internal/config"
	"wellvantage/fitness-app/internal/domain"
)

// NewRedisClient creates a Redis client from the configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// AvailabilityCache caches availability lists per user and date range.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

func versionKey(userID string) string {
	return fmt.Sprintf("availability_version:%s", userID)
}

func (c *AvailabilityCache) listKey(ctx context.Context, userID, startDate, endDate string) (string, error) {
	version, err := c.client.Get(ctx, versionKey(userID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("failed to read cache version: %w", err)
	}
	return fmt.Sprintf("availability:%s:v%d:%s:%s", userID, version, startDate, endDate), nil
}

// Get returns the cached list and whether it was found.
func (c *AvailabilityCache) Get(ctx context.Context, userID, startDate, endDate string) ([]domain.Availability, bool, error) {
	key, err := c.listKey(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, false, err
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get availability from redis: %w", err)
	}

	var items []domain.Availability
	if err := json.Unmarshal(val, &items); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal availability: %w", err)
	}
	return items, true, nil
}

// Set stores a list under the user's current version.
func (c *AvailabilityCache) Set(ctx context.Context, userID, startDate, endDate string, items []domain.Availability) error {
	key, err := c.listKey(ctx, userID, startDate, endDate)
	if err != nil {
		return err
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal availability: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set availability in redis: %w", err)
	}
	return nil
}

// Invalidate drops every cached list of the user. Old entries expire by TTL.
func (c *AvailabilityCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Incr(ctx, versionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to bump cache version: %w", err)
	}
	return nil
}
