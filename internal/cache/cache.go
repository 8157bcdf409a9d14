// Package cache keeps per-user dashboard summaries in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/debt-tracker/internal/config"
	"github.com/segyhp/debt-tracker/internal/domain"
	customError "github.com/segyhp/debt-tracker/pkg/errors"

	"github.com/redis/go-redis/v9"
)

// SummaryCache stores dashboard summaries. A miss is (nil, false, nil).
type SummaryCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.DashboardSummary, bool, error)
	Set(ctx context.Context, userID uuid.UUID, summary *domain.DashboardSummary) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// NewClient builds a Redis client, preferring REDIS_URL when set.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("cache: parse redis url: %w", err)
		}
		return redis.NewClient(opts), nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), nil
}

// SummaryKey is the Redis key holding a user's dashboard summary.
func SummaryKey(userID uuid.UUID) string {
	return "dashboard:summary:" + userID.String()
}

type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSummaryCache(client *redis.Client, ttl time.Duration) SummaryCache {
	return &redisSummaryCache{client: client, ttl: ttl}
}

func (c *redisSummaryCache) Get(ctx context.Context, userID uuid.UUID) (*domain.DashboardSummary, bool, error) {
	raw, err := c.client.Get(ctx, SummaryKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, customError.WrapCacheError(err)
	}

	var summary domain.DashboardSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, false, customError.WrapCacheError(err)
	}
	return &summary, true, nil
}

func (c *redisSummaryCache) Set(ctx context.Context, userID uuid.UUID, summary *domain.DashboardSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return customError.WrapCacheError(err)
	}
	if err := c.client.Set(ctx, SummaryKey(userID), raw, c.ttl).Err(); err != nil {
		return customError.WrapCacheError(err)
	}
	return nil
}

func (c *redisSummaryCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, SummaryKey(userID)).Err(); err != nil {
		return customError.WrapCacheError(err)
	}
	return nil
}

type nopSummaryCache struct{}

// NewNopSummaryCache returns a cache that never hits, used when caching is off.
func NewNopSummaryCache() SummaryCache {
	return nopSummaryCache{}
}

func (nopSummaryCache) Get(context.Context, uuid.UUID) (*domain.DashboardSummary, bool, error) {
	return nil, false, nil
}

func (nopSummaryCache) Set(context.Context, uuid.UUID, *domain.DashboardSummary) error {
	return nil
}

func (nopSummaryCache) Invalidate(context.Context, uuid.UUID) error {
	return nil
}
