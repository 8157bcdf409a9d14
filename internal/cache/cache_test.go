package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/segyhp/debt-tracker/internal/config"
	"github.com/segyhp/debt-tracker/internal/domain"
	customError "github.com/segyhp/debt-tracker/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryKey(t *testing.T) {
	id := uuid.MustParse("6f1c2d3e-0000-4000-8000-000000000001")
	assert.Equal(t, "dashboard:summary:6f1c2d3e-0000-4000-8000-000000000001", SummaryKey(id))
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(config.RedisConfig{URL: "redis://:pw@cache:6380/2"})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", client.Options().Addr)
	assert.Equal(t, "pw", client.Options().Password)
	assert.Equal(t, 2, client.Options().DB)

	client, err = NewClient(config.RedisConfig{Host: "localhost", Port: "6379", DB: 1})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", client.Options().Addr)
	assert.Equal(t, 1, client.Options().DB)

	_, err = NewClient(config.RedisConfig{URL: "http://nope"})
	assert.Error(t, err)
}

func TestNopSummaryCache(t *testing.T) {
	c := NewNopSummaryCache()
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, c.Set(ctx, id, &domain.DashboardSummary{TotalDebts: 3}))
	summary, ok, err := c.Get(ctx, id)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, summary)
	assert.NoError(t, c.Invalidate(ctx, id))
}

func TestRedisSummaryCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewRedisSummaryCache(client, time.Minute)
	ctx := context.Background()
	id := uuid.New()

	_, ok, err := c.Get(ctx, id)
	assert.False(t, ok)
	assert.Equal(t, customError.ErrCodeCacheError, customError.Code(err))

	err = c.Set(ctx, id, &domain.DashboardSummary{})
	assert.Equal(t, customError.ErrCodeCacheError, customError.Code(err))

	err = c.Invalidate(ctx, id)
	assert.Equal(t, customError.ErrCodeCacheError, customError.Code(err))
}
