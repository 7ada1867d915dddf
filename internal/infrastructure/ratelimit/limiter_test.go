package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amica/backend/internal/infrastructure/config"
)

func TestProvideLimiter_DisabledWithoutRedis(t *testing.T) {
	limiter, cleanup, err := ProvideLimiter(&config.RateLimitConfig{})
	require.NoError(t, err)
	defer cleanup()
	assert.Nil(t, limiter)
}

func TestRedisLimiter_UnreachableRedisReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	limiter := NewRedisLimiter(client, 2)
	assert.Equal(t, 4, limiter.capacity)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := limiter.Allow(ctx, "1.2.3.4")
	assert.Error(t, err, "Redis 不可用时应返回错误，由中间件放行")
}

func TestNewRedisLimiter_DefaultQPS(t *testing.T) {
	limiter := NewRedisLimiter(nil, 0)
	assert.Equal(t, 10, limiter.capacity)
	assert.InDelta(t, 5.0, limiter.rate, 1e-9)
}
