package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/amica/backend/internal/infrastructure/config"
)

// tokenBucketScript 令牌桶脚本，保证读改写原子性
// 返回 {allowed, remaining, retry_after_seconds}
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])

local bucket = redis.call('HMGET', key, 'tokens', 'updated_at')
local tokens = tonumber(bucket[1])
local updated_at = tonumber(bucket[2])

if tokens == nil or updated_at == nil then
    tokens = capacity
    updated_at = now
end

local elapsed = math.max(0, now - updated_at)
tokens = math.min(capacity, tokens + elapsed * rate)

local allowed = 0
local retry_after = 0
if tokens >= requested then
    tokens = tokens - requested
    allowed = 1
else
    retry_after = (requested - tokens) / rate
end

redis.call('HSET', key, 'tokens', tokens, 'updated_at', now)
redis.call('EXPIRE', key, 86400)

return {allowed, math.floor(tokens), math.ceil(retry_after)}
`)

// Decision 限流判定结果
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter 按 key 限流
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// RedisLimiter 基于 Redis 的令牌桶，容量为 2*QPS
type RedisLimiter struct {
	client   redis.Scripter
	capacity int
	rate     float64
	now      func() time.Time
}

// NewRedisLimiter 创建限流器
func NewRedisLimiter(client redis.Scripter, qps int) *RedisLimiter {
	if qps <= 0 {
		qps = 5
	}
	return &RedisLimiter{
		client:   client,
		capacity: 2 * qps,
		rate:     float64(qps),
		now:      time.Now,
	}
}

// Allow 消耗一个令牌
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := float64(l.now().UnixNano()) / 1e9
	result, err := tokenBucketScript.Run(ctx, l.client,
		[]string{"amica:rate_limit:" + key},
		l.capacity, l.rate, now, 1,
	).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit script failed: %w", err)
	}
	if len(result) < 3 {
		return Decision{}, fmt.Errorf("unexpected rate limit result: %v", result)
	}

	return Decision{
		Allowed:    result[0] == 1,
		Limit:      l.capacity,
		Remaining:  int(result[1]),
		RetryAfter: time.Duration(result[2]) * time.Second,
	}, nil
}

// ProvideLimiter 根据配置创建限流器；未配置 Redis 时返回 nil
func ProvideLimiter(cfg *config.RateLimitConfig) (Limiter, func(), error) {
	if cfg.RedisAddr == "" {
		return nil, func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		DialTimeout: 2 * time.Second,
		ReadTimeout: time.Second,
	})
	cleanup := func() {
		_ = client.Close()
	}
	return NewRedisLimiter(client, cfg.QPS), cleanup, nil
}
