package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// takeScript performs refill + check-and-decrement server-side so the step is
// atomic across processes sharing the store. Times are in milliseconds.
const takeScript = `
local tokens
local last
local state = redis.call('HMGET', KEYS[1], 'tokens', 'last')
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

if state[1] then
  tokens = tonumber(state[1])
  last = tonumber(state[2])
else
  tokens = limit
  last = now
end

local elapsed = now - last
if elapsed > 0 then
  tokens = math.min(limit, tokens + elapsed / window * limit)
  last = now
end

local limited = 0
local reset = 0
if tokens < 1 then
  limited = 1
  reset = now + window - elapsed
else
  tokens = tokens - 1
end

redis.call('HMSET', KEYS[1], 'tokens', tokens, 'last', last)
redis.call('PEXPIRE', KEYS[1], window * 3)

return {limited, math.floor(tokens), reset}
`

// RedisStore keeps bucket state in Redis, for deployments where several
// engine instances must share one set of limits.
type RedisStore struct {
	client *redis.Client
	prefix string
	script *redis.Script
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "ratelimit:",
		script: redis.NewScript(takeScript),
	}
}

func (s *RedisStore) Take(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	now := time.Now()

	raw, err := s.script.Run(ctx, s.client, []string{s.prefix + key},
		limit, window.Milliseconds(), now.UnixMilli()).Result()
	if err != nil {
		return Result{}, fmt.Errorf("rate limit script failed: %w", err)
	}

	reply, ok := raw.([]interface{})
	if !ok || len(reply) != 3 {
		return Result{}, fmt.Errorf("unexpected rate limit script reply: %v", raw)
	}

	limited, _ := reply[0].(int64)
	remaining, _ := reply[1].(int64)
	resetMillis, _ := reply[2].(int64)

	res := Result{
		Limited:   limited == 1,
		Remaining: int(remaining),
	}
	if res.Limited {
		res.ResetAt = time.UnixMilli(resetMillis)
	}

	return res, nil
}
