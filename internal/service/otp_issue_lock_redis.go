package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisUnlockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

const (
	defaultIssueLockTTL   = 5 * time.Second
	defaultIssueLockRetry = 50 * time.Millisecond
)

type redisLockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisIssueLocker serializa la emision entre replicas con SET NX PX.
// El lease evita que un proceso caido retenga la clave.
type RedisIssueLocker struct {
	client redisLockClient
	ttl    time.Duration
	retry  time.Duration
	prefix string
}

func NewRedisIssueLocker(client *redis.Client, ttl time.Duration) *RedisIssueLocker {
	if ttl <= 0 {
		ttl = defaultIssueLockTTL
	}
	return &RedisIssueLocker{
		client: client,
		ttl:    ttl,
		retry:  defaultIssueLockRetry,
		prefix: "otp:issue:",
	}
}

func (l *RedisIssueLocker) Lock(ctx context.Context, key string) (func(), error) {
	if l == nil || l.client == nil {
		return nil, errors.New("redis issue locker not configured")
	}
	redisKey := l.prefix + key
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}

		timer := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()
		_ = l.client.Eval(releaseCtx, redisUnlockScript, []string{redisKey}, token).Err()
	}, nil
}
