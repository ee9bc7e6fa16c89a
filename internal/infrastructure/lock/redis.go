package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const redisKeyPrefix = "skaterstore:lock:"

// deletes the key only when it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
end
return 0
`)

// pushes the expiry forward only while the key still holds our token
var extendScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("pexpire", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLocker implements a token lock per key with SET NX PX. The TTL bounds how long
// a crashed holder can block a product; a live holder keeps extending it until unlock.
type RedisLocker struct {
	client       redis.UniversalClient
	ttl          time.Duration
	pollInterval time.Duration
	logger       *zap.Logger
}

func NewRedisLocker(client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisLocker{
		client:       client,
		ttl:          ttl,
		pollInterval: 20 * time.Millisecond,
		logger:       logger,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, keys []string) (func(), error) {
	keys = normalizeKeys(keys)
	token := uuid.NewString()
	held := make([]string, 0, len(keys))
	stops := make([]func(), 0, len(keys))

	unlock := func() {
		for _, stop := range stops {
			stop()
		}
		for i := len(held) - 1; i >= 0; i-- {
			if err := releaseScript.Run(context.Background(), l.client, []string{held[i]}, token).Err(); err != nil {
				l.logger.Warn("redis unlock failed", zap.String("key", held[i]), zap.Error(err))
			}
		}
	}

	for _, k := range keys {
		rk := redisKeyPrefix + k
		if err := l.acquire(ctx, rk, token); err != nil {
			unlock()
			return nil, err
		}
		held = append(held, rk)
		stops = append(stops, l.keepAlive(rk, token))
	}

	var once sync.Once
	return func() { once.Do(unlock) }, nil
}

// keepAlive extends the key every third of the TTL until the returned stop is called.
func (l *RedisLocker) keepAlive(key, token string) func() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(l.ttl / 3)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			n, err := extendScript.Run(ctx, l.client, []string{key}, token, l.ttl.Milliseconds()).Int()
			switch {
			case ctx.Err() != nil:
				return
			case err != nil:
				l.logger.Warn("redis lock extend failed", zap.String("key", key), zap.Error(err))
			case n == 0:
				// otro proceso ya tiene la llave
				l.logger.Error("redis lock lost", zap.String("key", key))
				return
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

func (l *RedisLocker) acquire(ctx context.Context, key, token string) error {
	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("redis lock %s: %w", key, err)
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
