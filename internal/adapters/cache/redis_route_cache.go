package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"quantaroute-demo/internal/platform/obs"
)

const keyPrefix = "route:"

// RedisRouteCache stores raw backend responses with a fixed TTL.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisRouteCache{client: client, ttl: ttl}
}

// OpenRedis returns nil when no address is configured.
func OpenRedis(addr, pass string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}

// Key derives the cache key for a backend call from its endpoint and the
// exact JSON body sent.
func Key(endpoint string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(endpoint))
	h.Write([]byte{0})
	h.Write(body)
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (c *RedisRouteCache) Get(ctx context.Context, endpoint string, request []byte) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	key := Key(endpoint, request)
	if c.client == nil {
		return nil, false, errors.New("route cache: redis client is nil")
	}
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("route cache get %s: %w", key, err)
	}
	return b, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, endpoint string, request, body []byte) (err error) {
	defer obs.Time(ctx, "route.cache.Put")(&err)

	key := Key(endpoint, request)
	if c.client == nil {
		return errors.New("route cache: redis client is nil")
	}
	if err := c.client.Set(ctx, key, body, c.ttl).Err(); err != nil {
		return fmt.Errorf("route cache put %s: %w", key, err)
	}
	return nil
}
