package cache

import (
	"context"
	"encoding/json"
	"time"

	"cinema-tickets/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is a thin JSON cache over Redis. A nil *Cache (or a cache built
// from an unreachable Redis) is safe to use: every operation degrades to
// a miss so the application keeps working without Redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// InitCache connects to Redis. On connection failure it returns nil and
// callers run uncached.
func InitCache(config utils.RedisConfig, log *zap.Logger) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, caching disabled", zap.Error(err), zap.String("addr", config.Addr))
		return nil
	}

	return &Cache{
		client: client,
		ttl:    time.Duration(config.CacheTTL) * time.Second,
		log:    log.With(zap.String("component", "cache")),
	}
}

// Get unmarshals the cached value into dest. Returns false on a miss or
// any Redis/decode failure.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Cache get failed", zap.Error(err), zap.String("key", key))
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("Cache decode failed", zap.Error(err), zap.String("key", key))
		return false
	}

	return true
}

// Set stores value as JSON under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("Cache encode failed", zap.Error(err), zap.String("key", key))
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Cache set failed", zap.Error(err), zap.String("key", key))
	}
}

// Delete removes keys, used to invalidate after admin catalog writes.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("Cache delete failed", zap.Error(err), zap.Strings("keys", keys))
	}
}

// Close releases the underlying client.
func (c *Cache) Close() {
	if c != nil {
		c.client.Close()
	}
}
