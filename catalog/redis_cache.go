package catalog

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisCache implements Cache on a shared Redis instance so several replicas
// can share one memo table. Tag membership lives in a Redis set per tag;
// member keys may outlive their values, which Invalidate tolerates.
type RedisCache struct {
	rdb    *redis.Client
	logger zerolog.Logger
}

func NewRedisCache(rdb *redis.Client, logger zerolog.Logger) *RedisCache {
	return &RedisCache{rdb: rdb, logger: logger}
}

// NewRedisClient builds a client from an address. Password and DB selection
// follow the usual redis URL-less deployment where only the address varies.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			// Redis being down degrades to cache misses, never to failures.
			c.logger.Warn().Err(err).Str("key", key).Msg("redis get failed, treating as miss")
		}
		return nil, false
	}
	return value, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) {
	if ttl <= 0 {
		return
	}

	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("redis set failed")
		return
	}
	for _, tag := range tags {
		tagKey := "cachetag:" + tag
		if err := c.rdb.SAdd(ctx, tagKey, key).Err(); err != nil {
			c.logger.Warn().Err(err).Str("tag", tag).Msg("redis tag registration failed")
		}
		// Keep the tag set from outliving its entries forever.
		c.rdb.Expire(ctx, tagKey, 24*time.Hour)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, tags ...string) {
	for _, tag := range tags {
		tagKey := "cachetag:" + tag
		keys, err := c.rdb.SMembers(ctx, tagKey).Result()
		if err != nil {
			c.logger.Warn().Err(err).Str("tag", tag).Msg("redis tag lookup failed during invalidation")
			continue
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				c.logger.Warn().Err(err).Str("tag", tag).Msg("redis invalidation failed")
			}
		}
		c.rdb.Del(ctx, tagKey)
	}
}
