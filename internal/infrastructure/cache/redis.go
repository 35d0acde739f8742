package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/festify/festify-web/pkg/helpers"
)

// Redis is a Cache backed by a Redis keyspace under prefix.
type Redis struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

var _ Cache = (*Redis)(nil)

func NewRedis(rdb *redis.Client, prefix string, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if prefix == "" {
		prefix = "festify:cache:"
	}
	return &Redis{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (r *Redis) key(k string) string { return r.prefix + k }

func (r *Redis) Get(ctx context.Context, key string, dest any) (bool, error) {
	return helpers.RedisGetJSON(ctx, r.rdb, r.key(key), dest)
}

func (r *Redis) Set(ctx context.Context, key string, value any) error {
	return r.SetTTL(ctx, key, value, r.ttl)
}

func (r *Redis) SetTTL(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.ttl
	}
	return helpers.RedisSetJSON(ctx, r.rdb, r.key(key), value, ttl)
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return helpers.RedisDel(ctx, r.rdb, r.key(key))
}

// Clear removes every key under the prefix.
func (r *Redis) Clear(ctx context.Context) error {
	_, err := helpers.RedisDelPrefix(ctx, r.rdb, r.prefix)
	return err
}
