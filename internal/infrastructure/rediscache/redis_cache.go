package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nft_aggregator/internal/app/port"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Options holds the connection settings of the shared cache.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient opens a redis client and checks the connection.
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}
	return rdb, nil
}

// redisCache shares cached responses between service replicas.
type redisCache struct {
	rdb    redis.Cmdable
	prefix string
}

// New creates a port.ResponseCache on top of rdb. Every key is stored under prefix.
func New(rdb redis.Cmdable, prefix string) port.ResponseCache {
	return &redisCache{rdb: rdb, prefix: prefix}
}

// Get implements port.ResponseCache.
func (c *redisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	payload, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis GET %s: %w", c.prefix+key, err)
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return false, fmt.Errorf("failed to decode cached value for key %s: %w", c.prefix+key, err)
	}
	return true, nil
}

// Set implements port.ResponseCache.
func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %s: %w", c.prefix+key, err)
	}
	if err := c.rdb.Set(ctx, c.prefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", c.prefix+key, err)
	}
	return nil
}
