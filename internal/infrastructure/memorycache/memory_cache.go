package memorycache

import (
	"context"
	"fmt"
	"time"

	"nft_aggregator/internal/app/port"

	jsoniter "github.com/json-iterator/go"
	"github.com/patrickmn/go-cache"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// memoryCache keeps encoded values in process so callers never share mutable maps or slices.
type memoryCache struct {
	store *cache.Cache
}

// New creates an in-process port.ResponseCache.
func New(defaultTTL, cleanupInterval time.Duration) port.ResponseCache {
	return &memoryCache{store: cache.New(defaultTTL, cleanupInterval)}
}

// Get implements port.ResponseCache.
func (c *memoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	raw, ok := c.store.Get(key)
	if !ok {
		return false, nil
	}
	payload, ok := raw.([]byte)
	if !ok {
		c.store.Delete(key)
		return false, fmt.Errorf("unexpected cached value type %T for key %s", raw, key)
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return false, fmt.Errorf("failed to decode cached value for key %s: %w", key, err)
	}
	return true, nil
}

// Set implements port.ResponseCache. A non-positive ttl uses the cache default.
func (c *memoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %s: %w", key, err)
	}
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	c.store.Set(key, payload, ttl)
	return nil
}
