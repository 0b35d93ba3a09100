package port

import (
	"context"
	"time"
)

// ResponseCache stores serialized aggregator results.
// Get reports false on a miss; dst must be a pointer.
type ResponseCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}
