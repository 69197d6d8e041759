package cache

import (
	"context"
	"time"
)

// Cache interface định nghĩa contract cho cache layer
// Implementation: Redis (infrastructure/cache); cache tắt thì repository không được bọc
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found = false on a miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value (JSON encoded) with a TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the connection
	Ping(ctx context.Context) error
}
