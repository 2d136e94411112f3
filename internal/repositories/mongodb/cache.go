package mongodb

import (
	"context"
	"time"
)

// CacheService is the slice of the cache the repositories need. It is
// satisfied by pkg/cache.RedisCache. Cache failures are never allowed
// to fail a repository call; the database stays authoritative.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
}
