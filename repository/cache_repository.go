package repository

import (
	"context"
	"time"
)

// CacheRepository stores generated narratives keyed by a hash of the deal.
// A miss is reported as ("", false, nil); err is reserved for backend failures.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
