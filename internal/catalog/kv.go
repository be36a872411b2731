package catalog

import (
	"context"
)

// KV is the durable key-value surface the catalog is built on. Get returns
// (nil, nil) when the key does not exist so callers can distinguish absence
// from storage failure without a sentinel.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
