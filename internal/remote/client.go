// Package remote talks to the S3-compatible object store holding cloud
// copies of plate photos. Callers never see bucket layout or wire errors;
// they get opaque storage keys and one of the sentinel error classes below.
package remote

import (
	"context"
	"errors"
)

var (
	// ErrTransient covers conditions worth retrying: network failures,
	// timeouts, 5xx responses, slow-down throttling.
	ErrTransient = errors.New("transient storage error")

	// ErrAuthRequired means the credentials were rejected. Retrying cannot
	// help until the user fixes them.
	ErrAuthRequired = errors.New("storage authentication required")

	// ErrQuotaExceeded means the store refused the write for capacity
	// reasons.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrUnavailable is every other non-retryable failure, including calls
	// rejected locally because the availability gate is closed.
	ErrUnavailable = errors.New("storage unavailable")
)

// Client is the remote tier as the persistence coordinator sees it.
//
// Upload stores data under a fresh opaque key and returns it; name is the
// original filename, kept as object metadata only. Download returns the
// object bytes for a key obtained from Upload. Delete is idempotent.
// Probe checks reachability and reopens the availability gate on success.
type Client interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Probe(ctx context.Context) error
}
