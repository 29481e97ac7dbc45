// Package cache stores rendered artifacts so repeated renders of an
// unchanged family table are served from disk instead of invoking the
// layout engine again. Keys are derived from a hash of the normalized
// records plus every option that affects the output.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface for rendered artifacts.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value with a time-to-live; ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any resources held by the backend.
	Close() error
}

// ArtifactKeyOpts are the render parameters that distinguish artifacts
// built from the same input table.
type ArtifactKeyOpts struct {
	RootID int
	Format string
	Title  string
	Legend bool
	Colors [3]string // male, female, spouse edge
}

// ArtifactKey builds the cache key for a rendered artifact from the
// hash of the input records and the render options.
func ArtifactKey(tableHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", tableHash, opts)
}
