// Package cache stores rendered artifacts between modgraph runs.
//
// Graphviz rendering dominates the cost of an SVG export, so the CLI keys
// rendered bytes by a hash of the DOT source and reuses them while the
// registry document is unchanged. Mermaid and DOT text are never cached;
// producing them is cheaper than a cache lookup.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
type Cache interface {
	// Get returns the data stored under key and whether it was found.
	// Expired or corrupt entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// ArtifactKey builds the cache key of a rendered artifact from the source
// it was rendered from and the output format, e.g. "artifact:svg:<sha256>".
func ArtifactKey(format string, source []byte) string {
	return fmt.Sprintf("artifact:%s:%s", format, Hash(source))
}
