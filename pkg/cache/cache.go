// Package cache stores rendered diagrams between runs.
//
// Layout and rasterization are the only expensive step of a run, and they
// are a pure function of the diagram spec and output format. Caching the
// encoded artifact under a hash of both lets repeated runs against an
// unchanged plan skip Graphviz entirely.
//
// Two implementations are provided:
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [NullCache]: never stores anything, for --no-cache and tests
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/planviz/pkg/buildinfo"
)

// DefaultTTL is how long rendered artifacts stay valid.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored data and whether the key was found.
	// Expired or unreadable entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// ArtifactKey derives the cache key for a rendered artifact.
// spec must be JSON-serializable; the build version is mixed in so a new
// release never serves images drawn by an older renderer.
func ArtifactKey(format string, spec any) string {
	return hashKey("artifact", buildinfo.Version, format, spec)
}
