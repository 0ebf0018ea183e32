// Package cache stores rendered artifacts keyed by content hash.
//
// Rendering is deterministic, so an artifact is fully identified by the
// hash of the scene that produced it plus the output options. Backends:
//
//   - [FileCache]: one file per entry under a local directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP server and CI runners
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys are produced by a [Keyer]; wrap it in a [ScopedKeyer] to give each
// deployment its own namespace.
package cache

import (
	"context"
	"fmt"
	"time"
)

// TTLs for cached entries.
const (
	// ArtifactTTL keeps rendered images for a week. Entries never go stale
	// because the key changes with the scene, so the TTL only bounds disk use.
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry. Get reports a miss as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	DPI    float64 `json:"dpi,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<format>:<hash>" where the hash covers the
// scene hash and every option. The format stays readable so entries can be
// inspected by type.
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), sceneHash, opts)
}
