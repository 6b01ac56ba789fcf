// Package cache stores upstream responses and pipeline results.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for API servers that share a cache, and [NullCache] when caching is
// disabled. Keys are derived by a [Keyer] so every backend agrees on them.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss with ok=false and a nil error; expired entries are
// misses. A ttl of 0 passed to Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// HTTPKey is the key for a raw upstream HTTP response.
	HTTPKey(namespace, key string) string

	// RelationsKey is the key for the triplets extracted from a model
	// response.
	RelationsKey(text string, opts RelationsKeyOpts) string

	// LayoutKey is the key for a laid-out graph document.
	LayoutKey(tripletsHash string, opts LayoutKeyOpts) string
}

// RelationsKeyOpts holds the settings that change extraction output.
type RelationsKeyOpts struct {
	Model     string `json:"model,omitempty"`
	ItemBreak string `json:"item_break,omitempty"`
	Connector string `json:"connector,omitempty"`
}

// LayoutKeyOpts holds the settings that change layout output.
type LayoutKeyOpts struct {
	Engine  string  `json:"engine"`
	RankDir string  `json:"rank_dir"`
	RankSep float64 `json:"rank_sep"`
	NodeSep float64 `json:"node_sep"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns "http:<namespace>:<key>". Keys stay readable so a
// Redis operator can see what is cached.
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

func (DefaultKeyer) RelationsKey(text string, opts RelationsKeyOpts) string {
	return hashKey("relations", Hash([]byte(text)), opts)
}

func (DefaultKeyer) LayoutKey(tripletsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", tripletsHash, opts)
}

// Entry lifetimes per key type.
const (
	TTLHTTP      = 24 * time.Hour
	TTLRelations = 7 * 24 * time.Hour
	TTLLayout    = 7 * 24 * time.Hour
)

// NullCache misses on every Get and drops every Set. It backs --no-cache
// and is the fallback when no backend is configured.
type NullCache struct{}

// NewNullCache returns a [NullCache].
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Close() error { return nil }
