package config

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Clock yields the current time as a monotonic millisecond timestamp,
// letting cache freshness be tested without a real wall clock.
type Clock interface {
	NowMillis() int64
}

// AgeAwareCache is a key-value store where every lookup carries its own
// staleness tolerance.
type AgeAwareCache[V any] interface {
	// Get returns the cached value for key if it is younger than
	// maxAgeMs, otherwise it invokes fallback, stores the result if
	// fallback reports ok, and returns what fallback returned.
	Get(key string, maxAgeMs int64, fallback func() (V, bool)) (V, bool)
}

type cacheEntry[V any] struct {
	value     V
	createdMs int64
}

// MaxAgeCache is a mutex-guarded map implementing AgeAwareCache. An entry
// is fresh iff `now < created + maxAge` — strict inequality, so
// `created + maxAge == now` forces a refresh. A fallback that reports
// ok=false is never stored, so a persistent miss never poisons the cache
// with a stale absence.
//
// Concurrent stale-entry lookups for the same key are collapsed through
// group so only one caller actually runs fallback; the rest block and
// share its result, rather than each racing off to re-resolve (and,
// for a deferred source, re-fetch) the same key independently.
type MaxAgeCache[V any] struct {
	clock Clock

	mu      sync.Mutex
	entries map[string]cacheEntry[V]
	group   singleflight.Group
}

// NewMaxAgeCache returns an empty cache using clock for freshness checks.
func NewMaxAgeCache[V any](clock Clock) *MaxAgeCache[V] {
	return &MaxAgeCache[V]{clock: clock, entries: make(map[string]cacheEntry[V])}
}

// outcome is the boxed shape passed through singleflight.Group, whose
// Do returns interface{} rather than being generic over V.
type outcome[V any] struct {
	value V
	ok    bool
}

func (c *MaxAgeCache[V]) Get(key string, maxAgeMs int64, fallback func() (V, bool)) (V, bool) {
	now := c.clock.NowMillis()

	if entry, ok := c.fresh(key, maxAgeMs, now); ok {
		return entry, true
	}

	result, _, _ := c.group.Do(key, func() (interface{}, error) {
		// Re-check freshness against the same `now` now that we hold
		// the single-flight token: another caller may have refreshed
		// this key while we waited to get here.
		if entry, ok := c.fresh(key, maxAgeMs, now); ok {
			return outcome[V]{entry, true}, nil
		}

		value, ok := fallback()
		if ok {
			c.mu.Lock()
			c.entries[key] = cacheEntry[V]{value: value, createdMs: now}
			c.mu.Unlock()
		}
		return outcome[V]{value, ok}, nil
	})

	o := result.(outcome[V])
	return o.value, o.ok
}

// fresh returns the cached value for key if present and younger than
// maxAgeMs as of now.
func (c *MaxAgeCache[V]) fresh(key string, maxAgeMs int64, now int64) (V, bool) {
	c.mu.Lock()
	entry, found := c.entries[key]
	c.mu.Unlock()

	if found && entry.createdMs+maxAgeMs > now {
		return entry.value, true
	}

	var zero V
	return zero, false
}

// noopCache never stores anything and always defers to fallback,
// implementing the disabled-cache variant.
type noopCache[V any] struct{}

// NewNoopCache returns an AgeAwareCache that always misses and never
// stores, for callers that build a Loader with caching disabled.
func NewNoopCache[V any]() AgeAwareCache[V] {
	return noopCache[V]{}
}

func (noopCache[V]) Get(_ string, _ int64, fallback func() (V, bool)) (V, bool) {
	return fallback()
}

// SystemClock is a Clock backed by the real wall clock.
type SystemClock struct{}

func (SystemClock) NowMillis() int64 {
	return time.Now().UnixMilli()
}
