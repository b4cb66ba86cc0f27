package config

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceClock returns each value in ticks once, in order, then repeats the
// last value forever. It lets a test script an exact sequence of NowMillis
// observations without a real wall clock.
type sequenceClock struct {
	ticks []int64
	next  int
}

func (c *sequenceClock) NowMillis() int64 {
	if c.next >= len(c.ticks) {
		return c.ticks[len(c.ticks)-1]
	}
	v := c.ticks[c.next]
	c.next++
	return v
}

func TestMaxAgeCache_FreshnessSequence(t *testing.T) {
	// clock ticks: 5000, 5000, 5000, 8000, 10000 with a 2000ms max age.
	// Expected: miss/fallback, hit, hit, stale/fallback, stale/fallback
	// (created+maxAge <= now is strict staleness, so 8000+2000==10000
	// counts as stale on the fifth call).
	clock := &sequenceClock{ticks: []int64{5000, 5000, 5000, 8000, 10000}}
	cache := NewMaxAgeCache[string](clock)

	fallbackCalls := 0
	fallback := func() (string, bool) {
		fallbackCalls++
		return "value", true
	}

	v, ok := cache.Get("k", 2000, fallback)
	require.True(t, ok)
	assert.Equal(t, "value", v)
	assert.Equal(t, 1, fallbackCalls)

	_, ok = cache.Get("k", 2000, fallback)
	require.True(t, ok)
	assert.Equal(t, 1, fallbackCalls, "second call within max age should hit")

	_, ok = cache.Get("k", 2000, fallback)
	require.True(t, ok)
	assert.Equal(t, 1, fallbackCalls, "third call within max age should hit")

	_, ok = cache.Get("k", 2000, fallback)
	require.True(t, ok)
	assert.Equal(t, 2, fallbackCalls, "fourth call past max age should refresh")

	_, ok = cache.Get("k", 2000, fallback)
	require.True(t, ok)
	assert.Equal(t, 3, fallbackCalls, "created+maxAge == now is stale, strict inequality")
}

func TestMaxAgeCache_FailedFallbackNeverStored(t *testing.T) {
	clock := &sequenceClock{ticks: []int64{1000, 1000, 1000}}
	cache := NewMaxAgeCache[string](clock)

	calls := 0
	fallback := func() (string, bool) {
		calls++
		return "", false
	}

	_, ok := cache.Get("k", 5000, fallback)
	assert.False(t, ok)

	_, ok = cache.Get("k", 5000, fallback)
	assert.False(t, ok)
	assert.Equal(t, 2, calls, "a miss must never poison the cache with a stale absence")
}

// fixedClock always reports the same instant, for tests that don't care
// about freshness transitions.
type fixedClock struct{ now int64 }

func (c fixedClock) NowMillis() int64 { return c.now }

func TestMaxAgeCache_CollapsesConcurrentFallbacks(t *testing.T) {
	cache := NewMaxAgeCache[string](fixedClock{now: 1000})

	var calls int
	var mu sync.Mutex
	fallback := func() (string, bool) {
		mu.Lock()
		calls++
		mu.Unlock()
		return "value", true
	}

	const goroutines = 20
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			v, ok := cache.Get("k", 5000, fallback)
			assert.True(t, ok)
			assert.Equal(t, "value", v)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls, "concurrent misses for the same key should collapse into one fallback call")
}

func TestNoopCache_AlwaysDefers(t *testing.T) {
	cache := NewNoopCache[string]()

	calls := 0
	fallback := func() (string, bool) {
		calls++
		return "value", true
	}

	_, _ = cache.Get("k", 1_000_000, fallback)
	_, _ = cache.Get("k", 1_000_000, fallback)

	assert.Equal(t, 2, calls)
}

func TestSystemClock_NowMillis(t *testing.T) {
	clock := SystemClock{}
	assert.Greater(t, clock.NowMillis(), int64(0))
}
