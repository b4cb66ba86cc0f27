package config

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Loader is the resolution engine: it normalizes keys, scans a Registry in
// priority order, recursively expands placeholders, applies override
// fallback, and coerces the resulting string to the requested type.
type Loader struct {
	registry *Registry
	cache    AgeAwareCache[string]
}

// Builder accumulates sources and deferred factories, then finalizes them
// into a Loader. Sources are consulted in reverse registration order; the
// source added last wins.
type Builder struct {
	entries     []registryEntry
	enableCache bool
	clock       Clock
}

// NewBuilder returns an empty Builder using the system wall clock.
func NewBuilder() *Builder {
	return &Builder{clock: SystemClock{}}
}

// AddSource registers a static source.
func (b *Builder) AddSource(s Source) *Builder {
	b.entries = append(b.entries, registryEntry{static: s})
	return b
}

// AddMap registers a plain map as a labeled source.
func (b *Builder) AddMap(label string, m map[string]string) *Builder {
	return b.AddSource(NewMapSource(label, m))
}

// AddFunc registers a bare lookup function as a labeled source.
func (b *Builder) AddFunc(label string, fn func(string) (string, bool)) *Builder {
	return b.AddSource(NewFuncSource(label, fn))
}

// AddDeferred registers a factory resolved once every static source has
// been registered, against a transient registry built from those static
// sources alone.
func (b *Builder) AddDeferred(factory DeferredFactory) *Builder {
	b.entries = append(b.entries, registryEntry{deferred: factory})
	return b
}

// EnableCache turns on age-aware caching of resolved values. Without it,
// Build produces a Loader that always resolves fresh.
func (b *Builder) EnableCache() *Builder {
	b.enableCache = true
	return b
}

// WithClock overrides the clock used for cache freshness checks. Only
// meaningful together with EnableCache.
func (b *Builder) WithClock(clock Clock) *Builder {
	b.clock = clock
	return b
}

// Build finalizes the registry and returns a ready-to-use Loader.
func (b *Builder) Build() (*Loader, error) {
	registry, err := buildRegistry(b.entries)
	if err != nil {
		return nil, err
	}

	var cache AgeAwareCache[string]
	if b.enableCache {
		cache = NewMaxAgeCache[string](b.clock)
	} else {
		cache = NewNoopCache[string]()
	}

	return &Loader{registry: registry, cache: cache}, nil
}

// Registry returns the finalized source registry backing this Loader,
// for callers that want to list or inspect sources directly.
func (l *Loader) Registry() *Registry {
	return l.registry
}

// GetString resolves key, expanding placeholders and applying override
// fallback, caching the result for up to maxAge if the Loader was built
// with EnableCache.
func (l *Loader) GetString(key string, maxAge time.Duration) (Value[string], error) {
	var resolveErr error

	value, found := l.cache.Get(key, maxAge.Milliseconds(), func() (string, bool) {
		v, ok, err := l.resolveRaw(key, map[string]struct{}{key: {}})
		if err != nil {
			resolveErr = err
			return "", false
		}
		return v, ok
	})
	if resolveErr != nil {
		return Value[string]{}, resolveErr
	}
	if found {
		return PresentValue(key, value), nil
	}
	return AbsentValue[string](key), nil
}

// GetBoolean resolves key and parses it as a case-insensitive "true" or
// "false".
func (l *Loader) GetBoolean(key string, maxAge time.Duration) (Value[bool], error) {
	sv, err := l.GetString(key, maxAge)
	if err != nil {
		return Value[bool]{}, err
	}
	if !sv.IsPresent() {
		return AbsentValue[bool](key), nil
	}

	switch strings.ToLower(sv.OrElse("")) {
	case "true":
		return PresentValue(key, true), nil
	case "false":
		return PresentValue(key, false), nil
	default:
		return Value[bool]{}, newCoercionError(key, typeName("bool"), nil)
	}
}

// GetInt resolves key and parses it as a signed base-10 32-bit integer.
func (l *Loader) GetInt(key string, maxAge time.Duration) (Value[int], error) {
	sv, err := l.GetString(key, maxAge)
	if err != nil {
		return Value[int]{}, err
	}
	if !sv.IsPresent() {
		return AbsentValue[int](key), nil
	}

	n, err := strconv.ParseInt(sv.OrElse(""), 10, 32)
	if err != nil {
		return Value[int]{}, newCoercionError(key, typeName("int"), err)
	}
	return PresentValue(key, int(n)), nil
}

// GetInt64 resolves key and parses it as a signed base-10 64-bit integer.
func (l *Loader) GetInt64(key string, maxAge time.Duration) (Value[int64], error) {
	sv, err := l.GetString(key, maxAge)
	if err != nil {
		return Value[int64]{}, err
	}
	if !sv.IsPresent() {
		return AbsentValue[int64](key), nil
	}

	n, err := strconv.ParseInt(sv.OrElse(""), 10, 64)
	if err != nil {
		return Value[int64]{}, newCoercionError(key, typeName("int64"), err)
	}
	return PresentValue(key, n), nil
}

// GetFloat32 resolves key and parses it as a decimal float.
func (l *Loader) GetFloat32(key string, maxAge time.Duration) (Value[float32], error) {
	sv, err := l.GetString(key, maxAge)
	if err != nil {
		return Value[float32]{}, err
	}
	if !sv.IsPresent() {
		return AbsentValue[float32](key), nil
	}

	f, err := strconv.ParseFloat(sv.OrElse(""), 32)
	if err != nil {
		return Value[float32]{}, newCoercionError(key, typeName("float32"), err)
	}
	return PresentValue(key, float32(f)), nil
}

// GetFloat64 resolves key and parses it as a decimal double.
func (l *Loader) GetFloat64(key string, maxAge time.Duration) (Value[float64], error) {
	sv, err := l.GetString(key, maxAge)
	if err != nil {
		return Value[float64]{}, err
	}
	if !sv.IsPresent() {
		return AbsentValue[float64](key), nil
	}

	f, err := strconv.ParseFloat(sv.OrElse(""), 64)
	if err != nil {
		return Value[float64]{}, newCoercionError(key, typeName("float64"), err)
	}
	return PresentValue(key, f), nil
}

// GetVersion resolves key and parses it as a semantic version, supplementing
// the boolean/integer/long/float/double coercion set from spec with a type
// the wider Go ecosystem has a canonical parser for.
func (l *Loader) GetVersion(key string, maxAge time.Duration) (Value[*semver.Version], error) {
	sv, err := l.GetString(key, maxAge)
	if err != nil {
		return Value[*semver.Version]{}, err
	}
	if !sv.IsPresent() {
		return AbsentValue[*semver.Version](key), nil
	}

	v, err := semver.NewVersion(sv.OrElse(""))
	if err != nil {
		return Value[*semver.Version]{}, newCoercionError(key, typeName("semver.Version"), err)
	}
	return PresentValue(key, v), nil
}

// resolveRaw expands placeholders in key, then looks it up (with override
// fallback), expanding placeholders again in whatever value is found.
func (l *Loader) resolveRaw(key string, visited map[string]struct{}) (string, bool, error) {
	expandedKey, err := l.expandPlaceholders(key, visited)
	if err != nil {
		return "", false, err
	}
	return l.lookupWithOverrides(expandedKey, visited)
}

// expandPlaceholders finds every leaf `${...}` region in s and substitutes
// each with its resolved value, processing regions in reverse index order
// so earlier substitutions never shift later offsets. An inner key already
// present in visited is an expansion loop. A region whose inner key does
// not resolve is written back unchanged, for traceability.
func (l *Loader) expandPlaceholders(s string, visited map[string]struct{}) (string, error) {
	regions := FindLeafRegions(s)

	for i := len(regions) - 1; i >= 0; i-- {
		region := regions[i]

		if _, seen := visited[region.InnerKey]; seen {
			return "", newExpansionLoopError()
		}

		localVisited := make(map[string]struct{}, len(visited)+1)
		for k := range visited {
			localVisited[k] = struct{}{}
		}
		localVisited[region.InnerKey] = struct{}{}

		value, found, err := l.resolveRaw(region.InnerKey, localVisited)
		if err != nil {
			return "", err
		}

		replacement := region.PlaceholderText
		if found {
			replacement = value
		}

		s = s[:region.Start] + replacement + s[region.End:]
	}

	return s, nil
}

// lookupWithOverrides parses absoluteKey, tries its specific form (override
// contents kept), and falls back to the generic form (overrides dropped)
// when the specific form misses and the two forms differ.
func (l *Loader) lookupWithOverrides(absoluteKey string, visited map[string]struct{}) (string, bool, error) {
	parsed, err := Parse(absoluteKey)
	if err != nil {
		return "", false, err
	}

	specific := Specific(parsed)
	generic := Generic(parsed)

	if v, label, ok := l.registry.Find(specific); ok {
		slog.Info("key resolved", "key", specific, "source", label)
		expanded, err := l.expandPlaceholders(v, visited)
		return expanded, true, err
	}
	slog.Info("key not found", "key", specific)

	if generic != specific {
		if v, label, ok := l.registry.Find(generic); ok {
			slog.Info("key resolved", "key", generic, "source", label)
			expanded, err := l.expandPlaceholders(v, visited)
			return expanded, true, err
		}
		slog.Info("key not found", "key", generic)
	}

	return "", false, nil
}
