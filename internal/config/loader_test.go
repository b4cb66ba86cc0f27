package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_PlaceholderChain(t *testing.T) {
	// S1: a placeholder resolves to a value that itself contains a
	// placeholder, expanded recursively.
	loader, err := NewBuilder().
		AddMap("app", map[string]string{
			"app.url":    "https://${app.host}:${app.port}",
			"app.host":   "${app.domain}",
			"app.domain": "example.com",
			"app.port":   "8443",
		}).
		Build()
	require.NoError(t, err)

	v, err := loader.GetString("app.url", 0)
	require.NoError(t, err)
	require.True(t, v.IsPresent())
	assert.Equal(t, "https://example.com:8443", v.OrElse(""))
}

func TestLoader_UnresolvablePlaceholderPreserved(t *testing.T) {
	// S2: a placeholder whose inner key has no source is left untouched.
	loader, err := NewBuilder().
		AddMap("app", map[string]string{
			"app.url": "https://${app.unset.host}/",
		}).
		Build()
	require.NoError(t, err)

	v, err := loader.GetString("app.url", 0)
	require.NoError(t, err)
	require.True(t, v.IsPresent())
	assert.Equal(t, "https://${app.unset.host}/", v.OrElse(""))
}

func TestLoader_OverrideFallback(t *testing.T) {
	// S3: a specific override wins when present; the generic form is used
	// when the override is absent.
	loader, err := NewBuilder().
		AddMap("app", map[string]string{
			"persistence.db":      "generic-db",
			"persistence.db.prod": "prod-db",
		}).
		Build()
	require.NoError(t, err)

	v, err := loader.GetString("persistence.db.{prod}", 0)
	require.NoError(t, err)
	assert.Equal(t, "prod-db", v.OrElse(""))

	v, err = loader.GetString("persistence.db.{staging}", 0)
	require.NoError(t, err)
	assert.Equal(t, "generic-db", v.OrElse(""))
}

func TestLoader_PlaceholderInsideOverride(t *testing.T) {
	loader, err := NewBuilder().
		AddMap("app", map[string]string{
			"env":                 "prod",
			"persistence.db.prod": "prod-db",
		}).
		Build()
	require.NoError(t, err)

	v, err := loader.GetString("persistence.db.{${env}}", 0)
	require.NoError(t, err)
	assert.Equal(t, "prod-db", v.OrElse(""))
}

func TestLoader_ExpansionLoop(t *testing.T) {
	// S4: a placeholder chain that cycles back to a key already being
	// expanded raises ConfigurationError("Property Expansion Loop").
	loader, err := NewBuilder().
		AddMap("app", map[string]string{
			"a": "${b}",
			"b": "${a}",
		}).
		Build()
	require.NoError(t, err)

	_, err = loader.GetString("a", 0)
	require.Error(t, err)

	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "Property Expansion Loop", cerr.Error())
}

func TestLoader_CacheAgeSemantics(t *testing.T) {
	// S5: cached values are reused within maxAge and refreshed once stale.
	clock := &sequenceClock{ticks: []int64{5000, 5000, 8000}}
	backing := map[string]string{"key": "v1"}

	loader, err := NewBuilder().
		AddFunc("app", func(k string) (string, bool) {
			v, ok := backing[k]
			return v, ok
		}).
		EnableCache().
		WithClock(clock).
		Build()
	require.NoError(t, err)

	v, err := loader.GetString("key", 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "v1", v.OrElse(""))

	backing["key"] = "v2"

	v, err = loader.GetString("key", 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "v1", v.OrElse(""), "still within max age, must serve the cached value")

	v, err = loader.GetString("key", 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "v2", v.OrElse(""), "stale entry must be refreshed")
}

func TestLoader_DeferredSourceOnePass(t *testing.T) {
	// S7: a deferred source built from a gate seen in the static layer.
	loader, err := NewBuilder().
		AddMap("static", map[string]string{"feature.flag": "true"}).
		AddDeferred(func(r *Registry) Source {
			if v, _, _ := r.Find("feature.flag"); v == "true" {
				return NewMapSource("feature", map[string]string{"feature.value": "enabled"})
			}
			return EmptySource
		}).
		Build()
	require.NoError(t, err)

	v, err := loader.GetString("feature.value", 0)
	require.NoError(t, err)
	assert.Equal(t, "enabled", v.OrElse(""))
}

func TestLoader_AbsentKey(t *testing.T) {
	loader, err := NewBuilder().Build()
	require.NoError(t, err)

	v, err := loader.GetString("missing.key", 0)
	require.NoError(t, err)
	assert.False(t, v.IsPresent())

	_, err = v.OrElseThrow()
	require.Error(t, err)
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "Key for [missing.key] not configured", cerr.Error())
}

func TestLoader_TypedCoercion(t *testing.T) {
	loader, err := NewBuilder().
		AddMap("app", map[string]string{
			"flag.enabled": "true",
			"count":        "42",
			"count64":      "9000000000",
			"ratio32":      "1.5",
			"ratio64":      "3.14159",
			"app.version":  "1.4.2",
			"flag.garbage": "not-a-bool",
		}).
		Build()
	require.NoError(t, err)

	b, err := loader.GetBoolean("flag.enabled", 0)
	require.NoError(t, err)
	assert.True(t, b.OrElse(false))

	i, err := loader.GetInt("count", 0)
	require.NoError(t, err)
	assert.Equal(t, 42, i.OrElse(0))

	i64, err := loader.GetInt64("count64", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(9_000_000_000), i64.OrElse(0))

	f32, err := loader.GetFloat32("ratio32", 0)
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f32.OrElse(0))

	f64, err := loader.GetFloat64("ratio64", 0)
	require.NoError(t, err)
	assert.Equal(t, 3.14159, f64.OrElse(0))

	ver, err := loader.GetVersion("app.version", 0)
	require.NoError(t, err)
	require.True(t, ver.IsPresent())
	assert.Equal(t, "1.4.2", ver.OrElse(nil).String())

	_, err = loader.GetBoolean("flag.garbage", 0)
	require.Error(t, err)
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "Could not parse 'flag.garbage' value as type 'java.lang.Boolean'", cerr.Error())
}
