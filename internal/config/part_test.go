package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPart_Unwrap(t *testing.T) {
	tests := []struct {
		name          string
		key           string
		keepOverrides bool
		want          string
	}{
		{name: "plain key", key: "persistence.db.username", keepOverrides: true, want: "persistence.db.username"},
		{name: "override kept specific", key: "persistence.db.{username}", keepOverrides: true, want: "persistence.db.username"},
		{name: "override dropped generic", key: "persistence.db.{username}", keepOverrides: false, want: "persistence.db"},
		{name: "placeholder preserved raw", key: "some.${nested.key}.value", keepOverrides: true, want: "some.${nested.key}.value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, parsed.Unwrap(tt.keepOverrides))
		})
	}
}

func TestPart_UnwrapRoundTrip(t *testing.T) {
	// Invariant 3: unwrapping a parsed tree preserves every non-override
	// character.
	key := "persistence.db.username"
	parsed, err := Parse(key)
	require.NoError(t, err)
	assert.Equal(t, key, parsed.Unwrap(true))
}
