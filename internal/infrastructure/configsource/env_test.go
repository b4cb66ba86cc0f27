package configsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvSource_LooksUpByDottedKey(t *testing.T) {
	t.Setenv("PERSISTENCE_DB_USERNAME", "admin")

	source := NewEnvSource("environment")
	assert.Equal(t, "environment", source.Label())

	v, ok := source.Lookup("persistence.db.username")
	require.True(t, ok)
	assert.Equal(t, "admin", v)
}

func TestNewEnvSource_MissesUnsetKey(t *testing.T) {
	source := NewEnvSource("environment")

	_, ok := source.Lookup("definitely.not.set.anywhere")
	assert.False(t, ok)
}
