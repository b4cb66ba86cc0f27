package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationError_Messages(t *testing.T) {
	assert.Equal(t, "Property Expansion Loop", newExpansionLoopError().Error())
	assert.Equal(t, "Duplicate source label 'db' found", newDuplicateSourceError("db").Error())
	assert.Equal(t, "Key for [db.host] not configured", newMissingKeyError("db.host").Error())
	assert.Equal(t, "Could not parse 'db.port' value as type 'java.lang.Integer'",
		newCoercionError("db.port", typeName("int"), nil).Error())

	cause := errors.New("strconv.ParseInt: parsing \"x\": invalid syntax")
	wrapped := newCoercionError("db.port", typeName("int"), cause)
	assert.Contains(t, wrapped.Error(), "Could not parse 'db.port' value as type 'java.lang.Integer'")
	assert.Contains(t, wrapped.Error(), cause.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestNewMissingFileError(t *testing.T) {
	cause := errors.New("open app.properties: no such file or directory")
	err := NewMissingFileError("app.properties", cause)
	assert.Equal(t, "Missing required .properties file for configuration: app.properties: "+cause.Error(), err.Error())
	assert.ErrorIs(t, err, cause)
}
