package config

import "fmt"

// ParserError reports a syntax violation in a property key. It always
// carries the character offset at which parsing failed and the low-level
// cause message from the scanning state machine.
type ParserError struct {
	Offset  int
	Message string
	Cause   error
}

func (e *ParserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause.Error())
	}
	return e.Message
}

func (e *ParserError) Unwrap() error {
	return e.Cause
}

// ConfigurationError reports a user-facing resolution failure: a missing
// required file, a duplicate source label, an expansion loop, an
// unconfigured required key, or a coercion failure. Aspect classifies the
// failure for callers that want to branch on it without string-matching
// Error().
type ConfigurationError struct {
	Aspect  string
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause.Error())
	}
	return e.Message
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// newExpansionLoopError builds the fixed error raised when a placeholder
// resolves back to a key already on the expansion path.
func newExpansionLoopError() *ConfigurationError {
	return &ConfigurationError{Aspect: "expansion loop", Message: "Property Expansion Loop"}
}

// newCoercionError builds the fixed error raised when a resolved string
// value cannot be parsed as the requested type.
func newCoercionError(key, typeName string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  "coercion",
		Message: fmt.Sprintf("Could not parse '%s' value as type '%s'", key, typeName),
		Cause:   cause,
	}
}

// newDuplicateSourceError builds the fixed error raised at registry build
// time when two sources share a label.
func newDuplicateSourceError(label string) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  "duplicate source",
		Message: fmt.Sprintf("Duplicate source label '%s' found", label),
	}
}

// newMissingKeyError builds the fixed error raised by Value.OrElseThrow
// when a required key was never configured.
func newMissingKeyError(key string) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  "missing key",
		Message: fmt.Sprintf("Key for [%s] not configured", key),
	}
}

// NewMissingFileError builds the fixed error raised when a required
// .properties file cannot be found. Exported for infrastructure adapters
// that discover missing files outside this package.
func NewMissingFileError(path string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  "missing file",
		Message: fmt.Sprintf("Missing required .properties file for configuration: %s", path),
		Cause:   cause,
	}
}
