package configsource

import (
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/kyrobbins/goconfig/internal/config"
)

// LoadYAMLFile reads a YAML document and flattens its nested maps into a
// dotted-key config.Source, giving users a structured alternative to
// .properties files without changing engine semantics. A missing file is
// treated the same as an empty document if required is false.
func LoadYAMLFile(path string, required bool) (config.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return config.EmptySource, nil
		}
		if required {
			return nil, config.NewMissingFileError(path, err)
		}
		return nil, fmt.Errorf("failed to read yaml source %s: %w", path, err)
	}

	var document map[string]any
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("failed to parse yaml source %s: %w", path, err)
	}

	flat := make(map[string]string)
	flatten("", document, flat)

	return config.NewMapSource(path, flat), nil
}

// flatten walks a decoded YAML document, joining nested map keys with '.'
// and rendering scalar leaves as strings, matching the dotted-key grammar
// the engine's property parser expects.
func flatten(prefix string, node any, out map[string]string) {
	switch value := node.(type) {
	case map[string]any:
		for k, v := range value {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, v, out)
		}
	case []any:
		for i, v := range value {
			key := fmt.Sprintf("%s.%d", prefix, i)
			flatten(key, v, out)
		}
	case nil:
		return
	default:
		out[prefix] = scalarToString(value)
	}
}

func scalarToString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", value)
	}
}
