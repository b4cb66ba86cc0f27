// Package configsource provides config.Source adapters over concrete
// backing stores: .properties files, flat YAML documents, the process
// environment, and expression-gated deferred sources.
package configsource

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kyrobbins/goconfig/internal/config"
)

// PropertiesFile describes where to find a .properties file and whether
// its absence is fatal. A relative Path is resolved against ResourceRoot
// (IsResource) or against the process working directory; an absolute Path
// is used as given.
type PropertiesFile struct {
	Path       string
	IsResource bool
	Required   bool
}

// ResourceRoot is searched for PropertiesFile entries with IsResource
// set. It defaults to the working directory; override it for embedded or
// packaged resource layouts.
var ResourceRoot = "."

// LoadPropertiesFile reads a .properties file and wraps its contents as a
// config.Source labeled with the file's path. A missing required file is
// a ConfigurationError; a missing optional file yields an empty source.
func LoadPropertiesFile(pf PropertiesFile) (config.Source, error) {
	root := "."
	if pf.IsResource {
		root = ResourceRoot
	}

	dir, base := filepath.Split(pf.Path)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	openRoot, err := os.OpenRoot(dir)
	if err != nil {
		if pf.Required {
			return nil, config.NewMissingFileError(pf.Path, err)
		}
		return config.EmptySource, nil
	}
	defer openRoot.Close()

	file, err := openRoot.Open(base)
	if err != nil {
		if pf.Required {
			return nil, config.NewMissingFileError(pf.Path, err)
		}
		return config.EmptySource, nil
	}
	defer file.Close()

	values, err := ParseProperties(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse properties file %s: %w", pf.Path, err)
	}

	return config.NewMapSource(pf.Path, values), nil
}

// ParseProperties parses the Java .properties line format: key=value or
// key:value pairs, one per line, '#' and '!' comment lines, and trailing
// backslash line continuations. No third-party library in the retrieved
// example pack implements this format, so it is hand-rolled over
// bufio.Scanner.
func ParseProperties(r io.Reader) (map[string]string, error) {
	result := make(map[string]string)
	scanner := bufio.NewScanner(r)

	var pendingKey, pendingValue string
	var continuing bool

	for scanner.Scan() {
		line := scanner.Text()

		if continuing {
			line = pendingValue + strings.TrimLeft(line, " \t")
		} else {
			trimmed := strings.TrimLeft(line, " \t")
			if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "!") {
				continue
			}
			line = trimmed
		}

		if strings.HasSuffix(line, `\`) && !strings.HasSuffix(line, `\\`) {
			unescaped := line[:len(line)-1]
			if continuing {
				pendingValue = unescaped
			} else {
				key, value, ok := splitKeyValue(unescaped)
				if !ok {
					continue
				}
				pendingKey = key
				pendingValue = value
			}
			continuing = true
			continue
		}

		if continuing {
			result[pendingKey] = unescapeValue(line)
			continuing = false
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}
		result[key] = unescapeValue(value)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// splitKeyValue splits a single properties line on the first unescaped
// '=', ':', or whitespace separator.
func splitKeyValue(line string) (key, value string, ok bool) {
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '\\' {
			i++
			continue
		}
		if c == '=' || c == ':' || c == ' ' || c == '\t' {
			key = strings.TrimSpace(unescapeValue(line[:i]))
			value = strings.TrimSpace(line[i+1:])
			if key == "" {
				return "", "", false
			}
			return key, value, true
		}
	}
	return strings.TrimSpace(line), "", strings.TrimSpace(line) != ""
}

func unescapeValue(s string) string {
	replacer := strings.NewReplacer(`\:`, ":", `\=`, "=", `\#`, "#", `\!`, "!", `\\`, `\`)
	return replacer.Replace(s)
}
