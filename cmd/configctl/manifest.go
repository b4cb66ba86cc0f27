package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/kyrobbins/goconfig/internal/config"
	"github.com/kyrobbins/goconfig/internal/infrastructure/configsource"
)

// sourceManifest describes one registered source: a .properties file, a
// YAML file, or the process environment. Written by `configctl init` and
// read by every other subcommand.
type sourceManifest struct {
	Type     string `yaml:"type"`
	Path     string `yaml:"path,omitempty"`
	Required bool   `yaml:"required,omitempty"`
	Label    string `yaml:"label,omitempty"`
}

// manifest is the on-disk shape written and read by the CLI.
type manifest struct {
	Sources []sourceManifest `yaml:"sources"`
}

// loadManifest reads a manifest file written by `configctl init`.
func loadManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	return &m, nil
}

// buildLoader constructs a config.Loader from a manifest, registering
// each described source in order (last entry wins on conflict) with
// caching enabled.
func buildLoader(m *manifest) (*config.Loader, error) {
	builder := config.NewBuilder().EnableCache()

	for _, entry := range m.Sources {
		switch entry.Type {
		case "properties":
			source, err := configsource.LoadPropertiesFile(configsource.PropertiesFile{
				Path:     entry.Path,
				Required: entry.Required,
			})
			if err != nil {
				return nil, err
			}
			builder.AddSource(source)
		case "yaml":
			source, err := configsource.LoadYAMLFile(entry.Path, entry.Required)
			if err != nil {
				return nil, err
			}
			builder.AddSource(source)
		case "env":
			label := entry.Label
			if label == "" {
				label = "environment"
			}
			builder.AddSource(configsource.NewEnvSource(label))
		default:
			return nil, fmt.Errorf("unknown source type %q in manifest", entry.Type)
		}
	}

	return builder.Build()
}

// loadWithTimeout runs buildLoader on a background goroutine and races it
// against ctx, so a source that is slow to load (e.g. a file on a hung
// filesystem) can't stall a command past CommonOptions.Timeout.
func loadWithTimeout(ctx context.Context, m *manifest) (*config.Loader, error) {
	type result struct {
		loader *config.Loader
		err    error
	}

	done := make(chan result, 1)
	go func() {
		loader, err := buildLoader(m)
		done <- result{loader, err}
	}()

	select {
	case r := <-done:
		return r.loader, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("building loader: %w", ctx.Err())
	}
}
