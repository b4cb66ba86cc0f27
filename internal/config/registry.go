package config

import (
	"log/slog"

	"github.com/google/uuid"
)

// Registry is an ordered, immutable list of sources. Priority is the
// reverse of insertion order: the source added last is consulted first.
// RootSource always occupies index 0 and is never removed.
type Registry struct {
	sources []Source
	buildID uuid.UUID
}

// BuildID is the identifier assigned to a registry when it is built and
// logged once alongside its source list, for correlating log lines back to
// a specific loader instance.
func (r *Registry) BuildID() uuid.UUID {
	return r.buildID
}

// Find scans the registry from highest to lowest priority and returns the
// first hit.
func (r *Registry) Find(key string) (value string, label string, ok bool) {
	for i := len(r.sources) - 1; i >= 0; i-- {
		s := r.sources[i]
		if v, found := s.Lookup(key); found {
			return v, s.Label(), true
		}
	}
	return "", "", false
}

// Labels returns the registered source labels in descending priority
// order (last-inserted first), for logging and the `sources` CLI command.
func (r *Registry) Labels() []string {
	labels := make([]string, 0, len(r.sources))
	for i := len(r.sources) - 1; i >= 0; i-- {
		labels = append(labels, r.sources[i].Label())
	}
	return labels
}

type registryEntry struct {
	static   Source
	deferred DeferredFactory
}

// buildRegistry partitions entries into static and deferred, resolves
// deferred factories against a transient static-only registry, drops any
// EmptySource results, and finalizes the registry after checking for
// duplicate labels. Only one level of deferral is supported: a deferred
// factory sees only static sources, never another factory's output.
func buildRegistry(entries []registryEntry) (*Registry, error) {
	transientSources := []Source{RootSource}
	for _, e := range entries {
		if e.static != nil {
			transientSources = append(transientSources, e.static)
		}
	}
	transient := &Registry{sources: transientSources}

	final := []Source{RootSource}
	for _, e := range entries {
		switch {
		case e.static != nil:
			final = append(final, e.static)
		case e.deferred != nil:
			resolved := e.deferred(transient)
			if _, empty := resolved.(emptySource); empty {
				continue
			}
			final = append(final, resolved)
		}
	}

	seen := make(map[string]bool, len(final))
	for _, s := range final {
		if s == RootSource {
			continue
		}
		if seen[s.Label()] {
			return nil, newDuplicateSourceError(s.Label())
		}
		seen[s.Label()] = true
	}

	registry := &Registry{sources: final, buildID: uuid.New()}

	labels := registry.Labels()
	slog.Info("Building ConfigLoader with the following sources (in descending order of priority)",
		"build_id", registry.buildID.String(), "sources", labels)

	return registry, nil
}
