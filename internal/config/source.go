package config

// Source is a named, read-only lookup: a label for logging and priority
// reporting, plus a function from key to value. A Source returns ok=false
// for any key it does not carry, never a distinguished "nil" value.
type Source interface {
	Label() string
	Lookup(key string) (value string, ok bool)
}

// funcSource adapts a label and a plain lookup function to Source. This is
// the common case: most sources (maps, properties files, environment
// variables) reduce to "look this key up in something".
type funcSource struct {
	label string
	fn    func(string) (string, bool)
}

// NewFuncSource wraps a bare lookup function as a Source.
func NewFuncSource(label string, fn func(string) (string, bool)) Source {
	return funcSource{label: label, fn: fn}
}

func (s funcSource) Label() string                     { return s.label }
func (s funcSource) Lookup(key string) (string, bool) { return s.fn(key) }

// NewMapSource wraps a plain map as a Source.
func NewMapSource(label string, m map[string]string) Source {
	return funcSource{label: label, fn: func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}}
}

// emptySource is the sentinel a deferred factory returns to opt out of
// registering anything at all. It is pruned during Builder.Build and never
// appears in a finalized Registry.
type emptySource struct{}

func (emptySource) Label() string             { return "" }
func (emptySource) Lookup(string) (string, bool) { return "", false }

// EmptySource is the shared instance deferred factories return to
// register nothing.
var EmptySource Source = emptySource{}

// rootSourceType is the always-nil, always-present base of every
// registry: a stable label for build logs and priority listings, never a
// real value provider.
type rootSourceType struct{}

func (rootSourceType) Label() string             { return "ROOT" }
func (rootSourceType) Lookup(string) (string, bool) { return "", false }

// RootSource is the permanent, lowest-priority entry present in every
// registry.
var RootSource Source = rootSourceType{}

// DeferredFactory builds a Source once every static source has been
// registered, optionally consulting them. Returning EmptySource opts the
// factory out of contributing anything. Only one level of deferral is
// supported: a factory sees a registry built from static sources only,
// never one containing another deferred source's output.
type DeferredFactory func(*Registry) Source
