package configsource

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/kyrobbins/goconfig/internal/config"
)

// exprEnv is the evaluation environment exposed to a gate expression: a
// single Get function resolving an already-registered key to its raw
// string value ("" if absent).
type exprEnv struct {
	Get func(string) string
}

// CompileGate compiles a boolean gate expression once, so it can be
// reused across every Loader built from the same source list without
// re-parsing it each time. A typical expression: `Get("feature.enabled")
// == "true"`.
func CompileGate(expression string) (*vm.Program, error) {
	program, err := expr.Compile(expression, expr.Env(exprEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid gate expression %q: %w", expression, err)
	}
	return program, nil
}

// NewExprGatedSource returns a DeferredFactory activating source only if
// program evaluates true against the registry's already-registered
// static sources. This realizes the "may inspect already-loaded
// configuration" deferred-source rule from a small boolean expression
// rather than hand-written Go.
func NewExprGatedSource(program *vm.Program, source config.Source) config.DeferredFactory {
	return func(registry *config.Registry) config.Source {
		env := exprEnv{
			Get: func(key string) string {
				value, _, _ := registry.Find(key)
				return value
			},
		}

		result, err := expr.Run(program, env)
		if err != nil {
			return config.EmptySource
		}

		active, ok := result.(bool)
		if !ok || !active {
			return config.EmptySource
		}

		return source
	}
}
