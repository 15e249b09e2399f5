package expression

import (
	"fmt"
	"strings"
)

// registerDefaultFunctions installs the built-in helpers. Dotted aliases match
// the helper names content editors already use in Eel conditions.
func (e *Engine) registerDefaultFunctions() {
	register := func(fn Function, aliases ...string) {
		e.functions[fn.Name] = fn
		for _, alias := range aliases {
			e.functions[alias] = fn
		}
	}

	register(Function{Name: "contains", Arity: 2, Handler: containsFn}, "Array.contains", "String.contains")
	register(Function{Name: "indexOf", Arity: 2, Handler: indexOfFn}, "Array.indexOf", "String.indexOf")
	register(Function{Name: "count", Arity: 1, Handler: countFn}, "len", "Array.length", "String.length")
	register(Function{Name: "empty", Arity: 1, Handler: func(args []any) (any, error) {
		return !truthy(args[0]), nil
	}}, "Array.isEmpty")
	register(Function{Name: "lower", Arity: 1, Handler: stringFn(strings.ToLower)}, "String.toLowerCase")
	register(Function{Name: "upper", Arity: 1, Handler: stringFn(strings.ToUpper)}, "String.toUpperCase")
	register(Function{Name: "trim", Arity: 1, Handler: stringFn(strings.TrimSpace)}, "String.trim")
	register(Function{Name: "startsWith", Arity: 2, Handler: stringPredicate(strings.HasPrefix)}, "String.startsWith")
	register(Function{Name: "endsWith", Arity: 2, Handler: stringPredicate(strings.HasSuffix)}, "String.endsWith")
}

func containsFn(args []any) (any, error) {
	if s, ok := args[0].(string); ok {
		return strings.Contains(s, toString(args[1])), nil
	}
	if items, ok := toList(args[0]); ok {
		for _, item := range items {
			if equal(item, args[1]) {
				return true, nil
			}
		}
		return false, nil
	}
	if args[0] == nil {
		return false, nil
	}
	return nil, fmt.Errorf("cannot search in %T", args[0])
}

func indexOfFn(args []any) (any, error) {
	if s, ok := args[0].(string); ok {
		return float64(strings.Index(s, toString(args[1]))), nil
	}
	if items, ok := toList(args[0]); ok {
		for i, item := range items {
			if equal(item, args[1]) {
				return float64(i), nil
			}
		}
		return float64(-1), nil
	}
	if args[0] == nil {
		return float64(-1), nil
	}
	return nil, fmt.Errorf("cannot search in %T", args[0])
}

func countFn(args []any) (any, error) {
	switch v := args[0].(type) {
	case nil:
		return float64(0), nil
	case string:
		return float64(len(v)), nil
	case map[string]any:
		return float64(len(v)), nil
	}
	if items, ok := toList(args[0]); ok {
		return float64(len(items)), nil
	}
	return nil, fmt.Errorf("cannot count %T", args[0])
}

func stringFn(fn func(string) string) func([]any) (any, error) {
	return func(args []any) (any, error) {
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", args[0])
		}
		return fn(s), nil
	}
}

func stringPredicate(fn func(string, string) bool) func([]any) (any, error) {
	return func(args []any) (any, error) {
		s, ok := args[0].(string)
		if !ok {
			return false, nil
		}
		return fn(s, toString(args[1])), nil
	}
}
