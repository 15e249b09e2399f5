// Package expression evaluates the small boolean condition language used to
// decide which search strategy applies to a request.
//
// Conditions may be written bare or wrapped Eel-style in ${…}:
//
//	engine := expression.New(nil)
//	ok, err := engine.EvaluateBool(ctx, "${contains(searchNodeTypes, 'Neos.Neos:Document')}", map[string]any{
//	    "searchNodeTypes": []string{"Neos.Neos:Document"},
//	})
//
// The language supports number, string, boolean, null and list literals,
// dotted member access and indexing, the operators ! && || == != < <= > >= + - * / %
// (plus and/or/not keywords) and a set of registered helper functions.
package expression

import (
	"context"
	"fmt"
	"strings"
)

// Engine compiles and evaluates expressions.
type Engine struct {
	functions map[string]Function
	cache     *programCache
	config    *Config
}

// New creates a new expression engine with the given configuration.
func New(config *Config) *Engine {
	if config == nil {
		config = DefaultConfig()
	}

	e := &Engine{
		functions: make(map[string]Function),
		cache:     newProgramCache(config.CacheSize),
		config:    config,
	}
	e.registerDefaultFunctions()
	return e
}

// RegisterFunction registers an additional helper. It is not safe to call
// concurrently with evaluation; register helpers before sharing the engine.
func (e *Engine) RegisterFunction(fn Function) error {
	if fn.Name == "" {
		return fmt.Errorf("function name cannot be empty")
	}
	if fn.Handler == nil {
		return fmt.Errorf("handler for function %s cannot be nil", fn.Name)
	}
	if _, exists := e.functions[fn.Name]; exists {
		return fmt.Errorf("function %s already registered", fn.Name)
	}
	e.functions[fn.Name] = fn
	return nil
}

// Validate reports whether expr is syntactically valid.
func (e *Engine) Validate(expr string) error {
	_, err := e.compile(expr)
	return err
}

// Evaluate evaluates expr against the given variables. A panic raised by a
// helper or operator is returned as a runtime error.
func (e *Engine) Evaluate(ctx context.Context, expr string, variables map[string]any) (result any, err error) {
	node, err := e.compile(expr)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			result, err = nil, runtimeError("evaluation panicked: %v", r)
		}
	}()

	s := &scope{ctx: ctx, variables: variables, functions: e.functions}
	if s.variables == nil {
		s.variables = map[string]any{}
	}
	return node.eval(s)
}

// EvaluateBool evaluates expr and requires a boolean result.
func (e *Engine) EvaluateBool(ctx context.Context, expr string, variables map[string]any) (bool, error) {
	result, err := e.Evaluate(ctx, expr, variables)
	if err != nil {
		return false, err
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("%w: got %T", ErrNotBoolean, result)
	}
	return b, nil
}

// CacheStats returns compiled program cache statistics.
func (e *Engine) CacheStats() CacheStats {
	return e.cache.Stats()
}

// compile strips the optional wrapper, tokenizes and parses, using the cache
func (e *Engine) compile(expr string) (Node, error) {
	source, err := unwrap(expr)
	if err != nil {
		return nil, err
	}
	if e.config.MaxLength > 0 && len(source) > e.config.MaxLength {
		return nil, fmt.Errorf("expression length %d exceeds maximum %d", len(source), e.config.MaxLength)
	}

	if node, ok := e.cache.Get(source); ok {
		return node, nil
	}

	tokens, err := tokenize(source)
	if err != nil {
		return nil, err
	}
	node, err := parse(tokens, e.config.MaxDepth)
	if err != nil {
		return nil, err
	}

	e.cache.Set(source, node)
	return node, nil
}

// unwrap removes a surrounding ${ } and rejects blank input
func unwrap(expr string) (string, error) {
	source := strings.TrimSpace(expr)
	if strings.HasPrefix(source, "${") {
		if !strings.HasSuffix(source, "}") {
			return "", syntaxError(0, "unterminated ${ wrapper")
		}
		source = strings.TrimSpace(source[2 : len(source)-1])
	}
	if source == "" {
		return "", ErrEmptyExpression
	}
	return source, nil
}
