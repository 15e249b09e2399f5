// Package nodesearch maps free-text node searches onto configurable search
// engine query templates and falls back to a database search when no
// template applies.
//
// A call to Service.FindByProperties picks the first strategy whose condition
// holds, substitutes the placeholder tokens in its request template, runs the
// query against the engine and resolves the returned hits back into nodes of
// the caller's search context.
package nodesearch

import (
	"context"
	"errors"
)

// Placeholder tokens replaced inside request templates. A template value
// equal to a token is substituted even when it was meant literally.
const (
	TokenTerm            = "ARGUMENT_TERM"
	TokenSearchNodeTypes = "ARGUMENT_SEARCHNODETYPES"
	TokenStartingPoint   = "ARGUMENT_STARTINGPOINT"
)

// PathField is the hit field carrying the node path
const PathField = "__path"

var (
	ErrNoRootNode      = errors.New("nodesearch: search context has no root node")
	ErrNoEvaluator     = errors.New("nodesearch: condition evaluator is required")
	ErrNoSearcher      = errors.New("nodesearch: search client is required")
	ErrNoSearchContext = errors.New("nodesearch: search context is required")
)

// Node is a content repository node reference
type Node struct {
	Identifier string         `json:"identifier"`
	Path       string         `json:"path"`
	NodeType   string         `json:"nodeType"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Variables exposes the node to strategy conditions
func (n *Node) Variables() map[string]any {
	if n == nil {
		return nil
	}
	return map[string]any{
		"identifier": n.Identifier,
		"path":       n.Path,
		"nodeType":   n.NodeType,
		"properties": n.Properties,
	}
}

// SearchContext resolves nodes for one workspace
type SearchContext interface {
	// RootNode returns the workspace root.
	RootNode(ctx context.Context) (*Node, error)
	// GetNode resolves path relative to from, or absolutely when path starts
	// with "/". A missing node is (nil, nil).
	GetNode(ctx context.Context, from *Node, path string) (*Node, error)
	// Variables is exposed to conditions as `context`.
	Variables() map[string]any
}

// Finder searches nodes by their properties
type Finder interface {
	FindByProperties(ctx context.Context, term string, nodeTypes []string, sc SearchContext, startingPoint *Node) ([]*Node, error)
}

// FinderFunc adapts a function to Finder
type FinderFunc func(ctx context.Context, term string, nodeTypes []string, sc SearchContext, startingPoint *Node) ([]*Node, error)

func (f FinderFunc) FindByProperties(ctx context.Context, term string, nodeTypes []string, sc SearchContext, startingPoint *Node) ([]*Node, error) {
	return f(ctx, term, nodeTypes, sc, startingPoint)
}

// Evaluator validates and evaluates strategy conditions
type Evaluator interface {
	Validate(expr string) error
	EvaluateBool(ctx context.Context, expr string, variables map[string]any) (bool, error)
}
