package nodesearch

import (
	"context"
	"path"
	"strings"

	"github.com/ncobase/nodesearch/data/search"
)

// memContext is an in-memory search context keyed by absolute path
type memContext struct {
	workspace string
	nodes     map[string]*Node
	rootErr   error
}

func newMemContext(nodes ...*Node) *memContext {
	c := &memContext{workspace: "live", nodes: map[string]*Node{
		"/": {Identifier: "root", Path: "/", NodeType: "unstructured"},
	}}
	for _, n := range nodes {
		c.nodes[n.Path] = n
	}
	return c
}

func (c *memContext) RootNode(context.Context) (*Node, error) {
	if c.rootErr != nil {
		return nil, c.rootErr
	}
	return c.nodes["/"], nil
}

func (c *memContext) GetNode(_ context.Context, from *Node, p string) (*Node, error) {
	if !strings.HasPrefix(p, "/") {
		p = path.Join(from.Path, p)
	}
	return c.nodes[path.Clean(p)], nil
}

func (c *memContext) Variables() map[string]any {
	return map[string]any{"workspaceName": c.workspace}
}

// fakeSearcher returns canned hits and records the requests it received
type fakeSearcher struct {
	hits     []search.Hit
	err      error
	requests []*search.Request
}

func (f *fakeSearcher) Search(_ context.Context, req *search.Request) (*search.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &search.Response{StatusCode: 200, Hits: f.hits, Total: int64(len(f.hits))}, nil
}

// countingFinder is a fallback stub returning fixed nodes
type countingFinder struct {
	calls int
	nodes []*Node
	err   error
}

func (f *countingFinder) FindByProperties(context.Context, string, []string, SearchContext, *Node) ([]*Node, error) {
	f.calls++
	return f.nodes, f.err
}

func pathHit(id string, p any) search.Hit {
	return search.Hit{ID: id, Source: map[string]any{PathField: p}}
}

// stubEvaluator accepts any condition; only "true" holds
type stubEvaluator struct{}

func (stubEvaluator) Validate(string) error { return nil }

func (stubEvaluator) EvaluateBool(_ context.Context, expr string, _ map[string]any) (bool, error) {
	return expr == "true", nil
}
