package repository

import (
	"context"
	"path"
	"strings"

	"github.com/ncobase/nodesearch/nodesearch"
)

// WorkspaceVariable is the context variable naming the workspace
const WorkspaceVariable = "workspaceName"

// Context resolves nodes of one workspace
type Context struct {
	store     *Store
	workspace string
}

var _ nodesearch.SearchContext = (*Context)(nil)

// Workspace returns the workspace name
func (c *Context) Workspace() string {
	return c.workspace
}

// RootNode returns the node stored at "/", nil when the workspace is empty
func (c *Context) RootNode(ctx context.Context) (*nodesearch.Node, error) {
	return c.store.Get(ctx, c.workspace, RootPath)
}

// GetNode resolves p absolutely or relative to from
func (c *Context) GetNode(ctx context.Context, from *nodesearch.Node, p string) (*nodesearch.Node, error) {
	if !strings.HasPrefix(p, "/") {
		base := RootPath
		if from != nil {
			base = from.Path
		}
		p = path.Join(base, p)
	}
	return c.store.Get(ctx, c.workspace, p)
}

func (c *Context) Variables() map[string]any {
	return map[string]any{WorkspaceVariable: c.workspace}
}
