package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/ncobase/nodesearch/nodesearch"
)

// DefaultLimit caps fallback results when no limit is configured
const DefaultLimit = 50

// Finder searches node properties with a LIKE match, scoped to the
// starting point and its descendants
type Finder struct {
	store *Store
	limit int
}

var _ nodesearch.Finder = (*Finder)(nil)

// NewFinder creates a database finder returning at most limit nodes
func NewFinder(store *Store, limit int) *Finder {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Finder{store: store, limit: limit}
}

// FindByProperties matches term case-insensitively against the serialized
// properties. An empty term matches every node in scope, an empty type list
// matches every type.
//
// Case folding relies on the database LOWER(). The sqlite driver replaces it
// with a Unicode-aware version; on postgres and mysql it follows the column
// encoding and collation, which must be UTF-8 for non-ASCII terms.
func (f *Finder) FindByProperties(ctx context.Context, term string, nodeTypes []string, sc nodesearch.SearchContext, startingPoint *nodesearch.Node) ([]*nodesearch.Node, error) {
	if sc == nil {
		return nil, nodesearch.ErrNoSearchContext
	}
	workspace, _ := sc.Variables()[WorkspaceVariable].(string)

	scope := RootPath
	if startingPoint != nil && startingPoint.Path != "" {
		scope = startingPoint.Path
	}

	query, args := f.buildQuery(workspace, scope, term, nodeTypes)
	rows, err := f.store.db.QueryContext(ctx, f.store.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("repository: find by properties: %w", err)
	}
	defer rows.Close()

	nodes := []*nodesearch.Node{}
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: find by properties: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: find by properties: %w", err)
	}
	return nodes, nil
}

func (f *Finder) buildQuery(workspace, scope, term string, nodeTypes []string) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT identifier, path, node_type, properties FROM nodes WHERE workspace = ?`)
	args := []any{workspace}

	if scope != RootPath {
		b.WriteString(` AND (path = ? OR path LIKE ? ESCAPE '!')`)
		args = append(args, scope, escapeLike(strings.TrimSuffix(scope, "/"))+"/%")
	}

	if term != "" {
		b.WriteString(` AND LOWER(properties) LIKE ? ESCAPE '!'`)
		args = append(args, "%"+escapeLike(strings.ToLower(term))+"%")
	}

	if len(nodeTypes) > 0 {
		b.WriteString(` AND node_type IN (`)
		for i, t := range nodeTypes {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("?")
			args = append(args, t)
		}
		b.WriteString(")")
	}

	fmt.Fprintf(&b, ` ORDER BY path LIMIT %d`, f.limit)
	return b.String(), args
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
