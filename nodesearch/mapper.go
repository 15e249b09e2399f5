package nodesearch

import (
	"context"
	"time"

	"github.com/ncobase/nodesearch/data/search"
)

// hitPath extracts the node path of a hit. The fields projection wins over
// the source document; list values contribute their first element.
//
// A present but empty fields.__path list drops the hit. It does not fall
// back to _source.__path; only a missing or null fields entry does.
func hitPath(hit search.Hit) (string, bool) {
	value, ok := hit.Fields[PathField]
	if !ok || value == nil {
		value, ok = hit.Source[PathField]
		if !ok {
			return "", false
		}
	}

	switch v := value.(type) {
	case []any:
		if len(v) == 0 {
			return "", false
		}
		value = v[0]
	case []string:
		if len(v) == 0 {
			return "", false
		}
		value = v[0]
	}

	path, ok := value.(string)
	if !ok || path == "" {
		return "", false
	}
	return path, true
}

// mapHits resolves hits to nodes relative to the context node. Unresolvable
// hits are dropped; nodes are deduplicated by identifier in first-seen order.
func (s *Service) mapHits(ctx context.Context, sc SearchContext, contextNode *Node, hits []search.Hit) []*Node {
	start := time.Now()
	nodes := make([]*Node, 0, len(hits))
	seen := make(map[string]struct{}, len(hits))

	for _, hit := range hits {
		path, ok := hitPath(hit)
		if !ok {
			continue
		}

		node, err := sc.GetNode(ctx, contextNode, path)
		if err != nil {
			s.observer.Observe(ctx, Event{Kind: EventResolveFailed, Level: LevelWarn,
				Message: "Could not resolve search hit " + path, Err: err})
			continue
		}
		if node == nil {
			continue
		}

		if _, dup := seen[node.Identifier]; dup {
			continue
		}
		seen[node.Identifier] = struct{}{}
		nodes = append(nodes, node)
	}

	s.observer.Observe(ctx, Event{Kind: EventNodesMapped, Level: LevelDebug,
		Message: "Returned nodes", Nodes: len(nodes), Duration: time.Since(start)})
	return nodes
}
