// Package opensearch provides the OpenSearch search driver.
//
// This driver uses opensearch-go (github.com/opensearch-project/opensearch-go/v4)
// as the underlying transport. It registers itself automatically when imported:
//
//	import _ "github.com/ncobase/nodesearch/data/opensearch"
//
// OpenSearch accepts the same query DSL as Elasticsearch, so strategy
// templates work unchanged against either engine.
package opensearch

import (
	"context"
	"fmt"

	"github.com/ncobase/nodesearch/data"
	"github.com/ncobase/nodesearch/data/config"
	"github.com/ncobase/nodesearch/data/search"
)

// driver implements data.SearchDriver for OpenSearch.
type driver struct{}

// Name returns the driver identifier used in configuration files.
func (d *driver) Name() string {
	return "opensearch"
}

// Connect builds an OpenSearch adapter from cfg.OpenSearch.
//
// Example addresses:
//
//	[]string{"https://localhost:9200"}
//	[]string{"https://search-domain.us-east-1.es.amazonaws.com"}
func (d *driver) Connect(_ context.Context, cfg *config.Search) (search.Adapter, error) {
	if cfg == nil || cfg.OpenSearch == nil {
		return nil, fmt.Errorf("opensearch: configuration is missing")
	}

	if len(cfg.OpenSearch.Addresses) == 0 {
		return nil, fmt.Errorf("opensearch: addresses are empty")
	}

	return NewEngine(cfg.OpenSearch)
}

func init() {
	data.RegisterSearchDriver(&driver{})
}
