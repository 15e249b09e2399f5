// Package elasticsearch provides the Elasticsearch search driver.
//
// This driver uses go-elasticsearch/v8 (github.com/elastic/go-elasticsearch/v8) as
// the underlying transport. It registers itself automatically when imported:
//
//	import _ "github.com/ncobase/nodesearch/data/elasticsearch"
//
// Example usage:
//
//	driver, err := data.GetSearchDriver("elasticsearch")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	adapter, err := driver.Connect(ctx, &config.Search{
//	    Elasticsearch: &config.Elasticsearch{Addresses: []string{"http://localhost:9200"}},
//	})
package elasticsearch

import (
	"context"
	"fmt"

	"github.com/ncobase/nodesearch/data"
	"github.com/ncobase/nodesearch/data/config"
	"github.com/ncobase/nodesearch/data/search"
)

// driver implements data.SearchDriver for Elasticsearch.
type driver struct{}

// Name returns the driver identifier used in configuration files.
func (d *driver) Name() string {
	return "elasticsearch"
}

// Connect builds an Elasticsearch adapter from cfg.Elasticsearch.
//
// Example addresses:
//
//	[]string{"http://localhost:9200"}
//	[]string{"https://es1.example.com:9200", "https://es2.example.com:9200"}
func (d *driver) Connect(_ context.Context, cfg *config.Search) (search.Adapter, error) {
	if cfg == nil || cfg.Elasticsearch == nil {
		return nil, fmt.Errorf("elasticsearch: configuration is missing")
	}

	if len(cfg.Elasticsearch.Addresses) == 0 {
		return nil, fmt.Errorf("elasticsearch: addresses are empty")
	}

	return NewEngine(cfg.Elasticsearch)
}

// init registers the Elasticsearch driver with the data package.
func init() {
	data.RegisterSearchDriver(&driver{})
}
