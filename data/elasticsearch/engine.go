package elasticsearch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/ncobase/nodesearch/data/config"
	"github.com/ncobase/nodesearch/data/search"
)

// Engine sends raw query DSL bodies to an Elasticsearch cluster
type Engine struct {
	client *elasticsearch.Client
}

// NewEngine creates an engine for the given cluster. Retries are disabled:
// a failed query is reported once and the caller decides what to do.
func NewEngine(cfg *config.Elasticsearch) (*Engine, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    cfg.Addresses,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DisableRetry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client creation error: %w", err)
	}

	return &Engine{client: es}, nil
}

// Type returns search.Elasticsearch
func (e *Engine) Type() search.Engine {
	return search.Elasticsearch
}

// Search issues GET /{index}/_search with req.Body as the request body
func (e *Engine) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	if e == nil || e.client == nil {
		return nil, search.ErrClientNotAvailable
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, search.SearchPath(req.Index), bytes.NewReader(req.Body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	res, err := e.client.Perform(httpReq)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search error: %w", err)
	}
	defer res.Body.Close()

	return search.DecodeResponse(res.StatusCode, res.Body)
}
