package opensearch

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/http"

	"github.com/ncobase/nodesearch/data/config"
	"github.com/ncobase/nodesearch/data/search"
	"github.com/opensearch-project/opensearch-go/v4"
)

// Engine sends raw query DSL bodies to an OpenSearch cluster
type Engine struct {
	client *opensearch.Client
}

// NewEngine creates an engine for the given cluster
func NewEngine(cfg *config.OpenSearch) (*Engine, error) {
	// Configure transport with TLS options
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipTLS,
		},
	}

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses:    cfg.Addresses,
		Username:     cfg.Username,
		Password:     cfg.Password,
		Transport:    transport,
		DisableRetry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opensearch client creation error: %w", err)
	}

	return &Engine{client: client}, nil
}

// Type returns search.OpenSearch
func (e *Engine) Type() search.Engine {
	return search.OpenSearch
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

	res, err := e.client.Perform(httpReq)
	if err != nil {
		return nil, fmt.Errorf("opensearch search error: %w", err)
	}
	defer res.Body.Close()

	return search.DecodeResponse(res.StatusCode, res.Body)
}
