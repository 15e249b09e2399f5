package search

import (
	"context"
	"errors"
	"time"
)

// Engine represents search engine type
type Engine string

const (
	Elasticsearch Engine = "elasticsearch"
	OpenSearch    Engine = "opensearch"
)

var (
	ErrUnexpectedStatus   = errors.New("search engine returned unexpected status")
	ErrMalformedResponse  = errors.New("search engine returned malformed response")
	ErrClientNotAvailable = errors.New("search engine client not available")
)

// Request is a raw query DSL request against one index
type Request struct {
	// Index is the target index; empty searches the whole cluster.
	Index string
	// Body is the JSON encoded query.
	Body []byte
}

// Response represents a successful search response
type Response struct {
	StatusCode int           `json:"status_code"`
	Took       time.Duration `json:"took"`
	Total      int64         `json:"total"`
	Hits       []Hit         `json:"hits"`
	Duration   time.Duration `json:"duration"`
	Engine     Engine        `json:"engine"`
}

// Hit represents one returned document
type Hit struct {
	ID     string         `json:"_id"`
	Index  string         `json:"_index"`
	Score  float64        `json:"_score"`
	Fields map[string]any `json:"fields,omitempty"`
	Source map[string]any `json:"_source,omitempty"`
}

// Adapter interface for search engine implementations
type Adapter interface {
	Search(ctx context.Context, req *Request) (*Response, error)
	Type() Engine
}

// Searcher is the query side consumed by the node search service
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Collector interface for metrics
type Collector interface {
	SearchQuery(engine string, duration time.Duration, err error)
}

// NoOpCollector implementation
type NoOpCollector struct{}

func (NoOpCollector) SearchQuery(string, time.Duration, error) {}
