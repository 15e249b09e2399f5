package search

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/ncobase/nodesearch/data/search"

// Client wraps an adapter with index prefixing, timing, tracing and metrics
type Client struct {
	adapter     Adapter
	collector   Collector
	indexPrefix string
	timeout     time.Duration
	tracer      trace.Tracer
}

// Option configures a Client
type Option func(*Client)

// WithCollector sets the metrics collector
func WithCollector(collector Collector) Option {
	return func(c *Client) {
		if collector != nil {
			c.collector = collector
		}
	}
}

// WithIndexPrefix prefixes every non-empty index name with "<prefix>-"
func WithIndexPrefix(prefix string) Option {
	return func(c *Client) {
		c.indexPrefix = prefix
	}
}

// WithTimeout bounds each query; zero leaves the caller's deadline alone
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithTracerProvider overrides the global OpenTelemetry tracer provider
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

// NewClient creates a new search client around the given adapter
func NewClient(adapter Adapter, opts ...Option) *Client {
	c := &Client{
		adapter:   adapter,
		collector: NoOpCollector{},
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Engine returns the type of the underlying adapter
func (c *Client) Engine() Engine {
	if c.adapter == nil {
		return ""
	}
	return c.adapter.Type()
}

func (c *Client) buildIndexName(index string) string {
	if c.indexPrefix == "" || index == "" {
		return index
	}
	return fmt.Sprintf("%s-%s", c.indexPrefix, index)
}

// Search executes one query and records its duration
func (c *Client) Search(ctx context.Context, req *Request) (*Response, error) {
	if c == nil || c.adapter == nil {
		return nil, ErrClientNotAvailable
	}

	engine := c.adapter.Type()
	prefixed := *req
	prefixed.Index = c.buildIndexName(req.Index)

	ctx, span := c.tracer.Start(ctx, "search.query", trace.WithAttributes(
		attribute.String("search.engine", string(engine)),
		attribute.String("search.index", prefixed.Index),
	))
	defer span.End()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.adapter.Search(ctx, &prefixed)
	duration := time.Since(start)

	c.collector.SearchQuery(string(engine), duration, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp.Duration = duration
	resp.Engine = engine
	span.SetAttributes(
		attribute.Int("search.hits", len(resp.Hits)),
		attribute.Int64("search.total", resp.Total),
	)
	return resp, nil
}

// Healthy reports whether queries can currently reach the engine. Adapters
// without a health signal are assumed healthy.
func (c *Client) Healthy() error {
	if c == nil || c.adapter == nil {
		return ErrClientNotAvailable
	}
	if h, ok := c.adapter.(interface{ Healthy() error }); ok {
		return h.Healthy()
	}
	return nil
}
