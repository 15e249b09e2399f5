// Package metrics exposes search engine and node search activity as
// Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ncobase/nodesearch/data/search"
	"github.com/ncobase/nodesearch/nodesearch"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nodesearch"

// Collector records engine queries and search events. It implements both
// search.Collector and nodesearch.Observer.
type Collector struct {
	queriesTotal   *prometheus.CounterVec
	queryDuration  *prometheus.HistogramVec
	eventsTotal    *prometheus.CounterVec
	strategiesUsed *prometheus.CounterVec
	nodesReturned  prometheus.Histogram
}

var (
	_ search.Collector    = (*Collector)(nil)
	_ nodesearch.Observer = (*Collector)(nil)
)

// NewCollector creates the collector and registers it with reg. Metrics that
// are already registered, e.g. after a config reload, are reused.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		queriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "engine_queries_total",
				Help:      "Total number of search engine queries",
			},
			[]string{"engine", "status"},
		),
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "engine_query_duration_seconds",
				Help:      "Search engine query duration in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"engine"},
		),
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_total",
				Help:      "Node search events by kind and level",
			},
			[]string{"kind", "level"},
		),
		strategiesUsed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "strategy_selected_total",
				Help:      "How often each search strategy was selected",
			},
			[]string{"strategy"},
		),
		nodesReturned: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "nodes_returned",
				Help:      "Number of nodes returned per mapped search",
				Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
	}

	if reg == nil {
		return c, nil
	}

	var err error
	if c.queriesTotal, err = register(reg, c.queriesTotal); err != nil {
		return nil, err
	}
	if c.queryDuration, err = register(reg, c.queryDuration); err != nil {
		return nil, err
	}
	if c.eventsTotal, err = register(reg, c.eventsTotal); err != nil {
		return nil, err
	}
	if c.strategiesUsed, err = register(reg, c.strategiesUsed); err != nil {
		return nil, err
	}
	if c.nodesReturned, err = register(reg, c.nodesReturned); err != nil {
		return nil, err
	}
	return c, nil
}

// register adds m to reg, returning the existing collector when an identical
// one is already registered.
func register[T prometheus.Collector](reg prometheus.Registerer, m T) (T, error) {
	if err := reg.Register(m); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return m, err
	}
	return m, nil
}

// SearchQuery implements search.Collector
func (c *Collector) SearchQuery(engine string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.queriesTotal.WithLabelValues(engine, status).Inc()
	c.queryDuration.WithLabelValues(engine).Observe(duration.Seconds())
}

// Observe implements nodesearch.Observer
func (c *Collector) Observe(_ context.Context, e nodesearch.Event) {
	c.eventsTotal.WithLabelValues(string(e.Kind), e.Level.String()).Inc()

	switch e.Kind {
	case nodesearch.EventStrategySelected:
		c.strategiesUsed.WithLabelValues(strings.ToLower(e.Strategy)).Inc()
	case nodesearch.EventNodesMapped:
		c.nodesReturned.Observe(float64(e.Nodes))
	}
}
