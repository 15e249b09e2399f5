package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ncobase/nodesearch/data/config"
	"github.com/ncobase/nodesearch/data/search"
)

// ErrDatabaseNotConfigured is returned when no database driver/source is set
var ErrDatabaseNotConfigured = errors.New("data: database not configured")

// OpenDatabase connects the configured database through its registered driver
func OpenDatabase(ctx context.Context, cfg *config.Database) (*sql.DB, error) {
	if !cfg.IsSet() {
		return nil, ErrDatabaseNotConfigured
	}

	driver, err := GetDatabaseDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := driver.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("data: connect %s: %w", cfg.Driver, err)
	}
	return db, nil
}

// OpenSearch builds the search client for the configured engine. The adapter
// is wrapped in a circuit breaker unless disabled.
func OpenSearch(ctx context.Context, cfg *config.Search, opts ...search.Option) (*search.Client, error) {
	if cfg == nil {
		return nil, search.ErrClientNotAvailable
	}

	driver, err := GetSearchDriver(cfg.Engine)
	if err != nil {
		return nil, err
	}

	adapter, err := driver.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("data: connect %s: %w", cfg.Engine, err)
	}

	if cfg.Breaker != nil && cfg.Breaker.Enabled {
		adapter = search.NewBreaker(adapter, breakerSettings(cfg.Breaker))
	}

	opts = append([]search.Option{search.WithIndexPrefix(cfg.IndexPrefix), search.WithTimeout(cfg.Timeout)}, opts...)
	return search.NewClient(adapter, opts...), nil
}

func breakerSettings(b *config.Breaker) search.BreakerSettings {
	s := search.DefaultBreakerSettings()
	if b.MaxRequests > 0 {
		s.MaxRequests = b.MaxRequests
	}
	if b.Interval > 0 {
		s.Interval = b.Interval
	}
	if b.Timeout > 0 {
		s.Timeout = b.Timeout
	}
	if b.MinRequests > 0 {
		s.MinRequests = b.MinRequests
	}
	if b.FailureRatio > 0 {
		s.FailureRatio = b.FailureRatio
	}
	return s
}
