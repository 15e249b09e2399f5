package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ncobase/nodesearch/config"
	"github.com/ncobase/nodesearch/data"
	"github.com/ncobase/nodesearch/data/repository"
	"github.com/ncobase/nodesearch/data/search"
	"github.com/ncobase/nodesearch/expression"
	"github.com/ncobase/nodesearch/logging/logger"
	"github.com/ncobase/nodesearch/metrics"
	"github.com/ncobase/nodesearch/nodesearch"
	"github.com/ncobase/nodesearch/version"
	"github.com/prometheus/client_golang/prometheus"
)

// app holds the long-lived resources shared by services built from
// successive configurations
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	registry  *prometheus.Registry
	collector *metrics.Collector
	evaluator *expression.Engine
	client    *search.Client
	db        *sql.DB
	store     *repository.Store
	closers   []func()
}

// openOptions selects which backends a command needs
type openOptions struct {
	search   bool
	database bool
}

func openApp(ctx context.Context, configPath string, opts openOptions) (a *app, err error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	a = &app{
		cfg:       cfg,
		log:       logger.NewLogger(),
		registry:  prometheus.NewRegistry(),
		evaluator: expression.New(nil),
	}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	if cfg.Logger.Version == "" {
		cfg.Logger.Version = version.GetVersionInfo().Version
	}
	cleanup, err := a.log.Init(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	a.closers = append(a.closers, cleanup)

	if a.collector, err = metrics.NewCollector(a.registry); err != nil {
		return nil, err
	}

	if opts.database {
		if a.db, err = data.OpenDatabase(ctx, cfg.Data.Database); err != nil {
			return nil, err
		}
		db := a.db
		a.closers = append(a.closers, func() { _ = db.Close() })
		a.store = repository.NewStore(a.db, cfg.Data.Database.Driver)

		if cfg.Data.Database.Migrate {
			if err = a.store.Migrate(ctx); err != nil {
				return nil, err
			}
		}
	}

	if opts.search {
		if a.client, err = data.OpenSearch(ctx, cfg.Data.Search, search.WithCollector(a.collector)); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// newService builds a search service from cfg on the app's shared backends
func (a *app) newService(ctx context.Context, cfg *config.Config) (*nodesearch.Service, error) {
	if a.client == nil || a.store == nil {
		return nil, errors.New("search engine and database are required")
	}

	for _, err := range validateStrategies(a.evaluator, cfg.NodeSearch.Strategies) {
		a.log.Warnf(ctx, "%v", err)
	}

	return nodesearch.NewService(nodesearch.Config{
		Strategies:            cfg.NodeSearch.Strategies,
		Evaluator:             a.evaluator,
		Searcher:              a.client,
		Fallback:              repository.NewFinder(a.store, cfg.NodeSearch.FallbackLimit),
		Observer:              nodesearch.Observers{nodesearch.NewLogObserver(a.log), a.collector},
		Index:                 cfg.Data.Search.Index,
		LogRequests:           cfg.NodeSearch.LogRequests,
		FallBackOnEmptyResult: cfg.NodeSearch.FallBackOnEmptyResult,
	})
}

// contexts returns the repository search context of a workspace
func (a *app) contexts(workspace string) nodesearch.SearchContext {
	return a.store.Context(workspace)
}

// Close releases resources in reverse order
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// validateStrategies reports strategies whose condition would always be skipped
func validateStrategies(ev nodesearch.Evaluator, strategies nodesearch.Strategies) []error {
	var errs []error
	for _, s := range strategies.Sorted() {
		if s.Condition == "" {
			errs = append(errs, fmt.Errorf("strategy %s: condition is empty", s.Identifier))
			continue
		}
		if err := ev.Validate(s.Condition); err != nil {
			errs = append(errs, fmt.Errorf("strategy %s: invalid condition: %w", s.Identifier, err))
		}
		if !s.HasTemplate() {
			errs = append(errs, fmt.Errorf("strategy %s: request template is missing", s.Identifier))
		}
	}
	return errs
}
