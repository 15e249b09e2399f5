package nodesearch

import (
	"context"
	"fmt"

	"github.com/ncobase/nodesearch/data/search"
)

// Config wires a Service
type Config struct {
	// Strategies in declaration order.
	Strategies Strategies
	Evaluator  Evaluator
	Searcher   search.Searcher
	// Fallback serves requests no strategy applies to. Nil means an empty
	// result in that case.
	Fallback Finder
	Observer Observer
	// Index is the queried index; empty queries the whole cluster.
	Index                 string
	LogRequests           bool
	FallBackOnEmptyResult bool
}

// Service finds nodes through the configured search strategies. It is
// immutable and safe for concurrent use.
type Service struct {
	strategies            Strategies
	evaluator             Evaluator
	searcher              search.Searcher
	fallback              Finder
	observer              Observer
	index                 string
	logRequests           bool
	fallBackOnEmptyResult bool
}

var _ Finder = (*Service)(nil)

// NewService creates a service; strategies are ordered by position once here.
func NewService(cfg Config) (*Service, error) {
	if cfg.Evaluator == nil {
		return nil, ErrNoEvaluator
	}
	if cfg.Searcher == nil {
		return nil, ErrNoSearcher
	}

	observer := cfg.Observer
	if observer == nil {
		observer = NopObserver{}
	}

	return &Service{
		strategies:            cfg.Strategies.Sorted(),
		evaluator:             cfg.Evaluator,
		searcher:              cfg.Searcher,
		fallback:              cfg.Fallback,
		observer:              observer,
		index:                 cfg.Index,
		logRequests:           cfg.LogRequests,
		fallBackOnEmptyResult: cfg.FallBackOnEmptyResult,
	}, nil
}

// Strategies returns the strategies in evaluation order
func (s *Service) Strategies() Strategies {
	return append(Strategies(nil), s.strategies...)
}

// FindByProperties searches nodes matching term whose type is one of
// nodeTypes, below startingPoint or the context root.
//
// Engine failures and misconfigured strategies degrade to an empty result.
// Errors are only returned when the root node cannot be resolved or the
// fallback finder itself fails.
func (s *Service) FindByProperties(ctx context.Context, term string, nodeTypes []string, sc SearchContext, startingPoint *Node) ([]*Node, error) {
	if sc == nil {
		return nil, ErrNoSearchContext
	}

	contextNode := startingPoint
	if contextNode == nil {
		root, err := sc.RootNode(ctx)
		if err != nil {
			return nil, fmt.Errorf("nodesearch: resolve root node: %w", err)
		}
		if root == nil {
			return nil, ErrNoRootNode
		}
		contextNode = root
	}

	vars := conditionVariables(term, nodeTypes, sc, startingPoint)
	strategy, found := selectStrategy(ctx, s.strategies, s.evaluator, vars, s.observer)
	if !found {
		s.observer.Observe(ctx, Event{Kind: EventNoStrategy, Level: LevelInfo,
			Message: "No search strategy found, using fallback search"})
		return s.delegate(ctx, term, nodeTypes, sc, startingPoint)
	}

	s.observer.Observe(ctx, Event{Kind: EventStrategySelected, Level: LevelDebug, Strategy: strategy.Identifier,
		Message: "Using search strategy " + strategy.Identifier})

	if !strategy.HasTemplate() {
		s.observer.Observe(ctx, Event{Kind: EventMissingTemplate, Level: LevelError, Strategy: strategy.Identifier,
			Message: "Search strategy " + strategy.Identifier + " has no request template"})
		return []*Node{}, nil
	}

	query := Substitute(strategy.Request, NewReplacements(term, nodeTypes, contextNode.Path))

	hits, ok := s.executeQuery(ctx, strategy.Identifier, query)
	if !ok {
		return []*Node{}, nil
	}

	nodes := s.mapHits(ctx, sc, contextNode, hits)
	if len(nodes) == 0 && s.fallBackOnEmptyResult {
		s.observer.Observe(ctx, Event{Kind: EventEmptyResult, Level: LevelInfo, Strategy: strategy.Identifier,
			Message: "Search returned no nodes, using fallback search"})
		return s.delegate(ctx, term, nodeTypes, sc, startingPoint)
	}

	return nodes, nil
}

func (s *Service) delegate(ctx context.Context, term string, nodeTypes []string, sc SearchContext, startingPoint *Node) ([]*Node, error) {
	if s.fallback == nil {
		return []*Node{}, nil
	}
	return s.fallback.FindByProperties(ctx, term, nodeTypes, sc, startingPoint)
}
