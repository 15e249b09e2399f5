package nodesearch

import (
	"context"
	"sort"
)

// Strategy is a conditionally applicable query template
type Strategy struct {
	Identifier string         `yaml:"-" json:"identifier"`
	Position   int            `yaml:"position" json:"position"`
	Condition  string         `yaml:"condition" json:"condition"`
	Request    map[string]any `yaml:"request" json:"request,omitempty"`
}

// HasTemplate reports whether the strategy carries a request template
func (s *Strategy) HasTemplate() bool {
	return len(s.Request) > 0
}

// Strategies is an ordered strategy list in declaration order
type Strategies []Strategy

// Sorted returns a copy ordered by position; equal positions keep their
// declaration order.
func (s Strategies) Sorted() Strategies {
	sorted := make(Strategies, len(s))
	copy(sorted, s)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return sorted
}

// Lookup returns the strategy with the given identifier
func (s Strategies) Lookup(identifier string) (*Strategy, bool) {
	for i := range s {
		if s[i].Identifier == identifier {
			return &s[i], true
		}
	}
	return nil, false
}

// conditionVariables builds the binding every condition is evaluated against
func conditionVariables(term string, nodeTypes []string, sc SearchContext, startingPoint *Node) map[string]any {
	vars := map[string]any{
		"term":            term,
		"searchNodeTypes": nodeTypes,
		"context":         sc.Variables(),
		"startingPoint":   nil,
	}
	if startingPoint != nil {
		vars["startingPoint"] = startingPoint.Variables()
	}
	return vars
}

// selectStrategy returns the first strategy, in position order, whose
// condition evaluates to true. Strategies without a condition, with an
// invalid condition or whose evaluation fails are skipped.
func selectStrategy(ctx context.Context, strategies Strategies, ev Evaluator, vars map[string]any, obs Observer) (*Strategy, bool) {
	for i := range strategies {
		s := &strategies[i]

		if s.Condition == "" {
			obs.Observe(ctx, Event{Kind: EventStrategySkipped, Level: LevelWarn, Strategy: s.Identifier,
				Message: "strategy has no condition"})
			continue
		}
		if err := ev.Validate(s.Condition); err != nil {
			obs.Observe(ctx, Event{Kind: EventStrategySkipped, Level: LevelWarn, Strategy: s.Identifier,
				Message: "strategy condition is invalid", Err: err})
			continue
		}

		ok, err := ev.EvaluateBool(ctx, s.Condition, vars)
		if err != nil {
			obs.Observe(ctx, Event{Kind: EventStrategySkipped, Level: LevelWarn, Strategy: s.Identifier,
				Message: "strategy condition failed to evaluate", Err: err})
			continue
		}
		if ok {
			return s, true
		}
	}
	return nil, false
}
