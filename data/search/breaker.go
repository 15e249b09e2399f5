package search

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerSettings tunes the circuit breaker around an adapter
type BreakerSettings struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

// DefaultBreakerSettings mirrors the extension manager defaults
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  100,
		Interval:     5 * time.Second,
		Timeout:      3 * time.Second,
		MinRequests:  3,
		FailureRatio: 0.6,
	}
}

// breaker fails fast while the engine keeps failing
type breaker struct {
	adapter Adapter
	cb      *gobreaker.CircuitBreaker
}

// NewBreaker wraps adapter in a circuit breaker. Failures, including non-200
// responses, count towards tripping; while open, Search returns
// gobreaker.ErrOpenState without touching the engine.
func NewBreaker(adapter Adapter, s BreakerSettings) Adapter {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        string(adapter.Type()),
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= s.FailureRatio
		},
	})
	return &breaker{adapter: adapter, cb: cb}
}

func (b *breaker) Type() Engine {
	return b.adapter.Type()
}

func (b *breaker) Search(ctx context.Context, req *Request) (*Response, error) {
	result, err := b.cb.Execute(func() (any, error) {
		return b.adapter.Search(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return result.(*Response), nil
}

// Healthy reports gobreaker.ErrOpenState while the circuit is open
func (b *breaker) Healthy() error {
	if b.cb.State() == gobreaker.StateOpen {
		return gobreaker.ErrOpenState
	}
	return nil
}
