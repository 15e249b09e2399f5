package nodesearch

import (
	"context"
	"sync"
	"time"

	"github.com/ncobase/nodesearch/logging/logger"
	"github.com/sirupsen/logrus"
)

// Level is the severity of an event
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// EventKind identifies what happened during a search
type EventKind string

const (
	EventStrategySkipped  EventKind = "strategy_skipped"
	EventStrategySelected EventKind = "strategy_selected"
	EventNoStrategy       EventKind = "no_strategy"
	EventMissingTemplate  EventKind = "missing_template"
	EventQueryFailed      EventKind = "query_failed"
	EventQueryExecuted    EventKind = "query_executed"
	EventEmptyResult      EventKind = "empty_result"
	EventResolveFailed    EventKind = "resolve_failed"
	EventNodesMapped      EventKind = "nodes_mapped"
)

// Event is emitted on the observer side channel. Observers never influence
// the search result.
type Event struct {
	Kind     EventKind
	Level    Level
	Message  string
	Strategy string
	Query    string
	Duration time.Duration
	Hits     int
	Total    int64
	Nodes    int
	Err      error
}

// Observer receives search events
type Observer interface {
	Observe(ctx context.Context, e Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(ctx context.Context, e Event)

func (f ObserverFunc) Observe(ctx context.Context, e Event) { f(ctx, e) }

// Observers fans an event out to every observer in order
type Observers []Observer

func (o Observers) Observe(ctx context.Context, e Event) {
	for _, observer := range o {
		if observer != nil {
			observer.Observe(ctx, e)
		}
	}
}

// NopObserver discards events
type NopObserver struct{}

func (NopObserver) Observe(context.Context, Event) {}

// LogObserver writes events through the structured logger
type LogObserver struct {
	logger *logger.Logger
}

// NewLogObserver returns an observer logging to l, or to the standard logger
// when l is nil.
func NewLogObserver(l *logger.Logger) *LogObserver {
	if l == nil {
		l = logger.StdLogger()
	}
	return &LogObserver{logger: l}
}

func (o *LogObserver) Observe(ctx context.Context, e Event) {
	fields := logrus.Fields{
		logger.ComponentKey: "nodesearch",
		"event":             string(e.Kind),
	}
	if e.Strategy != "" {
		fields["strategy"] = e.Strategy
	}
	if e.Query != "" {
		fields["query"] = e.Query
	}
	if e.Duration > 0 {
		fields["duration_ms"] = float64(e.Duration.Microseconds()) / 1000
	}
	if e.Kind == EventQueryExecuted {
		fields["hits"] = e.Hits
		fields["total"] = e.Total
	}
	if e.Kind == EventNodesMapped {
		fields["nodes"] = e.Nodes
	}

	entry := o.logger.WithContextFields(ctx, fields)
	if e.Err != nil {
		entry = entry.WithError(e.Err)
	}

	switch e.Level {
	case LevelError:
		entry.Error(e.Message)
	case LevelWarn:
		entry.Warn(e.Message)
	case LevelInfo:
		entry.Info(e.Message)
	default:
		entry.Debug(e.Message)
	}
}

// Recorder keeps every observed event; useful in tests
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Observe(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Kinds returns the recorded event kinds in order
func (r *Recorder) Kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]EventKind, len(r.events))
	for i, e := range r.events {
		kinds[i] = e.Kind
	}
	return kinds
}

// Has reports whether an event of kind was recorded
func (r *Recorder) Has(kind EventKind) bool {
	for _, k := range r.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}
