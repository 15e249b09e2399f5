package nodesearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ncobase/nodesearch/ctxutil"
	"github.com/ncobase/nodesearch/logging/logger"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogObserverWritesStructuredEntries(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewLogger()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.DebugLevel)

	ctx := ctxutil.SetTraceID(context.Background(), "trace-1")
	NewLogObserver(l).Observe(ctx, Event{
		Kind:     EventQueryFailed,
		Level:    LevelError,
		Message:  "Error while executing the search query",
		Strategy: "default",
		Query:    `{"size":1}`,
		Duration: 1500 * time.Microsecond,
		Err:      errors.New("status 500"),
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "query_failed", entry["event"])
	assert.Equal(t, "default", entry["strategy"])
	assert.Equal(t, "nodesearch", entry[logger.ComponentKey])
	assert.Equal(t, "trace-1", entry[ctxutil.TraceIDKey])
	assert.Equal(t, 1.5, entry["duration_ms"])
	assert.Equal(t, "status 500", entry["error"])
}

func TestLogObserverRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewLogger()
	l.SetOutput(&buf)
	l.SetLevel(logrus.InfoLevel)

	NewLogObserver(l).Observe(context.Background(), Event{Kind: EventNodesMapped, Level: LevelDebug, Message: "Returned nodes"})
	assert.Empty(t, buf.String())
}

func TestObserversFanOut(t *testing.T) {
	first, second := &Recorder{}, &Recorder{}
	var seen []EventKind

	obs := Observers{first, nil, second, ObserverFunc(func(_ context.Context, e Event) {
		seen = append(seen, e.Kind)
	})}
	obs.Observe(context.Background(), Event{Kind: EventNoStrategy})

	assert.Equal(t, []EventKind{EventNoStrategy}, first.Kinds())
	assert.Equal(t, []EventKind{EventNoStrategy}, second.Kinds())
	assert.Equal(t, []EventKind{EventNoStrategy}, seen)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "debug", LevelDebug.String())
	assert.Equal(t, "error", LevelError.String())
	assert.Equal(t, "unknown", Level(42).String())
}
