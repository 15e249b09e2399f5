package nodesearch

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/ncobase/nodesearch/data/search"
)

// encodeQuery serialises the substituted template as UTF-8 JSON, leaving
// non-ASCII and HTML characters unescaped.
func encodeQuery(query any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(query); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// executeQuery runs one search request. Any failure is reported as an error
// event and yields ok == false; it never surfaces to the caller.
func (s *Service) executeQuery(ctx context.Context, strategy string, query any) ([]search.Hit, bool) {
	body, err := encodeQuery(query)
	if err != nil {
		s.observer.Observe(ctx, Event{Kind: EventQueryFailed, Level: LevelError, Strategy: strategy,
			Message: "Error while encoding the search query", Err: err})
		return nil, false
	}

	start := time.Now()
	resp, err := s.searcher.Search(ctx, &search.Request{Index: s.index, Body: body})
	duration := time.Since(start)

	if err != nil {
		s.observer.Observe(ctx, Event{Kind: EventQueryFailed, Level: LevelError, Strategy: strategy,
			Message: "Error while executing the search query", Query: string(body), Duration: duration, Err: err})
		return nil, false
	}

	if s.logRequests {
		s.observer.Observe(ctx, Event{Kind: EventQueryExecuted, Level: LevelDebug, Strategy: strategy,
			Message: "Executed search query", Query: string(body), Duration: duration,
			Hits: len(resp.Hits), Total: resp.Total})
	}
	return resp.Hits, true
}
