package nodesearch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ncobase/nodesearch/data/config"
	"github.com/ncobase/nodesearch/data/elasticsearch"
	"github.com/ncobase/nodesearch/data/search"
	"github.com/ncobase/nodesearch/expression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTemplate() map[string]any {
	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": []any{
					map[string]any{"match": map[string]any{"title": TokenTerm}},
					map[string]any{"terms": map[string]any{"neos_type": TokenSearchNodeTypes}},
					map[string]any{"prefix": map[string]any{"__parentPath": TokenStartingPoint}},
				},
			},
		},
		"fields": []any{PathField},
	}
}

func newTestService(t *testing.T, cfg Config) *Service {
	t.Helper()
	if cfg.Evaluator == nil {
		cfg.Evaluator = expression.New(nil)
	}
	if cfg.Searcher == nil {
		cfg.Searcher = &fakeSearcher{}
	}
	svc, err := NewService(cfg)
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresCollaborators(t *testing.T) {
	_, err := NewService(Config{Searcher: &fakeSearcher{}})
	assert.ErrorIs(t, err, ErrNoEvaluator)

	_, err = NewService(Config{Evaluator: stubEvaluator{}})
	assert.ErrorIs(t, err, ErrNoSearcher)
}

func TestNoStrategyDelegatesToFallback(t *testing.T) {
	fallbackNodes := []*Node{{Identifier: "f1", Path: "/sites/f1"}}
	fallback := &countingFinder{nodes: fallbackNodes}
	searcher := &fakeSearcher{}
	rec := &Recorder{}

	svc := newTestService(t, Config{
		Strategies: Strategies{{Identifier: "never", Condition: "false", Request: defaultTemplate()}},
		Searcher:   searcher,
		Fallback:   fallback,
		Observer:   rec,
	})

	nodes, err := svc.FindByProperties(context.Background(), "x", []string{"A"}, newMemContext(), nil)
	require.NoError(t, err)
	assert.Equal(t, fallbackNodes, nodes)
	assert.Equal(t, 1, fallback.calls)
	assert.Empty(t, searcher.requests)
	assert.True(t, rec.Has(EventNoStrategy))
}

func TestNoStrategyWithoutFallbackIsEmpty(t *testing.T) {
	svc := newTestService(t, Config{})

	nodes, err := svc.FindByProperties(context.Background(), "x", nil, newMemContext(), nil)
	require.NoError(t, err)
	assert.NotNil(t, nodes)
	assert.Empty(t, nodes)
}

func TestFallbackErrorPropagates(t *testing.T) {
	boom := errors.New("database down")
	svc := newTestService(t, Config{Fallback: &countingFinder{err: boom}})

	_, err := svc.FindByProperties(context.Background(), "x", nil, newMemContext(), nil)
	assert.ErrorIs(t, err, boom)
}

func TestMissingTemplateIsEmptyWithoutFallback(t *testing.T) {
	fallback := &countingFinder{nodes: []*Node{{Identifier: "f"}}}
	searcher := &fakeSearcher{}
	rec := &Recorder{}

	svc := newTestService(t, Config{
		Strategies:            Strategies{{Identifier: "default", Condition: "true"}},
		Searcher:              searcher,
		Fallback:              fallback,
		Observer:              rec,
		FallBackOnEmptyResult: true,
	})

	nodes, err := svc.FindByProperties(context.Background(), "x", nil, newMemContext(), nil)
	require.NoError(t, err)
	assert.Empty(t, nodes)
	assert.Zero(t, fallback.calls)
	assert.Empty(t, searcher.requests)

	var missing []Event
	for _, e := range rec.Events() {
		if e.Kind == EventMissingTemplate {
			missing = append(missing, e)
		}
	}
	require.Len(t, missing, 1)
	assert.Equal(t, LevelError, missing[0].Level)
}

func TestFallbackOnEmptyResult(t *testing.T) {
	fallbackNodes := []*Node{{Identifier: "f1"}}

	for _, enabled := range []bool{true, false} {
		fallback := &countingFinder{nodes: fallbackNodes}
		rec := &Recorder{}
		svc := newTestService(t, Config{
			Strategies:            Strategies{{Identifier: "default", Condition: "true", Request: defaultTemplate()}},
			Searcher:              &fakeSearcher{hits: []search.Hit{pathHit("1", "/deleted")}},
			Fallback:              fallback,
			Observer:              rec,
			FallBackOnEmptyResult: enabled,
		})

		nodes, err := svc.FindByProperties(context.Background(), "x", nil, newMemContext(), nil)
		require.NoError(t, err)

		if enabled {
			assert.Equal(t, fallbackNodes, nodes)
			assert.Equal(t, 1, fallback.calls)
			assert.True(t, rec.Has(EventEmptyResult))
		} else {
			assert.Empty(t, nodes)
			assert.Zero(t, fallback.calls)
			assert.False(t, rec.Has(EventEmptyResult))
		}
	}
}

func TestQueryUsesSubstitutedTemplate(t *testing.T) {
	searcher := &fakeSearcher{}
	svc := newTestService(t, Config{
		Strategies: Strategies{{Identifier: "default", Condition: "true", Request: defaultTemplate()}},
		Searcher:   searcher,
		Index:      "neos-live",
	})

	_, err := svc.FindByProperties(context.Background(), "Straße <b>", []string{"Acme:Event", "Neos.Neos:Document"}, newMemContext(), nil)
	require.NoError(t, err)
	require.Len(t, searcher.requests, 1)

	req := searcher.requests[0]
	assert.Equal(t, "neos-live", req.Index)
	body := string(req.Body)
	assert.Contains(t, body, `"title":"Straße <b>"`)
	assert.Contains(t, body, `"neos_type":["Acme:Event","Neos.Neos:Document"]`)
	assert.Contains(t, body, `"__parentPath":"/"`)
	assert.False(t, strings.HasSuffix(body, "\n"))

	// starting point overrides the root path
	start := &Node{Identifier: "s", Path: "/sites/acme"}
	_, err = svc.FindByProperties(context.Background(), "x", nil, newMemContext(start), start)
	require.NoError(t, err)
	assert.Contains(t, string(searcher.requests[1].Body), `"__parentPath":"/sites/acme"`)
}

func TestEngineErrorYieldsEmptyResult(t *testing.T) {
	fallback := &countingFinder{nodes: []*Node{{Identifier: "f"}}}
	rec := &Recorder{}
	svc := newTestService(t, Config{
		Strategies:            Strategies{{Identifier: "default", Condition: "true", Request: defaultTemplate()}},
		Searcher:              &fakeSearcher{err: search.ErrUnexpectedStatus},
		Fallback:              fallback,
		Observer:              rec,
		FallBackOnEmptyResult: true,
	})

	nodes, err := svc.FindByProperties(context.Background(), "x", nil, newMemContext(), nil)
	require.NoError(t, err)
	assert.Empty(t, nodes)
	assert.Zero(t, fallback.calls)
	assert.True(t, rec.Has(EventQueryFailed))
}

func TestRootNodeErrorPropagates(t *testing.T) {
	boom := errors.New("no workspace")
	sc := newMemContext()
	sc.rootErr = boom

	svc := newTestService(t, Config{})
	_, err := svc.FindByProperties(context.Background(), "x", nil, sc, nil)
	assert.ErrorIs(t, err, boom)

	delete(sc.nodes, "/")
	sc.rootErr = nil
	_, err = svc.FindByProperties(context.Background(), "x", nil, sc, nil)
	assert.ErrorIs(t, err, ErrNoRootNode)

	_, err = svc.FindByProperties(context.Background(), "x", nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoSearchContext)
}

func TestLogRequestsEmitsQueryEvent(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		rec := &Recorder{}
		svc := newTestService(t, Config{
			Strategies:  Strategies{{Identifier: "default", Condition: "true", Request: defaultTemplate()}},
			Searcher:    &fakeSearcher{hits: []search.Hit{pathHit("1", "/sites/a")}},
			Observer:    rec,
			LogRequests: enabled,
		})

		_, err := svc.FindByProperties(context.Background(), "x", nil, newMemContext(&Node{Identifier: "a", Path: "/sites/a"}), nil)
		require.NoError(t, err)
		assert.Equal(t, enabled, rec.Has(EventQueryExecuted))
		assert.True(t, rec.Has(EventStrategySelected))
		assert.True(t, rec.Has(EventNodesMapped))
	}
}

// elasticCluster serves canned _search responses and records query bodies
func elasticCluster(t *testing.T, status int, payload string) (*search.Client, *atomic.Int32, *[]map[string]any) {
	t.Helper()
	var calls atomic.Int32
	var bodies []map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		bodies = append(bodies, body)

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, payload)
	}))
	t.Cleanup(srv.Close)

	engine, err := elasticsearch.NewEngine(&config.Elasticsearch{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return search.NewClient(engine), &calls, &bodies
}

func TestScenarioFirstMatchingPositionWins(t *testing.T) {
	client, calls, bodies := elasticCluster(t, http.StatusOK, `{"hits":{"hits":[]}}`)

	svc := newTestService(t, Config{
		Strategies: Strategies{
			{Identifier: "later", Position: 20, Condition: "${true}", Request: map[string]any{"size": 20.0, "marker": "twenty"}},
			{Identifier: "earlier", Position: 10, Condition: "${false}", Request: map[string]any{"size": 10.0, "marker": "ten"}},
		},
		Searcher: client,
	})

	_, err := svc.FindByProperties(context.Background(), "x", nil, newMemContext(), nil)
	require.NoError(t, err)
	require.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "twenty", (*bodies)[0]["marker"])
}

func TestScenarioServerErrorIsEmptyWithoutFallback(t *testing.T) {
	client, calls, _ := elasticCluster(t, http.StatusInternalServerError, `{"error":"boom"}`)
	fallback := &countingFinder{nodes: []*Node{{Identifier: "f"}}}

	svc := newTestService(t, Config{
		Strategies:            Strategies{{Identifier: "default", Condition: "true", Request: defaultTemplate()}},
		Searcher:              client,
		Fallback:              fallback,
		FallBackOnEmptyResult: true,
	})

	nodes, err := svc.FindByProperties(context.Background(), "x", nil, newMemContext(), nil)
	require.NoError(t, err)
	assert.Empty(t, nodes)
	assert.Equal(t, int32(1), calls.Load())
	assert.Zero(t, fallback.calls)
}

func TestScenarioDuplicateHitsCollapse(t *testing.T) {
	client, _, _ := elasticCluster(t, http.StatusOK, `{"hits":{"total":{"value":2},"hits":[
		{"_id":"1","fields":{"__path":["/sites/acme/event"]}},
		{"_id":"2","_source":{"__path":"/sites/acme/event-alias"}}
	]}}`)

	event := &Node{Identifier: "event", Path: "/sites/acme/event"}
	sc := newMemContext(event)
	sc.nodes["/sites/acme/event-alias"] = event

	svc := newTestService(t, Config{
		Strategies: Strategies{{Identifier: "default", Condition: "true", Request: defaultTemplate()}},
		Searcher:   client,
	})

	nodes, err := svc.FindByProperties(context.Background(), "x", nil, sc, nil)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "event", nodes[0].Identifier)
}

func TestServiceStrategiesAreOrdered(t *testing.T) {
	svc := newTestService(t, Config{Strategies: Strategies{
		{Identifier: "b", Position: 2},
		{Identifier: "a", Position: 1},
	}})

	got := svc.Strategies()
	assert.Equal(t, "a", got[0].Identifier)
	got[0].Identifier = "mutated"
	assert.Equal(t, "a", svc.Strategies()[0].Identifier)
}
