package opensearch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ncobase/nodesearch/data/config"
	"github.com/ncobase/nodesearch/data/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineSearch(t *testing.T) {
	var method, path, body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		method, path, body = r.Method, r.URL.Path, string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"took":1,"hits":{"total":{"value":1},"hits":[{"_id":"n2","fields":{"__path":["/sites/b"]}}]}}`)
	}))
	defer srv.Close()

	engine, err := NewEngine(&config.OpenSearch{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	assert.Equal(t, search.OpenSearch, engine.Type())

	resp, err := engine.Search(context.Background(), &search.Request{Index: "content", Body: []byte(`{"size":5}`)})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, method)
	assert.Equal(t, "/content/_search", path)
	assert.Equal(t, `{"size":5}`, body)
	require.Len(t, resp.Hits, 1)
	assert.Equal(t, []any{"/sites/b"}, resp.Hits[0].Fields["__path"])
}

func TestEngineSearchFailures(t *testing.T) {
	status := http.StatusBadRequest
	payload := `{"error":"parse"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, payload)
	}))
	defer srv.Close()

	engine, err := NewEngine(&config.OpenSearch{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	_, err = engine.Search(context.Background(), &search.Request{Body: []byte(`{}`)})
	assert.ErrorIs(t, err, search.ErrUnexpectedStatus)

	status, payload = http.StatusOK, `{"acknowledged":true}`
	_, err = engine.Search(context.Background(), &search.Request{Body: []byte(`{}`)})
	assert.ErrorIs(t, err, search.ErrMalformedResponse)
}

func TestDriverConnectValidatesConfig(t *testing.T) {
	d := &driver{}
	assert.Equal(t, "opensearch", d.Name())

	_, err := d.Connect(context.Background(), nil)
	assert.Error(t, err)

	_, err = d.Connect(context.Background(), &config.Search{OpenSearch: &config.OpenSearch{}})
	assert.Error(t, err)
}
