package resp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]any{"count": 1})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, 1.0, decode(t, rec)["count"])

	rec = httptest.NewRecorder()
	Success(rec, "done")
	assert.Equal(t, "done", decode(t, rec)["message"])

	rec = httptest.NewRecorder()
	Success(rec, []string{})
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestFailures(t *testing.T) {
	rec := httptest.NewRecorder()
	BadRequest(rec, "term is required", map[string]string{"field": "term"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(CodeRequestErr), body["code"])
	assert.Equal(t, "term is required", body["message"])
	assert.NotNil(t, body["errors"])

	rec = httptest.NewRecorder()
	NotFound(rec, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", decode(t, rec)["message"])

	rec = httptest.NewRecorder()
	Fail(rec, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "server error", decode(t, rec)["message"])

	rec = httptest.NewRecorder()
	Unavailable(rec, "no service")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
