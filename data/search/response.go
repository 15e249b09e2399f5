package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SearchPath returns the _search endpoint for index, or the cluster-wide one.
func SearchPath(index string) string {
	if index == "" {
		return "/_search"
	}
	return "/" + index + "/_search"
}

type rawResponse struct {
	Took int64 `json:"took"`
	Hits *struct {
		Total json.RawMessage `json:"total"`
		Hits  *[]Hit          `json:"hits"`
	} `json:"hits"`
}

// DecodeResponse classifies an engine response. Anything but 200 with a
// hits.hits list is an error.
func DecodeResponse(statusCode int, body io.Reader) (*Response, error) {
	if statusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, body)
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, statusCode)
	}

	var raw rawResponse
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if raw.Hits == nil || raw.Hits.Hits == nil {
		return nil, fmt.Errorf("%w: missing hits.hits", ErrMalformedResponse)
	}

	return &Response{
		StatusCode: statusCode,
		Took:       time.Duration(raw.Took) * time.Millisecond,
		Total:      decodeTotal(raw.Hits.Total),
		Hits:       *raw.Hits.Hits,
	}, nil
}

// decodeTotal accepts both `"total": 3` and `"total": {"value": 3}`
func decodeTotal(raw json.RawMessage) int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}

	var obj struct {
		Value int64 `json:"value"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Value
	}
	return 0
}
