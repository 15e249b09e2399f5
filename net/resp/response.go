package resp

import (
	"encoding/json"
	"net/http"
)

// Business codes
const (
	CodeOK          = 0
	CodeRequestErr  = 1400
	CodeNotFound    = 1404
	CodeServerErr   = 1500
	CodeUnavailable = 1503
)

var codeText = map[int]string{
	CodeRequestErr:  "request error",
	CodeNotFound:    "not found",
	CodeServerErr:   "server error",
	CodeUnavailable: "service unavailable",
}

// Exception represents the failure response structure.
type Exception struct {
	Status  int    `json:"-"`                 // HTTP status
	Code    int    `json:"code,omitempty"`    // Business code
	Message string `json:"message,omitempty"` // Message
	Errors  any    `json:"errors,omitempty"`  // Details
}

// Success writes data with status 200. A string payload becomes a message.
func Success(w http.ResponseWriter, data any) {
	WithStatusCode(w, http.StatusOK, data)
}

// WithStatusCode writes data with a custom success status code.
func WithStatusCode(w http.ResponseWriter, statusCode int, data any) {
	switch v := data.(type) {
	case nil:
		writeJSON(w, statusCode, map[string]any{"message": "ok"})
	case string:
		writeJSON(w, statusCode, map[string]any{"message": v})
	default:
		writeJSON(w, statusCode, v)
	}
}

// Fail writes a failure response.
func Fail(w http.ResponseWriter, r *Exception) {
	if r == nil {
		r = &Exception{Status: http.StatusInternalServerError, Code: CodeServerErr}
	}

	status := r.Status
	if status == 0 {
		status = http.StatusBadRequest
	}
	code := r.Code
	if code == 0 {
		code = CodeRequestErr
	}
	message := r.Message
	if message == "" {
		message = codeText[code]
	}

	writeJSON(w, status, &Exception{Code: code, Message: message, Errors: r.Errors})
}

// BadRequest bad request
func BadRequest(w http.ResponseWriter, message string, errs ...any) {
	Fail(w, &Exception{Status: http.StatusBadRequest, Code: CodeRequestErr, Message: message, Errors: first(errs)})
}

// NotFound not found
func NotFound(w http.ResponseWriter, message string) {
	Fail(w, &Exception{Status: http.StatusNotFound, Code: CodeNotFound, Message: message})
}

// ServerError internal server error
func ServerError(w http.ResponseWriter, message string) {
	Fail(w, &Exception{Status: http.StatusInternalServerError, Code: CodeServerErr, Message: message})
}

// Unavailable service unavailable
func Unavailable(w http.ResponseWriter, message string) {
	Fail(w, &Exception{Status: http.StatusServiceUnavailable, Code: CodeUnavailable, Message: message})
}

func first(v []any) any {
	if len(v) > 0 {
		return v[0]
	}
	return nil
}

// writeJSON sets headers before the status line, then encodes res
func writeJSON(w http.ResponseWriter, code int, res any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(res)
}
