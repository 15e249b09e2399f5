package ctxutil

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ctxKey string

const (
	ginContextKey ctxKey = "gin_context"
	workspaceKey  ctxKey = "workspace"

	// TraceIDKey is the field name trace ids are stored and logged under.
	TraceIDKey = "trace_id"
)

// WithGinContext returns a context.Context that embeds the *gin.Context.
func WithGinContext(ctx context.Context, c *gin.Context) context.Context {
	return context.WithValue(ctx, ginContextKey, c)
}

// GetGinContext extracts *gin.Context from context.Context if it exists.
func GetGinContext(ctx context.Context) (*gin.Context, bool) {
	if c, ok := ctx.Value(ginContextKey).(*gin.Context); ok {
		return c, ok
	}
	return nil, false
}

// GetTraceID gets trace id from context.Context or gin.Context.
func GetTraceID(ctx context.Context) string {
	if c, ok := GetGinContext(ctx); ok {
		if traceID := c.GetString(TraceIDKey); traceID != "" {
			return traceID
		}
	}
	if traceID, ok := ctx.Value(ctxKey(TraceIDKey)).(string); ok {
		return traceID
	}
	return ""
}

// SetTraceID sets trace id to context.Context and gin.Context if available.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	if c, ok := GetGinContext(ctx); ok {
		c.Set(TraceIDKey, traceID)
	}
	return context.WithValue(ctx, ctxKey(TraceIDKey), traceID)
}

// EnsureTraceID ensures that a trace ID exists in the context.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := GetTraceID(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := uuid.NewString()
	return SetTraceID(ctx, traceID), traceID
}

// SetWorkspace sets the content repository workspace name.
func SetWorkspace(ctx context.Context, workspace string) context.Context {
	return context.WithValue(ctx, workspaceKey, workspace)
}

// GetWorkspace gets the workspace name, falling back to def.
func GetWorkspace(ctx context.Context, def string) string {
	if ws, ok := ctx.Value(workspaceKey).(string); ok && ws != "" {
		return ws
	}
	return def
}
