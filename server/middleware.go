package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/nodesearch/ctxutil"
	"github.com/sirupsen/logrus"
)

// traceMiddleware reuses an incoming trace id or creates one
func traceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.WithGinContext(c.Request.Context(), c)
		if traceID := c.GetHeader(TraceHeader); traceID != "" {
			ctx = ctxutil.SetTraceID(ctx, traceID)
		}
		ctx, traceID := ctxutil.EnsureTraceID(ctx)

		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceHeader, traceID)
		c.Next()
	}
}

// loggerMiddleware creates request logging middleware.
func (s *Server) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.opts.Logger.WithContextFields(c.Request.Context(), logrus.Fields{
			"method":   method,
			"path":     path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("HTTP request")
	}
}
