// Package server exposes node search over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/ncobase/nodesearch/data"
	"github.com/ncobase/nodesearch/logging/logger"
	"github.com/ncobase/nodesearch/nodesearch"
	"github.com/ncobase/nodesearch/validator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TraceHeader carries the request trace id in and out
const TraceHeader = "X-Trace-ID"

// ContextFunc returns the search context of a workspace
type ContextFunc func(workspace string) nodesearch.SearchContext

// Options configures a Server
type Options struct {
	Contexts         ContextFunc
	Checks           []data.Check
	DefaultWorkspace string
	Gatherer         prometheus.Gatherer
	Logger           *logger.Logger
	Mode             string
}

// Server serves search requests against the current service. The service
// can be replaced at runtime, e.g. after a configuration reload.
type Server struct {
	service atomic.Pointer[nodesearch.Service]
	opts    Options
	engine  *gin.Engine
}

// New creates a server for svc. svc may be nil until SetService is called.
func New(svc *nodesearch.Service, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logger.StdLogger()
	}
	if opts.DefaultWorkspace == "" {
		opts.DefaultWorkspace = "live"
	}

	binding.Validator = validator.Binding()

	s := &Server{opts: opts}
	s.service.Store(svc)
	s.engine = s.setupRouter()
	return s
}

// SetService swaps the service used by subsequent requests
func (s *Server) SetService(svc *nodesearch.Service) {
	s.service.Store(svc)
}

// Service returns the current service
func (s *Server) Service() *nodesearch.Service {
	return s.service.Load()
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.opts.Logger.Infof(ctx, "HTTP server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.opts.Logger.Infof(shutdownCtx, "Shutting down HTTP server")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) setupRouter() *gin.Engine {
	if s.opts.Mode != "" {
		gin.SetMode(s.opts.Mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(traceMiddleware())
	r.Use(s.loggerMiddleware())

	r.GET("/healthz", s.health)

	if s.opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	api.GET("/search", s.search)
	api.GET("/strategies", s.strategies)

	return r
}
