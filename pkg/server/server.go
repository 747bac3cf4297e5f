// Package server exposes a graph over HTTP.
//
// Every handler takes the server's mutex for the duration of the graph call,
// so requests are applied one at a time in arrival order.
//
//	GET    /healthz          liveness and instance id
//	GET    /max              vertex with the maximum neighborhood weight
//	GET    /stats            counters and index statistics
//	GET    /vertices         all present vertices with their weights
//	GET    /vertices/{id}    one vertex
//	DELETE /vertices/{id}    delete a vertex and its edges
//	POST   /edges            add an edge, body {"u": 7, "v": 5}
//	GET    /render           SVG diagram (?engine=neato)
//
// Unknown ids answer 404, malformed input 400 and rejected edges 409.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/heaviest/pkg/core/graph"
	"github.com/matzehuels/heaviest/pkg/observability"
	"github.com/matzehuels/heaviest/pkg/render/nodelink"
)

// Options configures a Server.
type Options struct {
	// Renderer draws /render. Nil renders without a cache.
	Renderer *nodelink.Renderer

	// Engine is the default layout engine for /render.
	Engine string

	Logger *log.Logger
}

// Server serves one graph.
type Server struct {
	mu sync.Mutex
	g  *graph.Graph

	id       string
	started  time.Time
	renderer *nodelink.Renderer
	engine   string
	logger   *log.Logger
	router   chi.Router
}

// New creates a server for g. The server owns g from now on; callers must
// not use it concurrently. g should be built with [graph.WithStrictEdges] so
// a repeated POST /edges is answered 409 instead of double counting.
func New(g *graph.Graph, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Renderer == nil {
		opts.Renderer = nodelink.NewRenderer(nil, 0, opts.Logger)
	}
	if opts.Engine == "" {
		opts.Engine = nodelink.EngineNeato
	}

	s := &Server{
		g:        g,
		id:       uuid.NewString(),
		started:  time.Now(),
		renderer: opts.Renderer,
		engine:   opts.Engine,
		logger:   opts.Logger,
	}
	s.router = s.routes()
	return s
}

// ID returns the instance id reported by /healthz.
func (s *Server) ID() string { return s.id }

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Get("/max", s.handleMax)
	r.Get("/stats", s.handleStats)
	r.Get("/render", s.handleRender)
	r.Route("/vertices", func(r chi.Router) {
		r.Get("/", s.handleVertices)
		r.Get("/{id}", s.handleVertex)
		r.Delete("/{id}", s.handleDeleteVertex)
	})
	r.Post("/edges", s.handleAddEdge)
	return r
}

// instrument logs each request and reports it to the server hooks under its
// route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		observability.Server().OnRequest(r.Context(), r.Method, route, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "instance", s.id)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		s.logger.Info("server stopped", "uptime", time.Since(s.started).Round(time.Second))
		return nil
	}
}
