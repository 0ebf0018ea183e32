// Package server exposes the diagram catalog and the render pipeline over
// HTTP.
//
// Routes:
//
//	GET  /healthz                    liveness and version
//	GET  /diagrams                   catalog listing
//	GET  /diagrams/{name}.{format}   render a catalog diagram (?scale=&dpi=)
//	POST /render/{format}            render a JSON scene file (?name=)
//
// Every render goes through [pipeline.Runner.RenderFormat], so responses
// are cached by whatever backend and keyer the runner was given.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/schematic/pkg/buildinfo"
	"github.com/matzehuels/schematic/pkg/pipeline"
)

// DefaultMaxBodyBytes bounds POSTed scene files when Config leaves it zero.
const DefaultMaxBodyBytes = 1 << 20

const shutdownTimeout = 10 * time.Second

// Config configures a Server.
type Config struct {
	Runner *pipeline.Runner
	Logger *log.Logger

	// Defaults supplies scale and dpi when a request leaves them out.
	Defaults pipeline.Options

	MaxBodyBytes int64
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the HTTP front end. It is safe for concurrent use.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
	maxBody  int64
	read     time.Duration
	write    time.Duration
	router   chi.Router
}

// New builds a server and its routes. A nil runner renders without a cache.
func New(cfg Config) *Server {
	s := &Server{
		runner:   cfg.Runner,
		logger:   cfg.Logger,
		defaults: cfg.Defaults,
		maxBody:  cfg.MaxBodyBytes,
		read:     cfg.ReadTimeout,
		write:    cfg.WriteTimeout,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.observe)
	r.Get("/healthz", s.handleHealth)
	r.Get("/diagrams", s.handleList)
	r.Get("/diagrams/{name}.{format}", s.handleDiagram)
	r.Post("/render/{format}", s.handleRender)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, notFound(r.URL.Path))
	})
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.read,
		WriteTimeout: s.write,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "version", buildinfo.Version)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
