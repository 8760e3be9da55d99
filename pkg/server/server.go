// Package server exposes the card pipeline over HTTP.
//
// Routes:
//
//	GET /api/card     render a card (alias /api/stats)
//	GET /api/themes   list registered themes as JSON
//	GET /healthz      liveness check
//
// Card responses always carry a well-formed SVG body. Failures render the
// placeholder card and are distinguished by status code only: 400 for bad
// input, 404 for a login without a stored snapshot, 502 when GitHub failed,
// 500 otherwise.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/statcard/pkg/pipeline"
	"github.com/matzehuels/statcard/pkg/theme"
)

const (
	// DefaultAddr is the listen address when none is configured.
	DefaultAddr = ":8080"

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 20 * time.Second

	// DefaultCacheControl lets CDNs and the GitHub image proxy keep a card
	// for an hour and serve it stale for a day while revalidating.
	DefaultCacheControl = "public, max-age=3600, stale-while-revalidate=86400"

	// NoStore disables downstream caching.
	NoStore = "no-store"

	shutdownTimeout = 10 * time.Second
)

// Renderer executes the card pipeline. *pipeline.Runner implements it.
type Renderer interface {
	Execute(ctx context.Context, opts pipeline.Options) (*pipeline.Result, error)
}

// Options configures a Server.
type Options struct {
	Addr string `toml:"addr" yaml:"addr"`

	// Strict rejects card requests without a username. Otherwise DemoUser
	// is rendered.
	Strict   bool   `toml:"strict" yaml:"strict"`
	DemoUser string `toml:"demo_user" yaml:"demo_user"`

	// CacheControl is sent with successful card responses.
	CacheControl string `toml:"cache_control" yaml:"cache_control"`

	Timeout     time.Duration `toml:"timeout" yaml:"timeout"`
	TopN        int           `toml:"top_n" yaml:"top_n"`
	ShowUpdated bool          `toml:"show_updated" yaml:"show_updated"`
}

func (o Options) withDefaults() Options {
	if o.Addr == "" {
		o.Addr = DefaultAddr
	}
	if o.CacheControl == "" {
		o.CacheControl = DefaultCacheControl
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// Server serves cards over HTTP.
type Server struct {
	renderer Renderer
	themes   *theme.Registry
	opts     Options
	logger   *log.Logger
}

// New creates a server. A nil registry means the built-in themes; a nil
// logger means log.Default().
func New(r Renderer, themes *theme.Registry, opts Options, logger *log.Logger) *Server {
	if themes == nil {
		themes = theme.Builtin()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		renderer: r,
		themes:   themes,
		opts:     opts.withDefaults(),
		logger:   logger,
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(logRequests(s.logger))
	r.Use(middleware.Timeout(s.opts.Timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/card", s.handleCard)
		r.Get("/stats", s.handleCard)
		r.Get("/themes", s.handleThemes)
	})
	return r
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully, letting in-flight requests finish.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
