// Package server serves the plate calculator over HTTP.
//
// The root page is a plain HTML form that works without JavaScript: every
// submit recomputes the load and saves the form for the client. The same
// calculation is exposed as JSON and as SVG/PNG renderings:
//
//	GET  /                      calculator page
//	POST /                      form actions (clear, quick stock, bar preset, zoom)
//	GET  /api/layout            plate selection as JSON
//	GET  /render.svg            loaded bar as SVG
//	GET  /render.png            loaded bar as PNG
//	GET  /api/trace.svg         greedy walk as a Graphviz diagram
//	GET  /api/state             saved form state
//	PUT  /api/state
//	GET  /api/quickstock        saved quick-stock preset
//	PUT  /api/quickstock
//	GET  /healthz
//	GET  /metrics               when a metrics handler is configured
//
// Calculation endpoints take target, bar and one p<weight> parameter per
// plate (p45=4&p2.5=2). Without any p parameter the client's quick stock is
// used. Clients are told apart by an anonymous cookie; their preferences
// and cache entries live under a per-client key prefix.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/barbell/pkg/cache"
	"github.com/matzehuels/barbell/pkg/errors"
	"github.com/matzehuels/barbell/pkg/httputil"
	"github.com/matzehuels/barbell/pkg/pipeline"
	"github.com/matzehuels/barbell/pkg/prefs"
)

// Options configures a Server.
type Options struct {
	// Runner renders artifacts. A runner without a cache is used when nil.
	Runner *pipeline.Runner

	// Storage holds per-client preferences. Nil disables persistence.
	Storage prefs.Storage

	// Metrics is mounted at /metrics when set.
	Metrics http.Handler

	Logger *log.Logger

	// Defaults for requests that leave them out.
	Bar   float64
	Style string
	Unit  string

	// SecureCookie marks the client cookie Secure.
	SecureCookie bool
}

// Server is the HTTP front end.
type Server struct {
	runner  *pipeline.Runner
	storage prefs.Storage
	logger  *log.Logger
	opts    Options
	router  chi.Router
}

// New creates a server and builds its routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	if opts.Bar == 0 {
		opts.Bar = pipeline.DefaultBar
	}
	if opts.Style == "" {
		opts.Style = pipeline.DefaultStyle
	}
	if opts.Unit == "" {
		opts.Unit = pipeline.DefaultUnit
	}

	s := &Server{
		runner:  opts.Runner,
		storage: opts.Storage,
		logger:  opts.Logger,
		opts:    opts,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(httputil.Instrument(s.logger))

	r.Get("/healthz", s.handleHealth)
	if s.opts.Metrics != nil {
		r.Handle("/metrics", s.opts.Metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(httputil.ClientID(httputil.CookieOptions{Secure: s.opts.SecureCookie}))

		r.Get("/", s.handlePage)
		r.Post("/", s.handlePageAction)
		r.Get("/render.svg", s.handleRender(pipeline.FormatSVG))
		r.Get("/render.png", s.handleRender(pipeline.FormatPNG))

		r.Route("/api", func(r chi.Router) {
			r.Get("/layout", s.handleLayout)
			r.Get("/trace.svg", s.handleTrace)
			r.Get("/state", s.handleGetState)
			r.Put("/state", s.handlePutState)
			r.Get("/quickstock", s.handleGetQuickStock)
			r.Put("/quickstock", s.handlePutQuickStock)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, errors.New(errors.ErrCodeUnsupported, "method %s not allowed on %s", r.Method, r.URL.Path))
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down,
// giving in-flight requests up to shutdownTimeout to finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// clientPrefix namespaces storage and cache keys for the request's client.
func clientPrefix(r *http.Request) string {
	return "client:" + httputil.ClientIDFrom(r.Context()) + ":"
}

// clientPrefs returns the preferences of the request's client.
func (s *Server) clientPrefs(r *http.Request) (*prefs.Prefs, error) {
	if s.storage == nil {
		return prefs.New(nil, s.logger), nil
	}
	scoped, err := prefs.Scoped(s.storage, clientPrefix(r))
	if err != nil {
		return nil, err
	}
	return prefs.New(scoped, s.logger), nil
}

// clientRunner returns a runner whose cache keys are scoped to the client.
func (s *Server) clientRunner(r *http.Request) *pipeline.Runner {
	return s.runner.WithKeyer(cache.NewScopedKeyer(s.runner.Keyer, clientPrefix(r)))
}
