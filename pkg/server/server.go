// Package server exposes the chart pipeline over HTTP and drives
// interactive charts over websockets.
//
// Stateless renders go through the pipeline [pipeline.Runner] and its
// artifact cache. Interactive charts are sessions: the durable half (kind,
// input, zoom domain) lives in a [session.Store], the live chart object in
// an in-process registry rebuilt from the store on demand. Each websocket
// message is one user interaction; the reply carries the attribute patches
// the browser applies.
//
// Routes:
//
//	GET    /healthz
//	POST   /v1/render/{kind}?format=svg&input=tsv
//	POST   /v1/sessions
//	GET    /v1/sessions/{id}
//	GET    /v1/sessions/{id}/svg
//	DELETE /v1/sessions/{id}
//	GET    /v1/sessions/{id}/events
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/genoviz/pkg/config"
	"github.com/matzehuels/genoviz/pkg/observability"
	"github.com/matzehuels/genoviz/pkg/pipeline"
	"github.com/matzehuels/genoviz/pkg/session"
)

const (
	maxBodySize     = 16 << 20
	cleanupInterval = 10 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// Server serves renders and chart sessions.
type Server struct {
	runner     *pipeline.Runner
	store      session.Store
	styles     *config.Styles
	logger     *log.Logger
	counters   *observability.Counters
	origins    []string
	sessionTTL time.Duration

	live *registry
	now  func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithStyles sets the chart styles used for every render and session.
func WithStyles(s *config.Styles) Option { return func(srv *Server) { srv.styles = s } }

// WithLogger sets the request and event logger.
func WithLogger(l *log.Logger) Option { return func(srv *Server) { srv.logger = l } }

// WithCounters reports c on /healthz.
func WithCounters(c *observability.Counters) Option { return func(srv *Server) { srv.counters = c } }

// WithAllowedOrigins sets the websocket origin patterns.
func WithAllowedOrigins(patterns []string) Option {
	return func(srv *Server) { srv.origins = patterns }
}

// WithSessionTTL sets how long an idle session is kept.
func WithSessionTTL(ttl time.Duration) Option { return func(srv *Server) { srv.sessionTTL = ttl } }

// New returns a server rendering through runner and keeping sessions in
// store. A nil store keeps sessions in memory.
func New(runner *pipeline.Runner, store session.Store, opts ...Option) *Server {
	if store == nil {
		store = session.NewMemoryStore()
	}
	s := &Server{
		runner:     runner,
		store:      store,
		logger:     log.Default(),
		sessionTTL: session.DefaultTTL,
		live:       newRegistry(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.styles == nil {
		st := config.DefaultStyles()
		s.styles = &st
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render/{kind}", s.handleRender)
		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleSessionPage)
			r.Get("/svg", s.handleSessionSVG)
			r.Delete("/", s.handleDeleteSession)
			r.Get("/events", s.handleEvents)
		})
	})
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.cleanupLoop(ctx)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return s.Close()
}

// Close releases the session store and the runner's cache.
func (s *Server) Close() error {
	err := s.store.Close()
	if s.runner != nil {
		err = errors.Join(err, s.runner.Close())
	}
	return err
}

func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := s.store.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "err", err)
			}
			if n := s.live.prune(s.now()); n > 0 {
				s.logger.Debug("pruned live charts", "count", n)
			}
		case <-ctx.Done():
			return
		}
	}
}
