// Package server exposes the positions table over an HTTP JSON API.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/etnz/positions"
	"github.com/etnz/positions/scheduler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// handlerTimeout bounds a request, it stays below the write timeout of the server.
const handlerTimeout = 10 * time.Second

// Options holds what a Server is built from.
type Options struct {
	Config Config
	Log    zerolog.Logger
	Source positions.Source
}

// Server represents the HTTP server
type Server struct {
	cfg       Config
	router    *chi.Mux
	server    *http.Server
	log       zerolog.Logger
	scheduler *scheduler.Scheduler

	snapshot *Snapshot
	refresh  *RefreshJob
	sweep    *sweepJob
	metrics  *Metrics
	sessions *sessions

	paletteMu sync.Mutex
	palette   positions.Palette

	now func() time.Time
}

// New creates a new HTTP server
func New(opts Options) *Server {
	cfg := opts.Config
	if cfg.Refresh == "" {
		cfg.Refresh = DefaultRefresh
	}
	s := &Server{
		cfg:       cfg,
		router:    chi.NewRouter(),
		log:       opts.Log.With().Str("component", "server").Logger(),
		scheduler: scheduler.New(opts.Log),
		snapshot:  NewSnapshot(opts.Source),
		metrics:   NewMetrics(),
		sessions:  newSessions(cfg.SessionTTL, cfg.MaxSessions),
		now:       time.Now,
	}
	s.refresh = NewRefreshJob(s.snapshot, s.metrics, opts.Log)
	s.sweep = &sweepJob{sessions: s.sessions, metrics: s.metrics}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: handlerTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.metrics.middleware)
	s.router.Use(middleware.Timeout(handlerTimeout))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", SessionHeader},
		ExposedHeaders: []string{SessionHeader},
		MaxAge:         300,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/pivot", func(r chi.Router) {
			r.Get("/", s.handlePivot)
			r.Post("/expand/{symbol}", s.handleToggle)
			r.Delete("/expand", s.handleCollapseAll)
		})
		r.Route("/allocation", func(r chi.Router) {
			r.Get("/equities", s.handleEquities)
			r.Get("/assets", s.handleAssets)
		})
		r.Get("/stats", s.handleStats)
		r.Get("/market", s.handleMarket)
		r.Post("/sell/estimate", s.handleSellEstimate)
		r.Post("/refresh", s.handleRefresh)
	})
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Start loads the snapshot, schedules its refresh and serves until Shutdown.
func (s *Server) Start() error {
	if err := s.scheduler.RunNow(s.refresh); err != nil {
		s.log.Warn().Err(err).Msg("Initial load failed, will retry on schedule")
	}
	if err := s.scheduler.AddJob(s.cfg.Refresh, s.refresh); err != nil {
		return err
	}
	if err := s.scheduler.AddJob(SweepSchedule, s.sweep); err != nil {
		return err
	}
	s.scheduler.Start()

	s.log.Info().Str("addr", s.cfg.Addr).Msg("Starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	s.scheduler.Stop()
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
