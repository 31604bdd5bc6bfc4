// Package server serves the reports and the cumulative return chart over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/etnz/fundperf"
	"github.com/etnz/fundperf/chart"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Config holds server configuration
type Config struct {
	Port      int
	Log       zerolog.Logger
	Reporter  *fundperf.Reporter
	Selection *fundperf.Selection // shared by every view, defaults to the first funds
	Charts    *chart.Cache        // defaults to a cache of chart.DefaultTTL
	DevMode   bool
}

// Server represents the HTTP server
type Server struct {
	router    *chi.Mux
	server    *http.Server
	log       zerolog.Logger
	reporter  *fundperf.Reporter
	store     *fundperf.Store
	selection *fundperf.Selection
	charts    *chart.Cache
	port      int
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		reporter:  cfg.Reporter,
		store:     cfg.Reporter.Store(),
		selection: cfg.Selection,
		charts:    cfg.Charts,
		port:      cfg.Port,
	}
	if s.selection == nil {
		s.selection = fundperf.DefaultSelection(s.store)
	}
	if s.charts == nil {
		s.charts = chart.NewCache(chart.DefaultTTL)
	}
	s.selection.Subscribe(func(funds []string) {
		s.log.Debug().Strs("funds", funds).Msg("selection changed")
	})

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the root handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/funds", s.handleFunds)
		r.Get("/reports/{kind}", s.handleReport)
		r.Get("/curve", s.handleCurve)
		r.Get("/curve.png", s.handleCurvePNG)
		r.Get("/selection", s.handleGetSelection)
		r.Put("/selection", s.handlePutSelection)
	})

	s.router.Get("/", s.handlePage)
	s.router.Get("/help", s.handleHelp)
	s.router.Get("/help/{topic}", s.handleHelp)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
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
