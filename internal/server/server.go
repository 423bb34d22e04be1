// Package server exposes the editing session as a small JSON API
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/thenoetrevino/clubhouse/internal/app"
	"github.com/thenoetrevino/clubhouse/internal/config"
	"github.com/thenoetrevino/clubhouse/internal/events"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// Server serves one App over HTTP
type Server struct {
	app     *app.App
	bus     *events.Bus
	metrics *Metrics
	logger  *slog.Logger
	cfg     config.HTTPConfig
	router  chi.Router
}

// New builds the router for a. bus may be nil, in which case no session
// events are counted.
func New(a *app.App, cfg config.HTTPConfig, bus *events.Bus, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		app:     a,
		bus:     bus,
		metrics: NewMetrics(),
		logger:  logger.With("component", "http"),
		cfg:     cfg,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server's counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) routes() chi.Router {
	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Use(instrument(s.logger, s.metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/teams", func(r chi.Router) {
		r.Use(s.requireDatabase)
		r.Get("/", s.handleListTeams)
		r.Get("/{id}", s.handleGetTeam)
		r.Post("/{id}", s.handleUpdateTeam)
		r.Put("/{id}/draft", s.handleStageTeam)
		r.Delete("/{id}/draft", s.handleDiscardTeam)
		r.Get("/{id}/logo", s.handleGetLogo)
	})

	r.Route("/staff", func(r chi.Router) {
		r.Use(s.requireDatabase)
		r.Get("/", s.handleListStaff)
		r.Get("/{id}", s.handleGetStaff)
		r.Post("/{id}", s.handleUpdateStaff)
	})

	r.Route("/database", func(r chi.Router) {
		r.Post("/open", s.handleOpenDatabase)
		r.Post("/close", s.handleCloseDatabase)
		r.With(s.requireDatabase).Get("/export", s.handleExportDatabase)
	})

	return r
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("starting server", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		s.logger.Info("shutting down server", "timeout", shutdownTimeout)
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("graceful shutdown failed", "error", err)
			return httpSrv.Close()
		}
		return nil
	})

	if s.bus != nil {
		g.Go(func() error {
			s.countEvents(gctx)
			return nil
		})
	}

	return g.Wait()
}

// countEvents feeds session events into the metrics until ctx is done
func (s *Server) countEvents(ctx context.Context) {
	feed, unsubscribe := s.bus.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-feed:
			if !ok {
				return
			}
			s.metrics.IncEvent(e.Type)
			s.logger.Debug("session event", "type", e.Type, "record_id", e.RecordID, "seq", e.SequenceID)
		}
	}
}
