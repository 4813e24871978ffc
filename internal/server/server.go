// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: New receives an opened repository.Store and
// builds the services and handlers on top of it, then wires them to routes.
//
//	Store → MediaService, PostService → PublicationService → handlers → router
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/VinicciusWirz/social-postify/internal/config"
	"github.com/VinicciusWirz/social-postify/internal/handler"
	"github.com/VinicciusWirz/social-postify/internal/middleware"
	"github.com/VinicciusWirz/social-postify/internal/repository"
	"github.com/VinicciusWirz/social-postify/internal/service"
	"github.com/VinicciusWirz/social-postify/internal/validation"
)

// Server owns the router and the store. The store is closed when Start returns.
type Server struct {
	router   *chi.Mux
	config   *config.Config
	logger   *slog.Logger
	store    repository.Store
	registry *prometheus.Registry
}

func New(cfg *config.Config, logger *slog.Logger, store repository.Store) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   logger,
		store:    store,
		registry: registry,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all middleware and route handlers.
//
//	GET    /healthz               → database ping
//	GET    /metrics               → Prometheus exposition
//	POST   /medias                GET /medias          GET /medias/{id}
//	PUT    /medias/{id}           DELETE /medias/{id}
//	(same five routes for /posts and /publications)
//
// Middleware runs in the order it is added.
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.NewMetrics(s.registry).Handler)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	healthHandler := handler.NewHealthHandler(s.store, s.logger)
	s.router.Get("/healthz", healthHandler.HandleHealth)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))

	v := validation.New()
	mediaService := service.NewMediaService(s.store, v, s.logger)
	postService := service.NewPostService(s.store, v, s.logger)
	publicationService := service.NewPublicationService(s.store, mediaService, postService, v, s.logger)

	mediaHandler := handler.NewMediaHandler(mediaService, s.logger)
	postHandler := handler.NewPostHandler(postService, s.logger)
	publicationHandler := handler.NewPublicationHandler(publicationService, s.logger)

	// Only the API is rate limited; probes and scrapes are not.
	s.router.Group(func(r chi.Router) {
		if s.config.RateLimitPerMinute > 0 {
			r.Use(httprate.LimitByIP(s.config.RateLimitPerMinute, time.Minute))
		}

		r.Route("/medias", func(r chi.Router) {
			r.Post("/", mediaHandler.HandleCreate)
			r.Get("/", mediaHandler.HandleList)
			r.Get("/{id}", mediaHandler.HandleGet)
			r.Put("/{id}", mediaHandler.HandleUpdate)
			r.Delete("/{id}", mediaHandler.HandleDelete)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Post("/", postHandler.HandleCreate)
			r.Get("/", postHandler.HandleList)
			r.Get("/{id}", postHandler.HandleGet)
			r.Put("/{id}", postHandler.HandleUpdate)
			r.Delete("/{id}", postHandler.HandleDelete)
		})

		r.Route("/publications", func(r chi.Router) {
			r.Post("/", publicationHandler.HandleCreate)
			r.Get("/", publicationHandler.HandleList)
			r.Get("/{id}", publicationHandler.HandleGet)
			r.Put("/{id}", publicationHandler.HandleUpdate)
			r.Delete("/{id}", publicationHandler.HandleDelete)
		})
	})
}

// Start serves until SIGINT/SIGTERM, then drains in-flight requests for up to
// ShutdownTimeout and closes the store.
func (s *Server) Start() error {
	defer s.store.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("driver", s.config.DBDriver),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
