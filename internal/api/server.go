package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/retail-insights/transactions-api/internal/domain"
)

// Server represents the HTTP API server.
type Server struct {
	router  *chi.Mux
	handler *Handler
	server  *http.Server
	config  domain.ServerConfig
}

// NewServer creates the API server and wires the full route table.
func NewServer(cfg domain.ServerConfig, rateCfg domain.RateLimitConfig, repo domain.Repository, version string) *Server {
	handler := NewHandler(repo, version)
	router := chi.NewRouter()

	// Global middleware stack
	router.Use(CORSMiddleware)
	router.Use(RecoverMiddleware)
	router.Use(TracingMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(middleware.RealIP)
	router.Use(middleware.Compress(5))
	router.Use(RateLimitMiddleware(NewRateLimiter(rateCfg)))

	// Service metadata and database-backed health probe
	router.Get("/", handler.Root)
	router.Get("/health", handler.Health)

	// Versioned reporting API
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.HealthV1)

		r.Get("/transactions", handler.ListTransactions)
		r.Get("/transactions/", handler.ListTransactions)
		r.Get("/transactions/summary", handler.Summary)
		r.Get("/transactions/by-category", handler.SummaryByCategory)
		r.Get("/transactions/by-country", handler.SummaryByCountry)
	})

	return &Server{
		router:  router,
		handler: handler,
		config:  cfg,
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the Chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
