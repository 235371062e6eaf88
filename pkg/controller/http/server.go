package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/commet/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr        string
	backendName string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithBackendName sets the backend name reported by the health check
func WithBackendName(name string) Option {
	return func(c *config) {
		c.backendName = name
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	analysisUC interfaces.AnalysisUseCase,
	branchUC interfaces.BranchUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr:        "localhost:8080",
		backendName: "remote",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	router.Get("/health", healthHandler(cfg.backendName))

	analysisHandler := NewAnalysisHandler(analysisUC)
	branchHandler := NewBranchHandler(branchUC)

	router.Route("/api", func(r chi.Router) {
		r.Get("/branches", branchHandler.List)
		r.Post("/projects/connections", handleConnections)
		r.Post("/analysis", analysisHandler.Submit)
		r.Post("/analysis/stream", analysisHandler.Stream)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
