// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apihandler "github.com/newthinker/cryptofolio/internal/api/handler/api"
	"github.com/newthinker/cryptofolio/internal/api/handler/web"
	"github.com/newthinker/cryptofolio/internal/api/middleware"
	"github.com/newthinker/cryptofolio/internal/api/response"
	"github.com/newthinker/cryptofolio/internal/format"
	"github.com/newthinker/cryptofolio/internal/metrics"
	"github.com/newthinker/cryptofolio/internal/portfolio"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server represents the HTTP server for the portfolio UI and API
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	stopTrack  func()
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	APIKey         string
	TemplatesDir   string
	MetricsEnabled bool
	MetricsPath    string
}

// Dependencies holds the services the routes are built on.
type Dependencies struct {
	Portfolio *portfolio.Portfolio
	Metrics   *metrics.Registry // nil disables metrics
	Formatter format.Formatter
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if deps.Portfolio == nil {
		return nil, fmt.Errorf("portfolio is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Formatter == (format.Formatter{}) {
		deps.Formatter = format.Default()
	}

	mux := http.NewServeMux()

	s := &Server{
		logger:    logger,
		mux:       mux,
		stopTrack: func() {},
	}

	if err := s.setupRoutes(cfg, deps); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	var handler http.Handler = mux
	if deps.Metrics != nil {
		handler = middleware.Chain(mux, metrics.HTTPMiddleware(deps.Metrics))
		s.stopTrack = deps.Metrics.TrackPortfolio(deps.Portfolio)
	}
	handler = middleware.Chain(handler, metrics.LoggingMiddleware(logger))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config, deps Dependencies) error {
	var onReject func(code string)
	if deps.Metrics != nil {
		onReject = deps.Metrics.RecordRejected
	}

	// Web UI routes
	webHandler, err := web.NewHandler(cfg.TemplatesDir, deps.Portfolio,
		web.WithFormatter(deps.Formatter),
		web.WithLogger(s.logger),
		web.WithRejectHook(onReject),
	)
	if err != nil {
		return fmt.Errorf("creating web handler: %w", err)
	}

	s.mux.HandleFunc("GET /{$}", webHandler.Portfolio)
	s.mux.HandleFunc("POST /assets", webHandler.AddAsset)
	s.mux.HandleFunc("POST /assets/{id}/delete", webHandler.RemoveAsset)

	// Health check (no auth)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	// JSON API routes
	auth := middleware.APIKeyAuth(cfg.APIKey, s.logger)
	portfolioHandler := apihandler.NewPortfolioHandler(deps.Portfolio, s.logger)
	portfolioHandler.OnReject(onReject)

	s.mux.Handle("GET /api/v1/portfolio", auth(http.HandlerFunc(portfolioHandler.Get)))
	s.mux.Handle("POST /api/v1/portfolio/assets", auth(http.HandlerFunc(portfolioHandler.Add)))
	s.mux.Handle("DELETE /api/v1/portfolio/assets/{id}", auth(http.HandlerFunc(portfolioHandler.Remove)))
	s.mux.Handle("GET /api/v1/market", auth(http.HandlerFunc(portfolioHandler.Market)))

	if cfg.MetricsEnabled && deps.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle("GET "+path, promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	return nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	s.stopTrack()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
