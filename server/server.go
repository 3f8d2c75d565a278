// Package server exposes the sleep dashboard as a JSON API over gin.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spektr-org/sleepscope/analytics"
	"github.com/spektr-org/sleepscope/config"
	"github.com/spektr-org/sleepscope/schema"
)

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	logger *zap.Logger
	http   *http.Server
}

// New builds the router for dash. A nil logger discards logs.
func New(cfg *config.Config, dash *analytics.Dashboard, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	gin.SetMode(cfg.Server.Mode)

	router := gin.New()
	router.Use(RequestID(), AccessLog(log), Recovery(log))

	h := &handlers{
		dash:   dash,
		schema: schema.Describe(dash.Dataset()),
		log:    log,
	}
	registerRoutes(router, h)

	return &Server{
		config: cfg,
		router: router,
		logger: log,
	}
}

func registerRoutes(router *gin.Engine, h *handlers) {
	v1 := router.Group("/api/v1")
	v1.GET("/healthz", h.health)
	v1.GET("/schema", h.getSchema)

	v1.GET("/employees", h.listEmployees)
	v1.GET("/employees/:id/records", h.employeeRecords)
	v1.GET("/employees/:id/stats", h.employeeStats)
	v1.GET("/employees/:id/profile", h.employeeProfile)
	v1.GET("/records", h.listRecords)

	v1.GET("/averages", h.averages)
	v1.GET("/distribution/:date", h.distribution)
	v1.POST("/quartiles", h.quartiles)
	v1.GET("/boxplots", h.boxPlots)
	v1.GET("/histogram", h.histogram)
	v1.GET("/comparison", h.comparison)
	v1.GET("/summary", h.summary)
	v1.GET("/breakdown", h.breakdown)

	v1.GET("/charts/overview", h.overview)
	v1.GET("/charts/individual", h.individual)

	v1.GET("/export.csv", h.exportCSV)
	v1.GET("/export.xlsx", h.exportXLSX)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, Fail("route not found"))
	})
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s.http = &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("🚀 HTTP server listening", zap.String("addr", s.http.Addr))
		serverErrors <- s.http.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("🛑 shutdown requested")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error("❌ HTTP server shutdown error", zap.Error(err))
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("✅ HTTP server stopped")
	return nil
}
