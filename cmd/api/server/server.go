package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"usuarios-api/cmd/api/di"
	ginrouter "usuarios-api/internal/adapter/gin/router"
	"usuarios-api/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server owns the HTTP listener of the service
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, l *zap.Logger, container *di.Container) *Server {
	gin.SetMode(ginMode(cfg.App.Environment))

	opts := ginrouter.Options{
		ServiceName:        cfg.Logger.ServiceName,
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		MetricsEnabled:     cfg.HTTP.MetricsEnabled,
	}

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP:   SetupGinServer(container.GinHandler, container.RateLimiter, opts, address(cfg), l),
	}
}

// Start listens on the configured port and serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	lis, err := lc.Listen(ctx, "tcp", s.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.Logger.Info("HTTP server running", zap.String("address", lis.Addr().String()))

	if err := s.HTTP.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.HTTP.Shutdown(ctx)
}

func address(cfg *config.Config) string {
	return ":" + cfg.App.Port
}
