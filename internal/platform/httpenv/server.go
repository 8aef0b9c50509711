package httpenv

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/vovakirdan/noodle/internal/config"
)

// DefaultAddr is where the environment server listens by default.
const DefaultAddr = ":8080"

// ServerConfig holds the HTTP environment server settings.
type ServerConfig struct {
	Addr        string
	MaxSessions int
	Snake       config.SnakeConfig
}

// Server runs the environment API on hertz.
type Server struct {
	cfg      ServerConfig
	sessions *Sessions
	logger   *log.Logger
	hertz    *server.Hertz
}

// NewServer builds the server and registers its routes.
func NewServer(cfg ServerConfig, logger *log.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if logger == nil {
		logger = log.Default()
	}

	sessions := NewSessions(cfg.Snake, cfg.MaxSessions)
	h := server.Default(server.WithHostPorts(cfg.Addr))
	h.Use(corsMiddleware(), accessLog(logger))
	Handler{Sessions: sessions, Logger: logger}.RegisterRoutes(h)

	return &Server{cfg: cfg, sessions: sessions, logger: logger, hertz: h}
}

// Sessions returns the server's session table.
func (s *Server) Sessions() *Sessions {
	return s.sessions
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.hertz.Run()
	}()
	s.logger.Info("env server listening", "addr", s.cfg.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down env server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.hertz.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func accessLog(logger *log.Logger) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		ctx.Next(c)
		logger.Debug("request",
			"method", string(ctx.Method()),
			"path", string(ctx.Path()),
			"status", ctx.Response.StatusCode(),
			"session", sessionID(ctx),
			"took", time.Since(start),
		)
	}
}
