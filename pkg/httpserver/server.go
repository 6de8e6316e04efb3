package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/hiredesk/hiredesk/pkg/logger"
)

// Config holds environment-driven server settings. It is used by the local
// development server; production deployments of the API live elsewhere.
type Config struct {
	Addr            string        `env:"HIREDESK_FAKE_ADDR" envDefault:"localhost:8000"`
	ReadTimeout     time.Duration `env:"HIREDESK_FAKE_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HIREDESK_FAKE_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"HIREDESK_FAKE_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Server wraps http.Server with context-driven graceful shutdown.
type Server struct {
	cfg Config
	log *slog.Logger

	mu  sync.Mutex
	srv *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. Defaults to a discard logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a server for the given configuration. Zero config fields fall
// back to their envDefault values.
func New(cfg Config, opts ...Option) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:8000"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	s := &Server{cfg: cfg, log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run serves handler on the configured address and blocks until ctx is
// cancelled or the listener fails. Cancellation triggers a graceful shutdown
// bounded by the shutdown timeout.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, errors.New("server already running"))
	}
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
	s.srv = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.log.Info("server listening", "addr", s.cfg.Addr)

	var runErr error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			runErr = errors.Join(ErrShutdown, err)
		}
		<-errCh
	case runErr = <-errCh:
		if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
			runErr = errors.Join(ErrStart, runErr)
		}
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return runErr
	}
	s.log.Info("server stopped")
	return nil
}
