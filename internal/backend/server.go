package backend

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const DefaultShutdownTimeout = 10 * time.Second

// Server runs the router until its context is cancelled and then shuts
// down gracefully.
type Server struct {
	server          *http.Server
	shutdownTimeout time.Duration
	log             *zap.SugaredLogger
}

type ServerOption func(*Server)

// WithErrorLog routes net/http's internal errors (TLS handshakes, panics
// in handlers outside gin) to l.
func WithErrorLog(l *log.Logger) ServerOption {
	return func(s *Server) {
		s.server.ErrorLog = l
	}
}

func NewServer(addr string, handler http.Handler, logger *zap.Logger, opts ...ServerOption) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: DefaultShutdownTimeout,
		log:             logger.Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run listens on the configured address.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("service_start", "service", "http", "addr", ln.Addr().String())
		errCh <- s.server.Serve(ln)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(stopCtx); err != nil {
		s.log.Errorw("service_stop_failed", "service", "http", "error", err)
	}
	s.log.Infow("service_exit", "service", "http")

	if runErr == nil || errors.Is(runErr, http.ErrServerClosed) {
		return nil
	}
	return runErr
}
