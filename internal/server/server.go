// Package server exposes the calculators and the demonstration program over
// HTTP with JSON responses, Prometheus metrics and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/agbru/seqcalc/internal/logging"
	"github.com/agbru/seqcalc/internal/program"
	"github.com/agbru/seqcalc/internal/sequence"
)

const (
	// ShutdownTimeout bounds the graceful shutdown.
	ShutdownTimeout = 10 * time.Second
	// DefaultRequestTimeout bounds one calculation.
	DefaultRequestTimeout = 30 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	httpServer *http.Server
	factory    sequence.CalculatorFactory
	logger     logging.Logger
	metrics    *Metrics
	security   SecurityConfig
	timeout    time.Duration
	plan       program.Plan
	version    string
	startTime  time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l logging.Logger) Option { return func(s *Server) { s.logger = l } }

// WithSecurityConfig replaces DefaultSecurityConfig.
func WithSecurityConfig(c SecurityConfig) Option { return func(s *Server) { s.security = c } }

// WithRequestTimeout bounds each calculation.
func WithRequestTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// WithPlan sets the base plan of /program.
func WithPlan(p program.Plan) Option { return func(s *Server) { s.plan = p } }

// WithVersion sets the version reported by /health.
func WithVersion(v string) Option { return func(s *Server) { s.version = v } }

// NewServer creates a server listening on addr.
func NewServer(addr string, factory sequence.CalculatorFactory, opts ...Option) *Server {
	s := &Server{
		factory:   factory,
		logger:    logging.NewDefaultLogger(),
		metrics:   NewMetrics(),
		security:  DefaultSecurityConfig(),
		timeout:   DefaultRequestTimeout,
		plan:      program.DefaultPlan(),
		version:   "dev",
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      s.timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	routes := map[string]http.HandlerFunc{
		"/fib":     s.handleCalculate(sequence.KindFibonacci),
		"/fac":     s.handleCalculate(sequence.KindFactorial),
		"/program": s.handleProgram,
		"/health":  s.handleHealth,
		"/metrics": s.handleMetrics,
	}
	for path, h := range routes {
		mux.HandleFunc(path, s.wrap(h))
	}
	mux.HandleFunc("/", s.wrap(s.handleNotFound))
	return mux
}

func (s *Server) wrap(h http.HandlerFunc) http.HandlerFunc {
	return requestIDMiddleware(SecurityMiddleware(s.security, s.loggingMiddleware(s.metricsMiddleware(h))))
}

// loggingMiddleware logs each request once it has been served.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)
		next(rec, r)
		s.logger.Debug("request served",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", rec.status),
			logging.Duration("duration", time.Since(start)),
			logging.String("request_id", RequestIDFromContext(r.Context())),
		)
	}
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully within ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}
