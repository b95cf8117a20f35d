// Package httpapi serves the question-answering API over HTTP.
//
// Routes:
//
//	GET  /               liveness message
//	GET  /healthz        health check
//	POST /ask            {question, context?} -> {answer, error?}
//	POST /upload_report  multipart "file"     -> {text} or {error}
//
// Pipeline failures are reported in the JSON body with status 200; only
// malformed requests, oversize uploads and rate limiting use error codes.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/core/ports/driving"
	"github.com/custodia-labs/reportqa/internal/logger"
)

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("httpapi: answer service is required")

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Config configures the HTTP server.
type Config struct {
	// Addr is the listen address (default :8000).
	Addr string

	// CORSOrigins lists allowed origins. "*" allows any.
	CORSOrigins []string

	// RequestsPerSecond is the sustained request rate. Zero disables limiting.
	RequestsPerSecond float64

	// Burst is the token bucket size.
	Burst int

	// MaxUploadBytes bounds report uploads (default 10 MiB).
	MaxUploadBytes int64
}

// ConfigFromSettings maps server settings onto Config.
func ConfigFromSettings(s domain.ServerSettings) Config {
	return Config{
		Addr:              s.Addr,
		CORSOrigins:       s.CORSOrigins,
		RequestsPerSecond: s.RequestsPerSecond,
		Burst:             s.Burst,
		MaxUploadBytes:    s.MaxUploadBytes,
	}
}

// Server is the HTTP API.
type Server struct {
	answers driving.AnswerService
	reports driving.ReportService
	cfg     Config
	limiter *rate.Limiter
}

// NewServer creates an HTTP API server. reports may be nil, in which case
// uploads report that OCR is unavailable.
func NewServer(answers driving.AnswerService, reports driving.ReportService, cfg Config) (*Server, error) {
	if answers == nil {
		return nil, ErrMissingAnswerService
	}
	if cfg.Addr == "" {
		cfg.Addr = domain.DefaultServerAddr
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = domain.DefaultMaxUploadBytes
	}

	s := &Server{
		answers: answers,
		reports: reports,
		cfg:     cfg,
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return s, nil
}

// Handler returns the routed handler wrapped in middleware. The order,
// outermost first, is recovery, access log, CORS, rate limit.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /ask", s.handleAsk)
	mux.HandleFunc("POST /upload_report", s.handleUpload)

	var h http.Handler = mux
	h = s.rateLimit(h)
	h = cors(s.cfg.CORSOrigins, h)
	h = accessLog(h)
	h = recoverer(h)
	return h
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// Run listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()
	logger.Info("http: listening on %s", ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("http: stopped")
	return nil
}
