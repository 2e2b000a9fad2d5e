// File: server.go
// Title: dtparse HTTP Server
// Description: Wires the parser cache, HTTP handler, WebSocket stream and
//              locale watcher into one http.Server with request ID and
//              access logging middleware.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package server

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/msto63/dtparse/core/config"
	dterror "github.com/msto63/dtparse/core/error"
	dtlog "github.com/msto63/dtparse/core/log"
)

// Server is the dtparse HTTP server
type Server struct {
	httpServer *http.Server
	handler    *Handler
	parsers    *Parsers
	watcher    *LocaleWatcher
	logger     *dtlog.Logger
	config     Config
}

// Config holds server configuration
type Config struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	AllowedOrigins  []string
	Version         string

	// LocalesDir is watched for changes when WatchLocales is set
	LocalesDir   string
	WatchLocales bool
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return ConfigFrom(config.Default(), "dev")
}

// ConfigFrom extracts the server settings from the application config
func ConfigFrom(cfg *config.Config, version string) Config {
	return Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout.Duration,
		WriteTimeout:    cfg.Server.WriteTimeout.Duration,
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration,
		MaxBodyBytes:    cfg.Server.MaxBodyBytes,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		Version:         version,
		LocalesDir:      cfg.Locales.Dir,
		WatchLocales:    cfg.Locales.Watch,
	}
}

// New creates a new server around parsers
func New(cfg Config, parsers *Parsers, logger *dtlog.Logger) *Server {
	if logger == nil {
		logger = dtlog.GetDefault()
	}
	logger = logger.WithName("server")

	h := NewHandler(parsers, cfg.Version, cfg.MaxBodyBytes, logger)
	ws := NewWebSocketHandler(h, cfg.AllowedOrigins, logger)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/parse/ws", ws)
	mux.Handle("/health", h)
	mux.Handle("/api/v1/", h)

	s := &Server{
		handler: h,
		parsers: parsers,
		logger:  logger,
		config:  cfg,
	}
	s.httpServer = &http.Server{
		Addr:         s.Address(),
		Handler:      requestIDMiddleware(loggingMiddleware(logger, mux)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if cfg.WatchLocales && cfg.LocalesDir != "" {
		s.watcher = NewLocaleWatcher(cfg.LocalesDir, parsers, logger)
	}
	return s
}

// Handler returns the root HTTP handler including middleware
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Address())
	if err != nil {
		return dterror.Wrap(err, "failed to listen").
			WithCode(dterror.CodeServiceUnavailable).
			WithOperation("server.Run").
			WithDetail("address", s.Address())
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.watcher != nil {
		if err := s.watcher.Start(ctx); err != nil {
			s.logger.WarnWithErr("Locale hot reload disabled", err)
		}
		defer s.watcher.Stop()
	}

	s.logger.Info("Starting dtparse server", dtlog.Fields{
		"address": ln.Addr().String(),
		"locale":  s.parsers.DefaultLocale(),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.Stop(shutdownCtx)
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping dtparse server")
	return s.httpServer.Shutdown(ctx)
}

// Address returns the server address
func (s *Server) Address() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

type ctxKey int

const loggerKey ctxKey = iota

// loggerFrom returns the request scoped logger or fallback
func loggerFrom(r *http.Request, fallback *dtlog.Logger) *dtlog.Logger {
	if l, ok := r.Context().Value(loggerKey).(*dtlog.Logger); ok {
		return l
	}
	return fallback
}

// requestIDMiddleware assigns every request an ID, reusing X-Request-ID
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		r.Header.Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *dtlog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqLogger := logger.WithRequestID(r.Header.Get("X-Request-ID"))
		r = r.WithContext(context.WithValue(r.Context(), loggerKey, reqLogger))

		// Wrap response writer to capture status code
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		reqLogger.Info("HTTP request", dtlog.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": wrapper.statusCode,
		}.Merge(dtlog.Duration("duration_ms", time.Since(start))))
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets the WebSocket upgrader take over the connection
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	return hj.Hijack()
}

func (w *responseWrapper) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
