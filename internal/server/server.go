// Package server exposes the discovery pipeline and advisory layer
// over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tharunlokeshu/agriscout/internal/advisory"
	"github.com/tharunlokeshu/agriscout/internal/discover"
	"github.com/tharunlokeshu/agriscout/internal/store"
)

// Server wires the HTTP handlers to the pipeline components. History
// and Advisor may be nil; the corresponding endpoints then report the
// feature as disabled.
type Server struct {
	discoverer *discover.Discoverer
	history    *store.History
	advisor    *advisory.Advisor
	logger     *zap.Logger
}

// New creates a Server.
func New(d *discover.Discoverer, history *store.History, advisor *advisory.Advisor, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		discoverer: d,
		history:    history,
		advisor:    advisor,
		logger:     logger,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/vendors", s.handleVendors)
	mux.HandleFunc("POST /api/vendors/pdf", s.handleVendorsPDF)
	mux.HandleFunc("POST /api/user-inputs", s.handleSaveUserInput)
	mux.HandleFunc("GET /api/user-inputs/{userId}", s.handleUserInputs)
	mux.HandleFunc("GET /api/discoveries", s.handleDiscoveries)
	mux.HandleFunc("POST /api/recommended-crops", s.handleRecommendedCrops)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.logRequests(mux)
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
