// Package api exposes the rating update over HTTP for analysis drivers.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/utakatalp/league-elo/internal/config"
	"github.com/utakatalp/league-elo/pkg/logging"
	"go.uber.org/zap"
)

// Version is reported by /health.
const Version = "0.1.0"

const shutdownTimeout = 10 * time.Second

// Server routes rating requests to the elo and league packages.
type Server struct {
	cfg    config.Config
	router *mux.Router
	now    func() time.Time
}

// NewServer builds a Server with its routes registered.
func NewServer(cfg config.Config) *Server {
	s := &Server{
		cfg:    cfg,
		router: mux.NewRouter(),
		now:    time.Now,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(requestID, accessLog)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/elo/update", s.handleUpdate).Methods(http.MethodPost)
	s.router.HandleFunc("/elo/batch", s.handleBatch).Methods(http.MethodPost)
	s.router.HandleFunc("/matches/simulate", s.handleSimulate).Methods(http.MethodPost)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.cfg.Port,
		Handler:     s,
		IdleTimeout: s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("listening", zap.String("addr", s.cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
