// Package monitoring runs the monitoring server that exposes health and metrics
// while a seed run is in progress.
package monitoring

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"tea-backend/internal/handlers"
	"tea-backend/internal/health"
	h "tea-backend/internal/http"
	"tea-backend/internal/logger"
)

type Server struct {
	srv      *http.Server
	listener net.Listener
}

func NewServer(addr string, db health.Pinger) *Server {
	router := h.NewRouter(handlers.NewHealthHandler(health.NewHealthChecker(db)))
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start binds the address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.listener = ln

	go func() {
		logger.Info("serving health and metrics", zap.String("addr", ln.Addr().String()))
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("monitoring server failed", zap.Error(err))
		}
	}()
	return nil
}

// Addr is the bound address, useful when listening on port 0.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.srv.Addr
	}
	return s.listener.Addr().String()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
