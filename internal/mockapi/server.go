package mockapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mark3labs/onboard/internal/config"
	"github.com/mark3labs/onboard/internal/logger"
)

// NewRouter builds the chi router. registerPath defaults to
// config.DefaultRegisterPath.
func NewRouter(store *Store, registerPath string) *chi.Mux {
	if registerPath == "" {
		registerPath = config.DefaultRegisterPath
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Recovery)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	h := NewHandler(store)
	r.Get("/health", h.Health)
	r.Post(registerPath, h.Register)

	return r
}

// Server runs the mock API on a TCP address.
type Server struct {
	store *Store
	srv   *http.Server
	ln    net.Listener
	wg    sync.WaitGroup
}

// NewServer prepares a server; call Start to listen.
func NewServer(store *Store, registerPath string) *Server {
	return &Server{
		store: store,
		srv: &http.Server{
			Handler:           NewRouter(store, registerPath),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start listens on addr and serves in the background. Use "127.0.0.1:0"
// for an ephemeral port.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	s.ln = ln

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("mock API server error: %v", err)
		}
	}()

	logger.Info("Mock API listening on %s", ln.Addr())
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	return "http://" + s.Addr()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.srv.Shutdown(ctx)
	s.wg.Wait()
	return err
}
