// Package signupmcp exposes signup validation and account creation as MCP
// tools so agents and scripts can drive the same flow as the wizard.
package signupmcp

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mark3labs/onboard/internal/logger"
	"github.com/mark3labs/onboard/internal/signup"
)

// Config wires the server to the account backend.
type Config struct {
	Accounts     signup.AccountService
	Invites      signup.InviteQueue // optional
	LandingRoute string
	Version      string
}

// Server is a streamable-HTTP MCP server with the signup tools registered.
type Server struct {
	cfg        Config
	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
	addr       string
	mu         sync.Mutex
}

// New creates a server; it does not listen until Start.
func New(cfg Config) *Server {
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	s := &Server{cfg: cfg}
	s.mcpServer = server.NewMCPServer(
		"onboard-signup",
		cfg.Version,
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// Start listens on addr. A port of 0 picks a free port; the bound address is
// returned.
func (s *Server) Start(ctx context.Context, addr string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer != nil {
		return "", fmt.Errorf("server already started")
	}

	// Resolve port 0 to a concrete port first so URL() is accurate.
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to bind %s: %w", addr, err)
	}
	s.addr = listener.Addr().String()
	_ = listener.Close()

	s.httpServer = server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	)

	logger.Debug("Starting signup MCP server on %s", s.addr)

	httpServer := s.httpServer
	bound := s.addr
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start(bound)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.httpServer = nil
			return "", fmt.Errorf("failed to start HTTP server: %w", err)
		}
	case <-ctx.Done():
		s.httpServer = nil
		return "", ctx.Err()
	case <-time.After(100 * time.Millisecond):
	}

	logger.Info("Signup MCP server ready on %s", s.addr)
	return s.addr, nil
}

// Stop shuts the HTTP server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	s.httpServer = nil
	logger.Debug("Signup MCP server stopped")
	return nil
}

// URL returns the MCP endpoint URL.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://%s/mcp", s.addr)
}

// MCPServer exposes the underlying server, e.g. for stdio transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}
