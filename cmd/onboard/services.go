package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/onboard/internal/account"
	"github.com/mark3labs/onboard/internal/config"
	"github.com/mark3labs/onboard/internal/logger"
	"github.com/mark3labs/onboard/internal/outbox"
	"github.com/mark3labs/onboard/internal/signup"
)

// loadConfig loads configuration and applies its logging settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	return cfg, nil
}

// services are the backends shared by the signup, mcp commands.
type services struct {
	accounts signup.AccountService
	outbox   *outbox.Outbox // nil unless invite_outbox is enabled
}

// invites returns the outbox as an InviteQueue, or nil when disabled.
func (s *services) invites() signup.InviteQueue {
	if s.outbox == nil {
		return nil
	}
	return s.outbox
}

func (s *services) Close() {
	if s.outbox == nil {
		return
	}
	if err := s.outbox.Close(); err != nil {
		logger.Warn("Closing invite outbox: %v", err)
	}
}

func openServices(ctx context.Context, cfg *config.Config) (*services, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}

	svc := &services{
		accounts: account.NewClient(cfg.RegisterURL(), account.WithTimeout(timeout)),
	}
	logger.Debug("Registration endpoint: %s", cfg.RegisterURL())

	if cfg.InviteOutbox {
		ob, err := outbox.Open(ctx, cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open invite outbox: %w", err)
		}
		svc.outbox = ob
	}
	return svc, nil
}
