package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mark3labs/onboard/internal/logger"
	"github.com/mark3labs/onboard/internal/mockapi"
)

var mockAPIFlags struct {
	addr string
}

var mockAPICmd = &cobra.Command{
	Use:   "mock-api",
	Short: "Serve an in-memory registration API for local testing",
	Long: `Serve the registration endpoint from memory.

Users and companies live only as long as the process. Passwords are bcrypt
hashed and duplicate emails are rejected with 409 "Email already exists", so the wizard's
failure path can be exercised locally.`,
	RunE: runMockAPI,
}

func init() {
	mockAPICmd.Flags().StringVar(&mockAPIFlags.addr, "addr", "", "Listen address (default: mock_api_addr)")
}

func runMockAPI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := mockAPIFlags.addr
	if addr == "" {
		addr = cfg.MockAPIAddr
	}

	srv := mockapi.NewServer(mockapi.NewStore(0), cfg.RegisterPath)
	if err := srv.Start(addr); err != nil {
		return fmt.Errorf("failed to start mock API: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Mock API listening on %s%s\n", srv.URL(), cfg.RegisterPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Fprintln(cmd.OutOrStdout(), "\nShutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Mock API shutdown: %v", err)
		return err
	}
	return nil
}
