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
	"github.com/mark3labs/onboard/internal/signupmcp"
)

var mcpFlags struct {
	addr string
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the signup tools over MCP",
	Long: `Start a streamable-HTTP MCP server exposing the signup flow as tools.

validate_step checks one step's fields with the same rules as the wizard.
create_account validates every step, then makes the single registration call.`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpFlags.addr, "addr", "", "Listen address (default: mcp_addr)")
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := mcpFlags.addr
	if addr == "" {
		addr = cfg.MCPAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := openServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	srv := signupmcp.New(signupmcp.Config{
		Accounts:     svc.accounts,
		Invites:      svc.invites(),
		LandingRoute: cfg.LandingRoute,
		Version:      version,
	})
	if _, err := srv.Start(ctx, addr); err != nil {
		return fmt.Errorf("failed to start MCP server: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on %s\n", srv.URL())

	<-ctx.Done()

	fmt.Fprintln(cmd.OutOrStdout(), "\nShutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(stopCtx); err != nil {
		logger.Error("MCP server shutdown: %v", err)
		return err
	}
	return nil
}
