package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/mark3labs/onboard/internal/logger"
	"github.com/mark3labs/onboard/internal/tui/theme"
)

const (
	logoText1 = "█▀█ █▄ █ █▄▄ █▀█ ▄▀█ █▀█ █▀▄"
	logoText2 = "█▄█ █ ▀█ █▄█ █▄█ █▀█ █▀▄ █▄▀"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Create your company account from the terminal",
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	// Set Long description with logo
	rootCmd.Long = renderLogo() + `

onboard walks a new customer through the four signup steps (account,
profile, company, team invites), validates each step locally, and creates
the company and its first user with a single call to the registration API.

It also ships a local mock of that API, an MCP server exposing the same
validation and account creation as tools, and an outbox that holds team
invites until invitations can be sent.`

	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(mockAPICmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(invitesCmd)
}
