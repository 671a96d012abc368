package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mark3labs/onboard/internal/config"
)

var setupFlags struct {
	project bool
	force   bool
	apiURL  string
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create onboard configuration file",
	Long: `Create an onboard configuration file with sensible defaults.

By default, creates a global config at ~/.config/onboard/onboard.yml.
Use --project to create a project-local config in the current directory.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	setupCmd.Flags().StringVar(&setupFlags.apiURL, "api-url", "", "Registration API base URL to store")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := config.Default()
	if setupFlags.apiURL != "" {
		cfg.APIURL = setupFlags.apiURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config written to: %s\n\n", targetPath)
	fmt.Fprintln(cmd.OutOrStdout(), "Run 'onboard signup' to get started.")
	return nil
}

// fileExists checks if a file exists (helper for setup command).
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
