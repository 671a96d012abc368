package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mark3labs/onboard/internal/headless"
	"github.com/mark3labs/onboard/internal/hooks"
	"github.com/mark3labs/onboard/internal/logger"
	"github.com/mark3labs/onboard/internal/signup"
	"github.com/mark3labs/onboard/internal/tui/signupwizard"
)

var signupFlags struct {
	file   string
	apiURL string
	outbox bool
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a company account",
	Long: `Walk through the four signup steps and create the account.

Without flags the interactive wizard is shown. With --file the signup data is
read from a YAML file, validated step by step, and submitted without a TUI.
The file uses the same field names as the wizard (email, firstName,
companyName, invites, ...).`,
	RunE: runSignup,
}

func init() {
	signupCmd.Flags().StringVarP(&signupFlags.file, "file", "f", "", "Read signup data from a YAML file and run headless")
	signupCmd.Flags().StringVar(&signupFlags.apiURL, "api-url", "", "Registration API base URL (overrides api_url)")
	signupCmd.Flags().BoolVar(&signupFlags.outbox, "outbox", false, "Hold team invites in the local outbox (overrides invite_outbox)")
}

func runSignup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if signupFlags.apiURL != "" {
		cfg.APIURL = signupFlags.apiURL
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("outbox") {
		cfg.InviteOutbox = signupFlags.outbox
	}

	delay, err := cfg.Delay()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := openServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	if signupFlags.file != "" {
		agg, err := headless.ReadFile(signupFlags.file)
		if err != nil {
			return err
		}
		outcome, err := headless.Run(ctx, agg, headless.Options{
			Accounts:      svc.accounts,
			Invites:       svc.invites(),
			LandingRoute:  cfg.LandingRoute,
			RedirectDelay: delay,
			Out:           cmd.OutOrStdout(),
		})
		if err != nil {
			return err
		}
		runHooks(ctx, cmd, outcome)
		printContinue(cmd, cfg.AppURL, outcome.Route)
		return nil
	}

	res, err := signupwizard.Run(signupwizard.Options{
		Accounts:      svc.accounts,
		Invites:       svc.invites(),
		LandingRoute:  cfg.LandingRoute,
		RedirectDelay: delay,
	})
	if errors.Is(err, signupwizard.ErrCancelled) {
		fmt.Fprintln(cmd.OutOrStdout(), "Signup cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	if res.Outcome != nil {
		logger.With("user", res.Outcome.Account.UserID, "company", res.Outcome.Account.CompanyID).
			Info("Signup finished", "mode", res.Outcome.Mode.String())
		if res.Outcome.Mode == signup.ModeCreate {
			fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s.\n", res.Outcome.Account.Email)
		}
		runHooks(ctx, cmd, res.Outcome)
	}
	printContinue(cmd, cfg.AppURL, res.Route)
	return nil
}

// runHooks runs post_signup hooks from the working directory. Hook failures
// are reported but never fail the signup.
func runHooks(ctx context.Context, cmd *cobra.Command, outcome *signup.Outcome) {
	out, err := hooks.RunPostSignup(ctx, ".", outcome)
	if err != nil {
		logger.Warn("Post-signup hooks: %v", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Post-signup hooks failed: %v\n", err)
		return
	}
	if out != "" {
		fmt.Fprint(cmd.OutOrStdout(), out)
	}
}

func printContinue(cmd *cobra.Command, appURL, route string) {
	if route == "" {
		return
	}
	target := route
	if appURL != "" {
		target = strings.TrimRight(appURL, "/") + route
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Continue at %s\n", target)
}
