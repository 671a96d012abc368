// Package headless runs the signup flow from a YAML file without the TUI.
package headless

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mark3labs/onboard/internal/logger"
	"github.com/mark3labs/onboard/internal/signup"
)

// ErrInvalid is returned when the file fails step validation.
var ErrInvalid = errors.New("signup file has validation errors")

// Options wires a headless run.
type Options struct {
	Accounts      signup.AccountService
	Invites       signup.InviteQueue // optional
	LandingRoute  string
	RedirectDelay time.Duration
	AfterFunc     func(time.Duration, func()) // optional, for tests
	Out           io.Writer
}

// ReadFile decodes a signup file into an aggregate. Invite roles are
// normalized to their canonical spelling.
func ReadFile(path string) (*signup.Aggregate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening signup file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// Decode reads a YAML aggregate from r.
func Decode(r io.Reader) (*signup.Aggregate, error) {
	var a signup.Aggregate
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&a); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing signup file: %w", err)
	}
	for i := range a.Invites {
		if role, err := signup.ParseRole(string(a.Invites[i].Role)); err == nil {
			a.Invites[i].Role = role
		}
	}
	return &a, nil
}

// Validate runs every step validator plus the per-invite check and reports
// all problems, grouped by step.
func Validate(a *signup.Aggregate) map[int][]string {
	problems := make(map[int][]string)
	for step := 1; step <= signup.NumSteps; step++ {
		if errs := signup.ValidateStep(step, a); len(errs) > 0 {
			problems[step] = errs
		}
	}
	for i, inv := range a.Invites {
		for _, e := range signup.ValidateInvite(inv) {
			problems[signup.StepInvites] = append(problems[signup.StepInvites], fmt.Sprintf("invite %d: %s", i+1, e))
		}
	}
	return problems
}

// Run validates a, creates the account with one register call and waits for
// the redirect. The returned route is where the caller should continue.
func Run(ctx context.Context, a *signup.Aggregate, opts Options) (*signup.Outcome, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	if problems := Validate(a); len(problems) > 0 {
		for step := 1; step <= signup.NumSteps; step++ {
			errs, ok := problems[step]
			if !ok {
				continue
			}
			_, _ = fmt.Fprintf(out, "Step %d (%s):\n", step, signup.StepNames[step-1])
			for _, e := range errs {
				_, _ = fmt.Fprintf(out, "  - %s\n", e)
			}
		}
		return nil, ErrInvalid
	}

	redirected := make(chan string, 1)
	coord := signup.NewCoordinator(signup.CoordinatorConfig{
		Accounts:      opts.Accounts,
		Invites:       opts.Invites,
		LandingRoute:  opts.LandingRoute,
		RedirectDelay: opts.RedirectDelay,
		AfterFunc:     opts.AfterFunc,
		Navigator: signup.NavigatorFunc(func(route string) {
			redirected <- route
		}),
	})

	_, _ = fmt.Fprintf(out, "Creating account for %s...\n", strings.TrimSpace(a.Email))
	outcome, err := coord.Submit(ctx, a, signup.ModeCreate)
	if err != nil {
		return nil, fmt.Errorf("account creation failed: %s", signup.ErrorMessage(err))
	}

	_, _ = fmt.Fprintf(out, "Account created: user %s, company %s\n", outcome.Account.UserID, outcome.Account.CompanyID)
	if outcome.InvitesPending > 0 {
		_, _ = fmt.Fprintf(out, "%d team invite(s) held for sending\n", outcome.InvitesPending)
	}

	select {
	case route := <-redirected:
		logger.Debug("Headless signup redirected to %s", route)
		return outcome, nil
	case <-ctx.Done():
		return outcome, ctx.Err()
	}
}
