package signup

import (
	"context"
	"sync"
	"time"

	"github.com/mark3labs/onboard/internal/logger"
)

// DefaultRedirectDelay is how long the confirmation screen stays up before
// navigating to the landing route.
const DefaultRedirectDelay = 2000 * time.Millisecond

// DefaultLandingRoute is the application's root route.
const DefaultLandingRoute = "/"

// Account is the user/session object returned by a successful register call.
type Account struct {
	UserID    string `json:"id"`
	Email     string `json:"email"`
	CompanyID string `json:"company_id,omitempty"`
	Token     string `json:"token,omitempty"`
}

// AccountService creates the company and its first user.
type AccountService interface {
	Register(ctx context.Context, p Payload) (*Account, error)
}

// Navigator moves the client to a route once signup is done.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

// Navigate calls f(route).
func (f NavigatorFunc) Navigate(route string) { f(route) }

// InviteQueue holds invites for a sender that does not exist yet.
type InviteQueue interface {
	Enqueue(ctx context.Context, company string, invites []Invite) error
}

// SubmitMode selects which step-4 action issued the submit.
type SubmitMode int

const (
	ModeCreate      SubmitMode = iota // "Create Account": confirmation screen, delayed redirect
	ModeSkipInvites                   // "Skip": no confirmation, immediate redirect
)

// String returns the mode name used in logs and tool output.
func (m SubmitMode) String() string {
	if m == ModeSkipInvites {
		return "skip-invites"
	}
	return "create"
}

// State is the submission state of step 4.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// SubmitError wraps a failed register call with the message shown to the user.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string { return e.Message }

func (e *SubmitError) Unwrap() error { return e.Err }

// Outcome describes a successful submit.
type Outcome struct {
	Account        *Account
	Mode           SubmitMode
	Confirmation   bool // show the confirmation screen before redirecting
	InvitesPending int  // user-added invites held for follow-up sending
	Route          string
}

// CoordinatorConfig wires a Coordinator.
type CoordinatorConfig struct {
	Accounts      AccountService
	Navigator     Navigator
	Invites       InviteQueue // optional
	LandingRoute  string
	RedirectDelay time.Duration
	// AfterFunc schedules the delayed redirect. Defaults to time.AfterFunc.
	AfterFunc func(d time.Duration, f func())
}

// Coordinator turns the aggregate into one register call per user submit.
// Create and Skip share one in-flight guard.
type Coordinator struct {
	accounts AccountService
	nav      Navigator
	invites  InviteQueue
	route    string
	delay    time.Duration
	after    func(time.Duration, func())

	mu      sync.Mutex
	state   State
	loading bool
	errMsg  string
	outcome *Outcome
}

// NewCoordinator builds a coordinator, filling defaults for the route, delay
// and scheduler.
func NewCoordinator(cfg CoordinatorConfig) *Coordinator {
	c := &Coordinator{
		accounts: cfg.Accounts,
		nav:      cfg.Navigator,
		invites:  cfg.Invites,
		route:    cfg.LandingRoute,
		delay:    cfg.RedirectDelay,
		after:    cfg.AfterFunc,
	}
	if c.route == "" {
		c.route = DefaultLandingRoute
	}
	if c.delay <= 0 {
		c.delay = DefaultRedirectDelay
	}
	if c.after == nil {
		c.after = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	if c.nav == nil {
		c.nav = NavigatorFunc(func(string) {})
	}
	return c
}

// begin claims the in-flight guard. Success is terminal, so it refuses then too.
func (c *Coordinator) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading || c.state == StateSuccess {
		return false
	}
	c.loading = true
	c.state = StateSubmitting
	c.errMsg = ""
	return true
}

func (c *Coordinator) endLoading() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if c.state == StateSubmitting {
		c.state = StateIdle
	}
}

// Submit sends the aggregate to the account service exactly once.
// It returns ErrSubmitInFlight without calling the service when another
// submit is pending or has already succeeded.
func (c *Coordinator) Submit(ctx context.Context, a *Aggregate, mode SubmitMode) (*Outcome, error) {
	if !c.begin() {
		logger.Debug("Submit ignored: a register call is already in flight")
		return nil, ErrSubmitInFlight
	}
	defer c.endLoading()

	payload := BuildPayload(a)
	logger.Info("Creating account for %s (%s)", payload.Email, mode)

	acct, err := c.accounts.Register(ctx, payload)
	if err != nil {
		msg := ErrorMessage(err)
		logger.Warn("Account creation failed: %v", err)
		c.mu.Lock()
		c.state = StateFailed
		c.errMsg = msg
		c.mu.Unlock()
		return nil, &SubmitError{Message: msg, Err: err}
	}

	out := &Outcome{
		Account:      acct,
		Mode:         mode,
		Confirmation: mode == ModeCreate,
		Route:        c.route,
	}

	if mode == ModeCreate {
		invites := a.SubmittableInvites()
		out.InvitesPending = len(invites)
		c.holdInvites(ctx, payload.CompanyName, invites)
	}

	c.mu.Lock()
	c.state = StateSuccess
	c.outcome = out
	c.mu.Unlock()

	if mode == ModeCreate {
		logger.Debug("Redirecting to %s in %s", c.route, c.delay)
		route := c.route
		c.after(c.delay, func() { c.nav.Navigate(route) })
	} else {
		c.nav.Navigate(c.route)
	}

	return out, nil
}

// holdInvites logs invites for follow-up and hands them to the queue when one
// is configured. No invite API exists, so nothing is sent remotely.
func (c *Coordinator) holdInvites(ctx context.Context, company string, invites []Invite) {
	if len(invites) == 0 {
		return
	}
	for _, inv := range invites {
		logger.Info("Pending invite for %s: %s (%s)", company, inv.Email, inv.Role)
	}
	if c.invites == nil {
		return
	}
	if err := c.invites.Enqueue(ctx, company, invites); err != nil {
		logger.Warn("Failed to queue %d invites: %v", len(invites), err)
	}
}

// Dismiss clears a failure alert and returns to Idle.
func (c *Coordinator) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateFailed {
		c.state = StateIdle
		c.errMsg = ""
	}
}

// State returns the current submission state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Loading reports whether a register call is pending.
func (c *Coordinator) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Error returns the message of the last failure, or "".
func (c *Coordinator) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Outcome returns the successful outcome, or nil.
func (c *Coordinator) Outcome() *Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}
