package signupwizard

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/onboard/internal/signup"
	"github.com/mark3labs/onboard/internal/tui/testfixtures"
	"github.com/mark3labs/onboard/internal/tui/wizard"
)

// manualClock captures the redirect timer so tests can fire it on demand.
type manualClock struct {
	mu     sync.Mutex
	delays []time.Duration
	fns    []func()
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delays = append(c.delays, d)
	c.fns = append(c.fns, f)
}

func (c *manualClock) Fire() {
	c.mu.Lock()
	fns := c.fns
	c.fns = nil
	c.mu.Unlock()
	for _, f := range fns {
		f()
	}
}

type harness struct {
	m        *WizardModel
	accounts *testfixtures.MockAccounts
	nav      *testfixtures.MockNavigator
	queue    *testfixtures.MockInviteQueue
	clock    *manualClock
}

func newHarness(initial *signup.Aggregate) *harness {
	h := &harness{
		accounts: testfixtures.NewMockAccounts(),
		nav:      testfixtures.NewMockNavigator(),
		queue:    testfixtures.NewMockInviteQueue(),
		clock:    &manualClock{},
	}
	h.m = New(Options{
		Accounts:      h.accounts,
		Invites:       h.queue,
		Navigator:     h.nav,
		RedirectDelay: 2 * time.Second,
		AfterFunc:     h.clock.AfterFunc,
		Initial:       initial,
	})
	h.m.Init()
	h.m.Update(tea.WindowSizeMsg{Width: testfixtures.TestTermWidth, Height: testfixtures.TestTermHeight})
	return h
}

func (h *harness) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = h.m.Update(testfixtures.Key(k))
	}
	return cmd
}

func (h *harness) typeText(text string) {
	for _, k := range testfixtures.Keys(text) {
		h.m.Update(k)
	}
}

func (h *harness) toInvites(t *testing.T) {
	t.Helper()
	for range 3 {
		h.m.Update(wizard.FormSubmitMsg{})
	}
	require.Equal(t, signup.StepInvites, h.m.Step(), "errors: %v", h.m.Errors())
}

// runCmd executes cmd, flattening batches, and returns the produced messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// deliverResults feeds SubmitResultMsgs from cmd back into the model.
func (h *harness) deliverResults(cmd tea.Cmd) int {
	n := 0
	for _, msg := range runCmd(cmd) {
		if res, ok := msg.(SubmitResultMsg); ok {
			h.m.Update(res)
			n++
		}
	}
	return n
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestWizard_StartsOnCredentials(t *testing.T) {
	h := newHarness(nil)
	require.Equal(t, signup.StepCredentials, h.m.Step())

	out := testfixtures.Plain(h.m.render())
	assert.Contains(t, out, "Create your account")
	assert.Contains(t, out, "Step 1 of 4")
	assert.Contains(t, out, "● Account")
	assert.Contains(t, out, "○ Invite Team")
}

func TestWizard_NextBlockedByValidation(t *testing.T) {
	h := newHarness(nil)
	h.m.Update(wizard.FormSubmitMsg{})

	require.Equal(t, signup.StepCredentials, h.m.Step())
	require.Equal(t, []string{
		"Email is required",
		"Password is required",
		"Please confirm your password",
	}, h.m.Errors())
	assert.Contains(t, testfixtures.Plain(h.m.render()), "Email is required")
}

func TestWizard_TypeCredentialsAndAdvance(t *testing.T) {
	h := newHarness(nil)
	h.typeText("jane@acme.com")
	h.press("tab")
	h.typeText("password123")
	h.press("tab")
	h.typeText("password123")

	h.m.Update(wizard.FormSubmitMsg{})
	require.Equal(t, signup.StepProfile, h.m.Step(), "errors: %v", h.m.Errors())
	assert.Equal(t, "jane@acme.com", h.m.Data().Email)
	assert.Equal(t, "password123", h.m.Data().ConfirmPassword)
	assert.Empty(t, h.m.Errors())
}

func TestWizard_PasswordMismatch(t *testing.T) {
	a := &signup.Aggregate{}
	a.Merge(testfixtures.CredentialsPatch())
	a.ConfirmPassword = "password124"

	h := newHarness(a)
	h.m.Update(wizard.FormSubmitMsg{})
	require.Equal(t, signup.StepCredentials, h.m.Step())
	require.Equal(t, []string{"Passwords do not match"}, h.m.Errors())
}

func TestWizard_BackKeepsValuesAndClearsErrors(t *testing.T) {
	a := &signup.Aggregate{}
	a.Merge(testfixtures.CredentialsPatch())
	h := newHarness(a)

	h.m.Update(wizard.FormSubmitMsg{})
	require.Equal(t, signup.StepProfile, h.m.Step())

	// Fail step 2, then go back
	h.m.Update(wizard.FormSubmitMsg{})
	require.NotEmpty(t, h.m.Errors())
	h.press("esc")
	require.Equal(t, signup.StepCredentials, h.m.Step())
	assert.Equal(t, testfixtures.FixedEmail, h.m.forms[signup.StepCredentials].Value(string(signup.FieldEmail)))

	h.m.Update(wizard.FormSubmitMsg{})
	require.Equal(t, signup.StepProfile, h.m.Step())
	assert.Empty(t, h.m.Errors(), "errors are step-local and reset on leaving the step")
}

func TestWizard_EscOnFirstStepCancels(t *testing.T) {
	h := newHarness(nil)
	cmd := h.press("esc")
	require.True(t, h.m.Cancelled())
	require.True(t, isQuit(cmd))
}

func TestWizard_CtrlCCancels(t *testing.T) {
	h := newHarness(testfixtures.CompleteAggregate())
	h.toInvites(t)
	cmd := h.press("ctrl+c")
	require.True(t, h.m.Cancelled())
	require.True(t, isQuit(cmd))
	require.Zero(t, h.accounts.Calls())
}

func TestWizard_TabReachesButtons(t *testing.T) {
	a := &signup.Aggregate{}
	a.Merge(testfixtures.CredentialsPatch())
	h := newHarness(a)

	// Tab through the three fields; the last one hands focus to the buttons
	h.press("tab", "tab")
	for _, msg := range runCmd(h.press("tab")) {
		h.m.Update(msg)
	}
	require.True(t, h.m.buttonFocused)
	require.Equal(t, wizard.ButtonNext, h.m.buttonBar.FocusedButton(), "Back is disabled on step 1")

	// Right past the last button wraps back into the form
	h.press("right")
	require.False(t, h.m.buttonFocused)

	h.m.Update(wizard.TabExitBackwardMsg{})
	require.True(t, h.m.buttonFocused)
	h.press("enter")
	require.Equal(t, signup.StepProfile, h.m.Step())
	require.False(t, h.m.buttonFocused)
}

func TestWizard_BackButton(t *testing.T) {
	h := newHarness(testfixtures.CompleteAggregate())
	h.m.Update(wizard.FormSubmitMsg{})
	require.Equal(t, signup.StepProfile, h.m.Step())

	h.m.Update(wizard.TabExitForwardMsg{})
	require.Equal(t, wizard.ButtonBack, h.m.buttonBar.FocusedButton())
	h.press("enter")
	require.Equal(t, signup.StepCredentials, h.m.Step())
}

func TestWizard_ProgressAdvances(t *testing.T) {
	h := newHarness(testfixtures.CompleteAggregate())
	h.toInvites(t)

	out := testfixtures.Plain(h.m.render())
	assert.Contains(t, out, "✓ Account")
	assert.Contains(t, out, "✓ Company")
	assert.Contains(t, out, "● Invite Team")
	assert.Contains(t, out, "100%")
}

func TestWizard_CreateAccount(t *testing.T) {
	h := newHarness(testfixtures.CompleteAggregate())
	h.toInvites(t)

	h.typeText("bob@acme.com")
	h.m.Update(wizard.FormSubmitMsg{})
	require.Len(t, h.m.Data().Invites, 1)

	cmd := h.m.startSubmit(signup.ModeCreate)
	require.NotNil(t, cmd)
	require.True(t, h.m.Loading())
	btn, _ := h.m.buttonBars[signup.StepInvites].Button(wizard.ButtonCreate)
	require.Equal(t, "Creating Account...", btn.Label)
	require.Equal(t, wizard.ButtonDisabled, btn.State)
	assert.Contains(t, testfixtures.Plain(h.m.render()), "Creating your account...")

	require.Equal(t, 1, h.deliverResults(cmd))
	require.False(t, h.m.Loading())
	require.NotNil(t, h.m.Outcome())
	assert.True(t, h.m.Outcome().Confirmation)
	assert.Equal(t, 1, h.m.Outcome().InvitesPending)

	payload := h.accounts.LastPayload()
	assert.Equal(t, testfixtures.FixedEmail, payload.Email)
	assert.Equal(t, testfixtures.FixedCompany, payload.CompanyName)
	assert.Equal(t, 1, h.queue.Queued())

	// Confirmation screen first, redirect only after the delay
	out := testfixtures.Plain(h.m.render())
	assert.Contains(t, out, "✓ Account created")
	assert.Contains(t, out, "Redirecting to /...")
	assert.Empty(t, h.nav.Routes())
	require.Equal(t, []time.Duration{2 * time.Second}, h.clock.delays)

	h.clock.Fire()
	assert.Equal(t, []string{"/"}, h.nav.Routes())
}

func TestWizard_PlaceholdersNeverSubmitted(t *testing.T) {
	h := newHarness(testfixtures.CompleteAggregate())
	h.toInvites(t)
	assert.Contains(t, testfixtures.Plain(h.m.render()), "(example)")

	h.deliverResults(h.m.startSubmit(signup.ModeCreate))
	require.NotNil(t, h.m.Outcome())
	assert.Zero(t, h.m.Outcome().InvitesPending)
	assert.Zero(t, h.queue.Queued())
}

func TestWizard_SkipNavigatesImmediately(t *testing.T) {
	h := newHarness(testfixtures.AggregateWithInvites())
	h.toInvites(t)

	h.m.Update(wizard.TabExitBackwardMsg{})
	require.Equal(t, wizard.ButtonCreate, h.m.buttonBar.FocusedButton())
	h.press("left")
	require.Equal(t, wizard.ButtonSkip, h.m.buttonBar.FocusedButton())

	_, cmd := h.m.Update(testfixtures.Key("enter"))
	require.Equal(t, 1, h.deliverResults(cmd))

	require.NotNil(t, h.m.Outcome())
	assert.False(t, h.m.Outcome().Confirmation)
	assert.Equal(t, []string{"/"}, h.nav.Routes())
	assert.Empty(t, h.clock.delays)
	assert.Zero(t, h.queue.Queued(), "skip does not hold invites")
	assert.NotContains(t, testfixtures.Plain(h.m.render()), "Account created")
}

func TestWizard_SingleInFlightSubmit(t *testing.T) {
	h := newHarness(testfixtures.CompleteAggregate())
	h.toInvites(t)

	cmd := h.m.startSubmit(signup.ModeCreate)
	require.NotNil(t, cmd)
	require.Nil(t, h.m.startSubmit(signup.ModeCreate), "second create while loading")
	require.Nil(t, h.m.startSubmit(signup.ModeSkipInvites), "skip shares the guard")

	// Keys are ignored while loading
	h.press("esc")
	require.Equal(t, signup.StepInvites, h.m.Step())

	h.deliverResults(cmd)
	require.Equal(t, 1, h.accounts.Calls())
}

func TestWizard_InFlightResultIsIgnored(t *testing.T) {
	h := newHarness(testfixtures.CompleteAggregate())
	h.toInvites(t)
	h.m.startSubmit(signup.ModeCreate)

	h.m.Update(SubmitResultMsg{Mode: signup.ModeCreate, Err: signup.ErrSubmitInFlight})
	require.True(t, h.m.Loading())
	require.Empty(t, h.m.Alert())
}

func TestWizard_FailureShowsDismissibleAlert(t *testing.T) {
	h := newHarness(testfixtures.CompleteAggregate())
	h.toInvites(t)
	h.accounts.SetErr(errors.New("Network down"))

	h.deliverResults(h.m.startSubmit(signup.ModeCreate))
	require.False(t, h.m.Loading())
	require.Equal(t, "Network down", h.m.Alert())
	assert.Contains(t, testfixtures.Plain(h.m.render()), "Network down")
	assert.Nil(t, h.m.Outcome())
	assert.Empty(t, h.nav.Routes())

	btn, _ := h.m.buttonBars[signup.StepInvites].Button(wizard.ButtonCreate)
	require.Equal(t, "Create Account", btn.Label)
	require.Equal(t, wizard.ButtonNormal, btn.State)

	h.press("enter")
	require.Empty(t, h.m.Alert())
	require.Equal(t, signup.StateIdle, h.m.coord.State())

	// Manual retry succeeds
	h.accounts.SetErr(nil)
	h.deliverResults(h.m.startSubmit(signup.ModeCreate))
	require.NotNil(t, h.m.Outcome())
	require.Equal(t, 2, h.accounts.Calls())
}

func TestWizard_KeysIgnoredAfterSuccess(t *testing.T) {
	h := newHarness(testfixtures.CompleteAggregate())
	h.toInvites(t)
	h.deliverResults(h.m.startSubmit(signup.ModeCreate))
	require.NotNil(t, h.m.Outcome())

	h.press("esc", "enter")
	require.Equal(t, signup.StepInvites, h.m.Step())
	require.Nil(t, h.m.startSubmit(signup.ModeCreate))
	require.Equal(t, 1, h.accounts.Calls())
}

func TestWizard_NavigateMsgQuits(t *testing.T) {
	h := newHarness(nil)
	_, cmd := h.m.Update(NavigateMsg{Route: "/"})
	require.Equal(t, "/", h.m.Route())
	require.True(t, isQuit(cmd))
}

func TestWizard_NavigatorSendsToProgram(t *testing.T) {
	h := newHarness(testfixtures.CompleteAggregate())
	prog := testfixtures.NewMockProgram()
	h.m.program = prog
	h.toInvites(t)

	h.deliverResults(h.m.startSubmit(signup.ModeSkipInvites))

	msgs := prog.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, NavigateMsg{Route: "/"}, msgs[0])
}

func TestWizard_StepBodyOnlyForKnownSteps(t *testing.T) {
	m := New(Options{Accounts: testfixtures.NewMockAccounts()})
	m.Init()

	for _, step := range []int{0, -1, signup.NumSteps + 1} {
		assert.Empty(t, m.stepBody(step), "step %d", step)
	}
	for step := signup.StepCredentials; step <= signup.NumSteps; step++ {
		assert.NotEmpty(t, m.stepBody(step), "step %d", step)
	}
	assert.Contains(t, testfixtures.Plain(m.stepBody(signup.StepInvites)), "(example)")
	assert.NotContains(t, testfixtures.Plain(m.stepBody(signup.StepCredentials)), "(example)")
}

func TestWizard_ViewNotReadyUntilSized(t *testing.T) {
	m := New(Options{Accounts: testfixtures.NewMockAccounts()})
	m.Init()
	v := m.View()
	require.True(t, v.AltScreen)

	m.Update(tea.WindowSizeMsg{Width: testfixtures.TestTermWidth, Height: testfixtures.TestTermHeight})
	require.True(t, strings.Contains(testfixtures.Plain(m.render()), "Create your account"))
}
