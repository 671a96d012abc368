package signupwizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/onboard/internal/logger"
	"github.com/mark3labs/onboard/internal/signup"
	"github.com/mark3labs/onboard/internal/tui/theme"
	"github.com/mark3labs/onboard/internal/tui/wizard"
)

// Modal layout constants
const (
	modalWidth        = 84                                                       // Total modal width including border
	modalPadding      = 2                                                        // Horizontal padding on each side
	modalBorderWidth  = 1                                                        // Border width on each side
	modalContentWidth = modalWidth - (modalPadding * 2) - (modalBorderWidth * 2) // 78
	modalChrome       = 22                                                       // Rows used by everything except the form body
)

// ErrCancelled is returned by Run when the user quits before signup completes.
var ErrCancelled = errors.New("signup cancelled by user")

// ProgramSender is an interface for sending messages to the Bubbletea program.
// This allows for easier testing by mocking the Send method.
type ProgramSender interface {
	Send(tea.Msg)
}

// Options wires the wizard to its services.
type Options struct {
	Accounts      signup.AccountService
	Invites       signup.InviteQueue // optional
	Navigator     signup.Navigator   // optional, called before the wizard quits
	LandingRoute  string
	RedirectDelay time.Duration
	AfterFunc     func(time.Duration, func()) // optional, for tests
	Initial       *signup.Aggregate           // optional prefill
}

// Result is what a completed wizard hands back to the caller.
type Result struct {
	Outcome *signup.Outcome
	Route   string
}

// WizardModel is the BubbleTea model for the four-step signup flow:
// credentials → profile → company → invites.
type WizardModel struct {
	ctrl      *signup.Controller
	coord     *signup.Coordinator
	ctx       context.Context
	width     int
	height    int
	cancelled bool

	// Step components
	forms   map[int]*wizard.Form // steps 1-3
	invites *InvitesStep         // step 4

	// Button bar with focus tracking, cached per step
	buttonBar     *wizard.ButtonBar
	buttonFocused bool
	buttonBars    map[int]*wizard.ButtonBar

	// Submission state
	spinner    spinner.Model
	submitting bool
	alert      string // dismissible failure message
	outcome    *signup.Outcome
	route      string

	// Program reference for sending messages from callbacks
	program ProgramSender
}

// New creates a wizard on step 1.
func New(opts Options) *WizardModel {
	data := opts.Initial
	if data == nil {
		data = &signup.Aggregate{}
	}

	m := &WizardModel{
		ctrl:       signup.NewControllerWith(data),
		ctx:        context.Background(),
		forms:      make(map[int]*wizard.Form, 3),
		buttonBars: make(map[int]*wizard.ButtonBar, signup.NumSteps),
	}

	nav := signup.NavigatorFunc(func(route string) {
		if opts.Navigator != nil {
			opts.Navigator.Navigate(route)
		}
		if m.program != nil {
			m.program.Send(NavigateMsg{Route: route})
		}
	})

	m.coord = signup.NewCoordinator(signup.CoordinatorConfig{
		Accounts:      opts.Accounts,
		Navigator:     nav,
		Invites:       opts.Invites,
		LandingRoute:  opts.LandingRoute,
		RedirectDelay: opts.RedirectDelay,
		AfterFunc:     opts.AfterFunc,
	})

	for step := signup.StepCredentials; step <= signup.StepCompany; step++ {
		m.forms[step] = newStepForm(step, data)
	}
	m.invites = NewInvitesStep(data)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Primary))
	m.spinner = s

	return m
}

// Run is the entry point for the signup wizard.
// It creates a standalone BubbleTea program, runs it, and returns the result.
func Run(opts Options) (*Result, error) {
	m := New(opts)

	p := tea.NewProgram(m)
	m.program = p // Store program reference for callbacks

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("signup wizard failed: %w", err)
	}

	wizModel, ok := finalModel.(*WizardModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	if wizModel.cancelled {
		return nil, ErrCancelled
	}
	return &Result{Outcome: wizModel.outcome, Route: wizModel.route}, nil
}

// Init focuses the first field of step 1.
func (m *WizardModel) Init() tea.Cmd {
	m.ensureButtonBar()
	return m.focusStepContentFirst()
}

// Update handles messages for the wizard.
func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateCurrentStepSize()
		return m, nil

	case NavigateMsg:
		logger.Info("Signup complete, continuing at %s", msg.Route)
		m.route = msg.Route
		return m, tea.Quit

	case SubmitResultMsg:
		return m.handleSubmitResult(msg)

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case wizard.TabExitForwardMsg:
		m.focusButtons(true)
		return m, nil

	case wizard.TabExitBackwardMsg:
		m.focusButtons(false)
		return m, nil

	case wizard.FormSubmitMsg:
		if m.ctrl.Step() == signup.StepInvites {
			m.invites.Add()
			return m, nil
		}
		return m.goNext()
	}

	return m, m.updateCurrentStep(msg)
}

func (m *WizardModel) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.cancelled = true
		return m, tea.Quit
	}

	// Nothing is editable while a register call is pending or after success
	if m.submitting || m.outcome != nil {
		return m, nil
	}

	if m.alert != "" {
		switch key {
		case "enter", "esc", "space", " ":
			m.dismissAlert()
		}
		return m, nil
	}

	if m.buttonFocused && m.buttonBar != nil {
		switch key {
		case "tab", "right":
			if !m.buttonBar.FocusNext() {
				m.buttonFocused = false
				m.buttonBar.Blur()
				return m, m.focusStepContentFirst()
			}
			return m, nil
		case "shift+tab", "left":
			if !m.buttonBar.FocusPrev() {
				m.buttonFocused = false
				m.buttonBar.Blur()
				return m, m.focusStepContentLast()
			}
			return m, nil
		case "enter", "space", " ":
			return m.activateButton(m.buttonBar.FocusedButton())
		case "esc":
		default:
			return m, nil
		}
	}

	if key == "esc" {
		if m.ctrl.Step() == signup.StepCredentials {
			m.cancelled = true
			return m, tea.Quit
		}
		return m.goBack()
	}

	return m, m.updateCurrentStep(msg)
}

func (m *WizardModel) handleSubmitResult(msg SubmitResultMsg) (tea.Model, tea.Cmd) {
	// The pending call will report for itself
	if errors.Is(msg.Err, signup.ErrSubmitInFlight) {
		return m, nil
	}

	m.submitting = false
	m.syncButtons()

	if msg.Err != nil {
		m.alert = m.coord.Error()
		if m.alert == "" {
			m.alert = signup.ErrorMessage(msg.Err)
		}
		return m, nil
	}

	m.outcome = msg.Outcome
	m.buttonFocused = false
	if m.buttonBar != nil {
		m.buttonBar.Blur()
	}
	return m, nil
}

func (m *WizardModel) dismissAlert() {
	m.coord.Dismiss()
	m.alert = ""
}

// activateButton handles button activation.
func (m *WizardModel) activateButton(btnID wizard.ButtonID) (tea.Model, tea.Cmd) {
	switch btnID {
	case wizard.ButtonBack:
		return m.goBack()
	case wizard.ButtonNext:
		return m.goNext()
	case wizard.ButtonSkip:
		return m, m.startSubmit(signup.ModeSkipInvites)
	case wizard.ButtonCreate:
		return m, m.startSubmit(signup.ModeCreate)
	}
	return m, nil
}

// startSubmit marks the wizard loading and issues the register call.
func (m *WizardModel) startSubmit(mode signup.SubmitMode) tea.Cmd {
	if m.submitting || m.outcome != nil || m.coord.Loading() {
		return nil
	}
	m.submitting = true
	m.syncButtons()
	return tea.Batch(m.spinner.Tick, m.submitCmd(mode))
}

func (m *WizardModel) submitCmd(mode signup.SubmitMode) tea.Cmd {
	data := m.ctrl.Data().Clone()
	coord := m.coord
	ctx := m.ctx
	return func() tea.Msg {
		out, err := coord.Submit(ctx, data, mode)
		return SubmitResultMsg{Mode: mode, Outcome: out, Err: err}
	}
}

// syncButtons reflects the loading flag on the step 4 buttons.
func (m *WizardModel) syncButtons() {
	bar, ok := m.buttonBars[signup.StepInvites]
	if !ok {
		return
	}
	enabled := !m.submitting
	bar.SetEnabled(wizard.ButtonBack, enabled)
	bar.SetEnabled(wizard.ButtonSkip, enabled)
	bar.SetEnabled(wizard.ButtonCreate, enabled)
	if m.submitting {
		bar.SetLabel(wizard.ButtonCreate, "Creating Account...")
		return
	}
	bar.SetLabel(wizard.ButtonCreate, "Create Account")
	if m.buttonFocused {
		bar.FocusButton(wizard.ButtonCreate)
	}
}

// goNext validates the current step and advances when it is clean.
func (m *WizardModel) goNext() (tea.Model, tea.Cmd) {
	step := m.ctrl.Step()
	form, ok := m.forms[step]
	if !ok {
		return m, nil
	}

	m.ctrl.Update(patchFromForm(form))
	if errs := m.ctrl.Validate(); len(errs) > 0 {
		logger.Debug("Step %d has %d validation errors", step, len(errs))
		form.SetErrors(errs)
		return m, nil
	}
	form.SetErrors(nil)

	return m, m.changeStep(m.ctrl.Next)
}

// goBack keeps the current values and moves to the previous step.
func (m *WizardModel) goBack() (tea.Model, tea.Cmd) {
	step := m.ctrl.Step()
	if step == signup.StepCredentials {
		return m, nil
	}
	if form, ok := m.forms[step]; ok {
		m.ctrl.Update(patchFromForm(form))
		form.SetErrors(nil)
	}
	return m, m.changeStep(m.ctrl.Previous)
}

func (m *WizardModel) changeStep(move func()) tea.Cmd {
	m.blurStepContent()
	move()
	logger.Debug("Signup wizard on step %d (%s)", m.ctrl.Step(), signup.StepNames[m.ctrl.Step()-1])

	m.buttonFocused = false
	if m.buttonBar != nil {
		m.buttonBar.Blur()
	}
	m.buttonBar = nil // Clear button bar reference when changing steps
	m.ensureButtonBar()
	m.updateCurrentStepSize()
	return m.focusStepContentFirst()
}

func (m *WizardModel) focusButtons(first bool) {
	m.blurStepContent()
	m.ensureButtonBar()
	if first {
		m.buttonBar.FocusFirst()
	} else {
		m.buttonBar.FocusLast()
	}
	m.buttonFocused = m.buttonBar.IsFocused()
}

// ensureButtonBar creates the button bar if needed, using cached instance per step.
func (m *WizardModel) ensureButtonBar() {
	step := m.ctrl.Step()
	if bar, ok := m.buttonBars[step]; ok {
		m.buttonBar = bar
		return
	}

	var buttons []wizard.Button
	if step == signup.StepInvites {
		buttons = []wizard.Button{
			{ID: wizard.ButtonBack, Label: "← Back"},
			{ID: wizard.ButtonSkip, Label: "Skip for now"},
			{ID: wizard.ButtonCreate, Label: "Create Account"},
		}
	} else {
		buttons = wizard.CreateBackNextButtons(step > signup.StepCredentials, "Next →")
	}

	bar := wizard.NewButtonBar(buttons)
	bar.SetWidth(modalContentWidth)
	m.buttonBars[step] = bar
	m.buttonBar = bar
}

func (m *WizardModel) updateCurrentStep(msg tea.Msg) tea.Cmd {
	if m.buttonFocused {
		return nil
	}
	if form, ok := m.forms[m.ctrl.Step()]; ok {
		return form.Update(msg)
	}
	return m.invites.Update(msg)
}

func (m *WizardModel) updateCurrentStepSize() {
	bodyHeight := 0
	if m.height > 0 {
		bodyHeight = max(m.height-modalChrome, 4)
	}
	for _, form := range m.forms {
		form.SetSize(modalContentWidth, bodyHeight)
	}
	m.invites.SetSize(modalContentWidth, bodyHeight)
}

func (m *WizardModel) focusStepContentFirst() tea.Cmd {
	if form, ok := m.forms[m.ctrl.Step()]; ok {
		return form.Focus()
	}
	return m.invites.Focus()
}

func (m *WizardModel) focusStepContentLast() tea.Cmd {
	if form, ok := m.forms[m.ctrl.Step()]; ok {
		return form.FocusLast()
	}
	return m.invites.FocusLast()
}

func (m *WizardModel) blurStepContent() {
	if form, ok := m.forms[m.ctrl.Step()]; ok {
		form.Blur()
		return
	}
	m.invites.Blur()
}

// Step returns the current step (1-4).
func (m *WizardModel) Step() int {
	return m.ctrl.Step()
}

// Data returns the live aggregate.
func (m *WizardModel) Data() *signup.Aggregate {
	return m.ctrl.Data()
}

// Errors returns the validation errors shown on the current step.
func (m *WizardModel) Errors() []string {
	if form, ok := m.forms[m.ctrl.Step()]; ok {
		return form.Errors()
	}
	return nil
}

// Alert returns the failure message being shown, or "".
func (m *WizardModel) Alert() string {
	return m.alert
}

// Loading reports whether a register call is pending.
func (m *WizardModel) Loading() bool {
	return m.submitting
}

// Outcome returns the successful outcome, or nil.
func (m *WizardModel) Outcome() *signup.Outcome {
	return m.outcome
}

// Cancelled reports whether the user quit the wizard.
func (m *WizardModel) Cancelled() bool {
	return m.cancelled
}

// Route returns the route navigated to, or "".
func (m *WizardModel) Route() string {
	return m.route
}
