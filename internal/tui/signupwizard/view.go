package signupwizard

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/mark3labs/onboard/internal/signup"
	"github.com/mark3labs/onboard/internal/tui/theme"
	"github.com/mark3labs/onboard/internal/tui/wizard"
)

// View renders the wizard centered on an alt screen.
func (m *WizardModel) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 || m.height == 0 {
		// Not ready to render
		view.Content = lipgloss.NewLayer("")
		return view
	}

	centered := lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.render(),
	)

	// Draw to canvas using ultraviolet
	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(centered).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// render returns the modal for the current state.
func (m *WizardModel) render() string {
	switch {
	case m.alert != "":
		return m.renderAlert()
	case m.outcome != nil && m.outcome.Confirmation:
		return m.renderSuccess()
	default:
		return m.renderStep()
	}
}

func modalStyle(border string) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(modalWidth).
		Padding(1, modalPadding).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border))
}

// stepBody renders the view for one step. Anything outside 1..4 renders
// nothing.
func (m *WizardModel) stepBody(step int) string {
	if step < signup.StepCredentials || step > signup.NumSteps {
		return ""
	}
	if form, ok := m.forms[step]; ok {
		return form.View()
	}
	return m.invites.View()
}

func (m *WizardModel) renderStep() string {
	t := theme.Current()
	s := t.S()
	step := m.ctrl.Step()

	if step < signup.StepCredentials || step > signup.NumSteps {
		return ""
	}
	body := m.stepBody(step)

	m.ensureButtonBar()
	buttons := m.buttonBar.Render()
	if m.submitting {
		buttons = lipgloss.JoinVertical(lipgloss.Center,
			m.spinner.View()+" "+s.Muted.Render("Creating your account..."),
			buttons,
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.HeaderTitle.Render("Create your account"),
		"",
		renderProgress(m.ctrl, modalContentWidth),
		"",
		s.Subtitle.Render(signup.StepNames[step-1]),
		"",
		body,
		"",
		buttons,
		"",
		m.renderHints(),
	)

	return modalStyle(t.BorderFocused).Render(content)
}

func (m *WizardModel) renderHints() string {
	if m.buttonFocused {
		return wizard.RenderHintBar("←→", "choose", "enter", "select", "tab", "fields", "esc", "back")
	}

	escDesc := "back"
	if m.ctrl.Step() == signup.StepCredentials {
		escDesc = "cancel"
	}
	if m.ctrl.Step() == signup.StepInvites {
		return wizard.RenderHintBar("enter", "add invite", "←→", "role", "tab", "invites/buttons", "d", "remove", "esc", escDesc)
	}
	return wizard.RenderHintBar("tab", "next field", "←→", "choose", "enter", "continue", "esc", escDesc)
}

func (m *WizardModel) renderSuccess() string {
	t := theme.Current()
	s := t.S()

	summary := renderMarkdown(summaryMarkdown(m.ctrl.Data(), m.outcome), modalContentWidth)

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.SuccessText.Render("✓ Account created"),
		"",
		summary,
		"",
		s.Muted.Render(fmt.Sprintf("Redirecting to %s...", m.outcome.Route)),
	)

	return modalStyle(t.Success).Render(content)
}

func (m *WizardModel) renderAlert() string {
	t := theme.Current()
	s := t.S()

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.ErrorText.Bold(true).Render("⚠ Account creation failed"),
		"",
		s.Text.Render(m.alert),
		"",
		s.Muted.Render("Press Enter or Esc to dismiss, then try again"),
	)

	return modalStyle(t.Error).Render(content)
}
