package signupwizard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/mark3labs/onboard/internal/logger"
	"github.com/mark3labs/onboard/internal/signup"
	"github.com/mark3labs/onboard/internal/tui/theme"
	"github.com/mark3labs/onboard/internal/tui/wizard"
)

const (
	inviteEmail = "email"
	inviteName  = "name"
	inviteRole  = "role"
)

type inviteZone int

const (
	zoneForm inviteZone = iota
	zoneList
)

// InvitesStep edits the team invite list of step 4. It never blocks
// account creation.
type InvitesStep struct {
	data     *signup.Aggregate
	form     *wizard.Form
	zone     inviteZone
	selected int
	width    int
	height   int
}

// NewInvitesStep creates the invite editor over a's invite list.
func NewInvitesStep(a *signup.Aggregate) *InvitesStep {
	form := wizard.NewForm(
		wizard.FieldSpec{Key: inviteEmail, Label: "Email", Placeholder: "teammate@company.com", Required: true},
		wizard.FieldSpec{Key: inviteName, Label: "Name", Placeholder: "optional"},
		wizard.FieldSpec{Key: inviteRole, Label: "Role", Kind: wizard.KindSelect, Required: true, Options: signup.RoleOptions()},
	)
	s := &InvitesStep{data: a, form: form, width: 60}
	s.resetForm()
	return s
}

func (s *InvitesStep) resetForm() {
	s.form.Reset()
	s.form.SetValues(map[string]string{inviteRole: string(signup.RoleEmployee)})
	s.form.SetErrors(nil)
}

// Focus focuses the email input.
func (s *InvitesStep) Focus() tea.Cmd {
	s.zone = zoneForm
	return s.form.Focus()
}

// FocusLast focuses the invite list when it has user entries, otherwise the
// last form field.
func (s *InvitesStep) FocusLast() tea.Cmd {
	if len(s.data.Invites) > 0 {
		s.form.Blur()
		s.zone = zoneList
		s.selected = len(s.data.Invites) - 1
		return nil
	}
	s.zone = zoneForm
	return s.form.FocusLast()
}

// Blur removes focus from the editor.
func (s *InvitesStep) Blur() {
	s.form.Blur()
	s.zone = zoneForm
	s.selected = -1
}

// SetSize updates the available dimensions.
func (s *InvitesStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.form.SetSize(width, 0)
}

// Add validates the form as an invite and appends it.
func (s *InvitesStep) Add() bool {
	inv := signup.Invite{
		Email: s.form.Value(inviteEmail),
		Name:  s.form.Value(inviteName),
		Role:  signup.Role(s.form.Value(inviteRole)),
	}
	if errs := signup.ValidateInvite(inv); len(errs) > 0 {
		s.form.SetErrors(errs)
		return false
	}
	s.data.AddInvite(inv)
	logger.Debug("Invite added: %s (%s)", inv.Email, inv.Role)
	s.resetForm()
	s.form.Focus()
	return true
}

// Remove deletes the selected invite.
func (s *InvitesStep) Remove() {
	if s.zone != zoneList {
		return
	}
	s.data.RemoveInvite(s.selected)
	if len(s.data.Invites) == 0 {
		s.zone = zoneForm
		s.selected = -1
		s.form.FocusLast()
		return
	}
	s.selected = min(s.selected, len(s.data.Invites)-1)
}

// Selected returns the selected invite index, or -1.
func (s *InvitesStep) Selected() int {
	if s.zone != zoneList {
		return -1
	}
	return s.selected
}

// Update handles key input for the form or the list.
func (s *InvitesStep) Update(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyPressMsg)

	if s.zone == zoneList {
		if !isKey {
			return nil
		}
		switch keyMsg.String() {
		case "up", "k":
			s.selected = max(0, s.selected-1)
		case "down", "j":
			s.selected = min(len(s.data.Invites)-1, s.selected+1)
		case "d", "delete", "backspace":
			s.Remove()
		case "tab":
			return func() tea.Msg { return wizard.TabExitForwardMsg{} }
		case "shift+tab":
			s.zone = zoneForm
			s.selected = -1
			return s.form.FocusLast()
		}
		return nil
	}

	if isKey && keyMsg.String() == "tab" && s.form.FocusedKey() == inviteRole && len(s.data.Invites) > 0 {
		s.form.Blur()
		s.zone = zoneList
		s.selected = 0
		return nil
	}
	return s.form.Update(msg)
}

// View renders the invite list and the add-invite form.
func (s *InvitesStep) View() string {
	st := theme.Current().S()

	var b strings.Builder
	b.WriteString(st.Subtitle.Render("Invite your team (optional)"))
	b.WriteString("\n\n")

	invites, placeholder := s.data.DisplayInvites()
	for i, inv := range invites {
		line := inv.Email
		if inv.Name != "" {
			line = fmt.Sprintf("%s <%s>", inv.Name, inv.Email)
		}
		line = fmt.Sprintf("%s · %s", line, inv.Role)

		switch {
		case placeholder:
			b.WriteString("  " + st.Muted.Render(line+" (example)"))
		case s.zone == zoneList && i == s.selected:
			b.WriteString(st.LabelFocused.Render("▸ " + line))
		default:
			b.WriteString("  " + st.Text.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(st.Label.Render("Add a teammate"))
	b.WriteString("\n")
	b.WriteString(s.form.View())

	return b.String()
}
