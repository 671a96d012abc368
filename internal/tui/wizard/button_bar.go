package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mark3labs/onboard/internal/tui/theme"
)

// ButtonID identifies a button independent of its label.
type ButtonID int

const (
	ButtonNone ButtonID = iota
	ButtonCancel
	ButtonBack
	ButtonNext
	ButtonSkip
	ButtonCreate
	ButtonAdd
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
)

// Button represents a single button in the button bar.
type Button struct {
	ID    ButtonID
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with keyboard focus.
type ButtonBar struct {
	buttons []Button
	focus   int // -1 when no button is focused
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		focus:   -1,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

func (b *ButtonBar) enabled(i int) bool {
	return i >= 0 && i < len(b.buttons) && b.buttons[i].State != ButtonDisabled
}

// FocusFirst focuses the first enabled button.
func (b *ButtonBar) FocusFirst() {
	b.focus = -1
	for i := range b.buttons {
		if b.enabled(i) {
			b.focus = i
			return
		}
	}
}

// FocusLast focuses the last enabled button.
func (b *ButtonBar) FocusLast() {
	b.focus = -1
	for i := len(b.buttons) - 1; i >= 0; i-- {
		if b.enabled(i) {
			b.focus = i
			return
		}
	}
}

// FocusNext moves focus right. It returns false when there is no enabled
// button further right, leaving focus unchanged.
func (b *ButtonBar) FocusNext() bool {
	for i := b.focus + 1; i < len(b.buttons); i++ {
		if b.enabled(i) {
			b.focus = i
			return true
		}
	}
	return false
}

// FocusPrev moves focus left. It returns false at the left edge.
func (b *ButtonBar) FocusPrev() bool {
	start := b.focus - 1
	if b.focus < 0 {
		start = len(b.buttons) - 1
	}
	for i := start; i >= 0; i-- {
		if b.enabled(i) {
			b.focus = i
			return true
		}
	}
	return false
}

// FocusButton focuses the button with id if it is enabled.
func (b *ButtonBar) FocusButton(id ButtonID) bool {
	for i, btn := range b.buttons {
		if btn.ID == id && b.enabled(i) {
			b.focus = i
			return true
		}
	}
	return false
}

// FocusedButton returns the focused button's ID, or ButtonNone.
func (b *ButtonBar) FocusedButton() ButtonID {
	if !b.enabled(b.focus) {
		return ButtonNone
	}
	return b.buttons[b.focus].ID
}

// IsFocused reports whether any button has focus.
func (b *ButtonBar) IsFocused() bool {
	return b.focus >= 0
}

// Blur clears button focus.
func (b *ButtonBar) Blur() {
	b.focus = -1
}

// SetEnabled enables or disables the button with id. A disabled button
// loses focus.
func (b *ButtonBar) SetEnabled(id ButtonID, enabled bool) {
	for i := range b.buttons {
		if b.buttons[i].ID != id {
			continue
		}
		if enabled {
			b.buttons[i].State = ButtonNormal
		} else {
			b.buttons[i].State = ButtonDisabled
			if b.focus == i {
				b.focus = -1
			}
		}
	}
}

// SetLabel changes the label of the button with id.
func (b *ButtonBar) SetLabel(id ButtonID, label string) {
	for i := range b.buttons {
		if b.buttons[i].ID == id {
			b.buttons[i].Label = label
		}
	}
}

// Button returns the button with id.
func (b *ButtonBar) Button(id ButtonID) (Button, bool) {
	for _, btn := range b.buttons {
		if btn.ID == id {
			return btn, true
		}
	}
	return Button{}, false
}

// Render renders the button bar centered in its width.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	t := theme.Current()

	base := lipgloss.NewStyle().
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	normalStyle := base.
		Foreground(lipgloss.Color(t.FgBase)).
		Background(lipgloss.Color(t.BgSurface0))

	disabledStyle := base.
		Foreground(lipgloss.Color(t.FgMuted)).
		Background(lipgloss.Color(t.BgMantle))

	focusedStyle := base.
		Foreground(lipgloss.Color(t.BgBase)).
		Background(lipgloss.Color(t.Secondary)).
		Bold(true)

	rendered := make([]string, 0, len(b.buttons))
	for i, btn := range b.buttons {
		switch {
		case btn.State == ButtonDisabled:
			rendered = append(rendered, disabledStyle.Render(btn.Label))
		case i == b.focus:
			rendered = append(rendered, focusedStyle.Render("▸ "+btn.Label))
		default:
			rendered = append(rendered, normalStyle.Render(btn.Label))
		}
	}

	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}

// CreateBackNextButtons creates the standard Back/Next button set.
func CreateBackNextButtons(backEnabled bool, nextLabel string) []Button {
	backState := ButtonNormal
	if !backEnabled {
		backState = ButtonDisabled
	}
	return []Button{
		{ID: ButtonBack, Label: "← Back", State: backState},
		{ID: ButtonNext, Label: nextLabel, State: ButtonNormal},
	}
}
