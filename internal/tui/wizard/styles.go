package wizard

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/onboard/internal/tui/theme"
)

// inputStyles returns the textinput styling shared by every form field.
func inputStyles() textinput.Styles {
	t := theme.Current()
	return textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Secondary)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	}
}

// RenderHintBar renders key-description pairs.
// Example: RenderHintBar("↑↓", "navigate", "enter", "select", "esc", "back")
// Returns: "↑↓ navigate • enter select • esc back"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	t := theme.Current()
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))
	sep := " " + lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgSurface2)).Render("•") + " "

	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		parts = append(parts, keyStyle.Render(pairs[i])+" "+descStyle.Render(pairs[i+1]))
	}
	return strings.Join(parts, sep)
}

// RenderErrors renders validation errors as a bulleted list, or "".
func RenderErrors(errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	s := theme.Current().S().ErrorText
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = s.Render("✗ " + e)
	}
	return strings.Join(lines, "\n")
}
