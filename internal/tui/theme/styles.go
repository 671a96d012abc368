package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle  lipgloss.Style
	Subtitle     lipgloss.Style
	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	Required     lipgloss.Style
	Muted        lipgloss.Style
	Text         lipgloss.Style
	ErrorText    lipgloss.Style
	SuccessText  lipgloss.Style

	// Progress indicator markers
	StepComplete lipgloss.Style
	StepCurrent  lipgloss.Style
	StepPending  lipgloss.Style

	Modal lipgloss.Style
	Alert lipgloss.Style
}
