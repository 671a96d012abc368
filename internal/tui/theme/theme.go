// Package theme holds the TUI color palette and the styles built from it.
package theme

import (
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string // lipgloss.Color is a string type
	Secondary string
	Tertiary  string

	// Background hierarchy (dark→light)
	BgBase     string
	BgMantle   string
	BgSurface0 string
	BgSurface1 string
	BgSurface2 string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Borders
	BorderDefault string
	BorderFocused string

	// Status colors
	Success string
	Warning string
	Error   string
	Info    string

	// Lazy-built styles
	styles     *Styles
	stylesOnce sync.Once
}

var (
	currentMu sync.RWMutex
	current   = NewCatppuccinMocha()
)

// Current returns the active theme.
func Current() *Theme {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// SetCurrent replaces the active theme.
func SetCurrent(t *Theme) {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = t
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	return &Styles{
		HeaderTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)),
		LabelFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Secondary)).
			Bold(true),
		Required: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgBase)),
		ErrorText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)),
		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),
		StepComplete: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),
		StepCurrent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),
		StepPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),
		Modal: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderDefault)),
		Alert: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Error)).
			Foreground(lipgloss.Color(t.Error)),
	}
}
