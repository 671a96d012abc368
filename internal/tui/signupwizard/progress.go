package signupwizard

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mark3labs/onboard/internal/signup"
	"github.com/mark3labs/onboard/internal/tui/theme"
)

// renderProgress draws the step markers and a gradient percent bar.
func renderProgress(ctrl *signup.Controller, width int) string {
	t := theme.Current()
	s := t.S()

	markers := make([]string, 0, signup.NumSteps)
	for i := 1; i <= signup.NumSteps; i++ {
		name := signup.StepNames[i-1]
		switch ctrl.StepStatus(i) {
		case signup.StatusComplete:
			markers = append(markers, s.StepComplete.Render("✓ "+name))
		case signup.StatusCurrent:
			markers = append(markers, s.StepCurrent.Render("● "+name))
		default:
			markers = append(markers, s.StepPending.Render("○ "+name))
		}
	}
	header := strings.Join(markers, s.Muted.Render("  ─  "))

	label := fmt.Sprintf(" %3.0f%%", ctrl.Percent())
	barWidth := max(width-lipgloss.Width(label), 10)
	filled := int(ctrl.Percent() / 100 * float64(barWidth))

	var bar strings.Builder
	for i := range barWidth {
		if i < filled {
			pos := 0.0
			if barWidth > 1 {
				pos = float64(i) / float64(barWidth-1)
			}
			color := theme.InterpolateColor(t.Primary, t.Secondary, pos)
			bar.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("█"))
		} else {
			bar.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgSurface1)).Render("░"))
		}
	}

	stepLine := s.Muted.Render(fmt.Sprintf("Step %d of %d", ctrl.Step(), signup.NumSteps))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		bar.String()+s.Muted.Render(label),
		stepLine,
	)
}
