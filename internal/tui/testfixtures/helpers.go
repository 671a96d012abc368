package testfixtures

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

// Initialize test environment
func init() {
	// Ascii profile for anything printed through lipgloss.Print/Sprint.
	// Style.Render still emits ANSI; use Plain before matching text.
	lipgloss.Writer.Profile = colorprofile.Ascii
}

// Canonical terminal size for all tests
const (
	TestTermWidth  = 120
	TestTermHeight = 40
)

// Conservative timeouts for polling async results
const (
	DefaultWaitDuration  = 5 * time.Second
	DefaultCheckInterval = 10 * time.Millisecond
)

var namedKeys = map[string]tea.Key{
	"enter":     {Code: tea.KeyEnter},
	"tab":       {Code: tea.KeyTab},
	"shift+tab": {Code: tea.KeyTab, Mod: tea.ModShift},
	"esc":       {Code: tea.KeyEscape},
	"up":        {Code: tea.KeyUp},
	"down":      {Code: tea.KeyDown},
	"left":      {Code: tea.KeyLeft},
	"right":     {Code: tea.KeyRight},
	"backspace": {Code: tea.KeyBackspace},
	"space":     {Code: tea.KeySpace, Text: " "},
	"ctrl+c":    {Code: 'c', Mod: tea.ModCtrl},
}

// Key builds a key press for a named key ("enter", "shift+tab") or a single
// printable character.
func Key(s string) tea.KeyPressMsg {
	if k, ok := namedKeys[s]; ok {
		return tea.KeyPressMsg(k)
	}
	r := []rune(s)
	return tea.KeyPressMsg(tea.Key{Code: r[0], Text: s})
}

// Keys converts text into one key press per rune.
func Keys(text string) []tea.KeyPressMsg {
	out := make([]tea.KeyPressMsg, 0, len(text))
	for _, r := range text {
		out = append(out, tea.KeyPressMsg(tea.Key{Code: r, Text: string(r)}))
	}
	return out
}

// Plain strips ANSI escape sequences from rendered output.
func Plain(s string) string {
	return ansi.Strip(s)
}

// Contains checks if a string contains a substring.
// This is a simple helper to make test assertions more readable.
func Contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

// Render draws a view onto a canonical-size screen buffer and returns the
// plain text.
//
//	out := testfixtures.Render(func(canvas uv.ScreenBuffer) {
//	    uv.NewStyledString(view).Draw(canvas, canvas.Bounds())
//	})
func Render(renderFn func(canvas uv.ScreenBuffer)) string {
	canvas := uv.NewScreenBuffer(TestTermWidth, TestTermHeight)
	renderFn(canvas)
	return canvas.Render()
}

// WaitFor polls cond until it returns true or the timeout expires.
func WaitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(DefaultCheckInterval)
	}
	return cond()
}
