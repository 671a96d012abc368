package theme

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestCatppuccinMocha_ColorPalette(t *testing.T) {
	th := Current()
	if th.Name != "catppuccin-mocha" {
		t.Fatalf("expected catppuccin-mocha theme, got %s", th.Name)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"Primary (Mauve)", th.Primary, "#cba6f7"},
		{"Secondary (Lavender)", th.Secondary, "#b4befe"},
		{"BgBase", th.BgBase, "#1e1e2e"},
		{"FgBase (Text)", th.FgBase, "#cdd6f4"},
		{"Success (Green)", th.Success, "#a6e3a1"},
		{"Error (Red)", th.Error, "#f38ba8"},
	}

	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s: got %s, want %s", tt.name, tt.got, tt.expected)
		}
	}
}

func TestStylesAreBuiltOnce(t *testing.T) {
	th := NewCatppuccinMocha()
	if th.S() != th.S() {
		t.Error("S() should return the same cached styles")
	}
}

func TestSetCurrent(t *testing.T) {
	orig := Current()
	defer SetCurrent(orig)

	custom := NewCatppuccinMocha()
	custom.Name = "custom"
	SetCurrent(custom)
	if Current().Name != "custom" {
		t.Errorf("expected custom theme, got %s", Current().Name)
	}
}

func TestInterpolateColor(t *testing.T) {
	if got := InterpolateColor("#000000", "#ffffff", 0); got != "#000000" {
		t.Errorf("pos 0: got %s", got)
	}
	if got := InterpolateColor("#000000", "#ffffff", 1); got != "#ffffff" {
		t.Errorf("pos 1: got %s", got)
	}
	if got := InterpolateColor("#000000", "#ff0000", 0.5); got != "#7f0000" {
		t.Errorf("pos 0.5: got %s", got)
	}
}

func TestParseHexColor(t *testing.T) {
	r, g, b := ParseHexColor("#cba6f7")
	if r != 0xcb || g != 0xa6 || b != 0xf7 {
		t.Errorf("got %x %x %x", r, g, b)
	}
	r, g, b = ParseHexColor("bad")
	if r != 0 || g != 0 || b != 0 {
		t.Error("invalid input should parse to black")
	}
}

func TestApplyGradient(t *testing.T) {
	if ApplyGradient("", "#000000", "#ffffff") != "" {
		t.Error("empty text should render empty")
	}
	out := ApplyGradient("onboard", "#cba6f7", "#b4befe")
	if got := ansi.Strip(out); got != "onboard" {
		t.Errorf("gradient changed the text: %q", got)
	}
	if out == "onboard" {
		t.Error("gradient applied no styling")
	}
}
