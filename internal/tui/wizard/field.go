package wizard

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/mark3labs/onboard/internal/tui/theme"
)

// FieldKind selects how a field is edited.
type FieldKind int

const (
	KindText     FieldKind = iota // free text
	KindPassword                  // masked free text
	KindSelect                    // cycles through Options with left/right
)

// FieldSpec describes one form row.
type FieldSpec struct {
	Key         string
	Label       string
	Placeholder string
	Kind        FieldKind
	Required    bool
	Options     []string
	CharLimit   int
}

type field struct {
	spec     FieldSpec
	input    textinput.Model
	selected int // index into spec.Options, -1 when nothing is chosen
	focused  bool
}

func newField(spec FieldSpec) *field {
	f := &field{spec: spec, selected: -1}
	if spec.Kind == KindSelect {
		return f
	}

	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = spec.Placeholder
	if spec.CharLimit > 0 {
		in.CharLimit = spec.CharLimit
	}
	if spec.Kind == KindPassword {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	in.SetStyles(inputStyles())
	in.SetWidth(40)
	f.input = in
	return f
}

func (f *field) value() string {
	if f.spec.Kind == KindSelect {
		if f.selected < 0 || f.selected >= len(f.spec.Options) {
			return ""
		}
		return f.spec.Options[f.selected]
	}
	return f.input.Value()
}

// setValue writes v. A select value not in Options clears the selection.
func (f *field) setValue(v string) {
	if f.spec.Kind != KindSelect {
		f.input.SetValue(v)
		return
	}
	f.selected = -1
	for i, opt := range f.spec.Options {
		if opt == v {
			f.selected = i
			return
		}
	}
}

func (f *field) focus() tea.Cmd {
	f.focused = true
	if f.spec.Kind == KindSelect {
		return nil
	}
	return f.input.Focus()
}

func (f *field) blur() {
	f.focused = false
	if f.spec.Kind != KindSelect {
		f.input.Blur()
	}
}

func (f *field) cycle(delta int) {
	n := len(f.spec.Options)
	if n == 0 {
		return
	}
	if f.selected < 0 {
		if delta > 0 {
			f.selected = 0
		} else {
			f.selected = n - 1
		}
		return
	}
	f.selected = (f.selected + delta + n) % n
}

func (f *field) setWidth(w int) {
	if f.spec.Kind != KindSelect {
		f.input.SetWidth(max(w, 10))
	}
}

func (f *field) view() string {
	if f.spec.Kind != KindSelect {
		return f.input.View()
	}

	s := theme.Current().S()
	v := f.value()
	if v == "" {
		placeholder := f.spec.Placeholder
		if placeholder == "" {
			placeholder = "Select..."
		}
		v = s.Muted.Render(placeholder)
	} else if f.focused {
		v = s.LabelFocused.Render(v)
	} else {
		v = s.Text.Render(v)
	}
	if f.focused {
		return s.LabelFocused.Render("‹ ") + v + s.LabelFocused.Render(" ›")
	}
	return v
}
