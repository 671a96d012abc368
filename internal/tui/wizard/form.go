package wizard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/onboard/internal/tui/theme"
)

// Form is a vertical list of labelled fields with keyboard focus.
// Tab past either end emits TabExitForwardMsg or TabExitBackwardMsg so a
// parent can hand focus to its buttons.
type Form struct {
	fields []*field
	focus  int // -1 when the form is blurred
	errors []string
	width  int
	height int
	offset int // first visible row when the form is taller than height
	labelW int
}

// NewForm creates a blurred form from specs.
func NewForm(specs ...FieldSpec) *Form {
	f := &Form{focus: -1, width: 60}
	for _, spec := range specs {
		f.fields = append(f.fields, newField(spec))
		f.labelW = max(f.labelW, lipgloss.Width(spec.Label)+2)
	}
	return f
}

// Len returns the number of fields.
func (f *Form) Len() int {
	return len(f.fields)
}

// Focus focuses the first field.
func (f *Form) Focus() tea.Cmd {
	return f.focusAt(0)
}

// FocusLast focuses the last field.
func (f *Form) FocusLast() tea.Cmd {
	return f.focusAt(len(f.fields) - 1)
}

// FocusKey focuses the field with key, if present.
func (f *Form) FocusKey(key string) tea.Cmd {
	for i, fld := range f.fields {
		if fld.spec.Key == key {
			return f.focusAt(i)
		}
	}
	return nil
}

func (f *Form) focusAt(i int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	i = max(0, min(i, len(f.fields)-1))
	for j, fld := range f.fields {
		if j != i {
			fld.blur()
		}
	}
	f.focus = i
	f.scrollToFocus()
	return f.fields[i].focus()
}

// Blur removes focus from every field.
func (f *Form) Blur() {
	for _, fld := range f.fields {
		fld.blur()
	}
	f.focus = -1
}

// Focused reports whether a field has focus.
func (f *Form) Focused() bool {
	return f.focus >= 0
}

// FocusedKey returns the key of the focused field, or "".
func (f *Form) FocusedKey() string {
	if f.focus < 0 || f.focus >= len(f.fields) {
		return ""
	}
	return f.fields[f.focus].spec.Key
}

// SetSize updates the dimensions available to the form.
func (f *Form) SetSize(width, height int) {
	f.width = width
	f.height = height
	for _, fld := range f.fields {
		fld.setWidth(width - f.labelW - 4)
	}
	f.scrollToFocus()
}

// Values returns every field's current value by key.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for _, fld := range f.fields {
		out[fld.spec.Key] = fld.value()
	}
	return out
}

// Value returns the value of the field with key.
func (f *Form) Value(key string) string {
	for _, fld := range f.fields {
		if fld.spec.Key == key {
			return fld.value()
		}
	}
	return ""
}

// SetValues writes the given values. Unknown keys are ignored.
func (f *Form) SetValues(values map[string]string) {
	for _, fld := range f.fields {
		if v, ok := values[fld.spec.Key]; ok {
			fld.setValue(v)
		}
	}
}

// Reset clears every field.
func (f *Form) Reset() {
	for _, fld := range f.fields {
		fld.setValue("")
	}
}

// SetErrors replaces the validation errors shown above the fields.
func (f *Form) SetErrors(errs []string) {
	f.errors = errs
}

// Errors returns the errors currently shown.
func (f *Form) Errors() []string {
	return f.errors
}

// Update handles a message for the focused field.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if f.focus < 0 || f.focus >= len(f.fields) {
		return nil
	}
	cur := f.fields[f.focus]

	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "tab":
			if f.focus == len(f.fields)-1 {
				return func() tea.Msg { return TabExitForwardMsg{} }
			}
			return f.focusAt(f.focus + 1)
		case "shift+tab":
			if f.focus == 0 {
				return func() tea.Msg { return TabExitBackwardMsg{} }
			}
			return f.focusAt(f.focus - 1)
		case "down":
			return f.focusAt(f.focus + 1)
		case "up":
			return f.focusAt(f.focus - 1)
		case "enter":
			return func() tea.Msg { return FormSubmitMsg{} }
		}

		if cur.spec.Kind == KindSelect {
			switch keyMsg.String() {
			case "right", "space", "l":
				cur.cycle(1)
			case "left", "h":
				cur.cycle(-1)
			}
			return nil
		}
	}

	if cur.spec.Kind == KindSelect {
		return nil
	}

	var cmd tea.Cmd
	cur.input, cmd = cur.input.Update(msg)
	return cmd
}

func (f *Form) scrollToFocus() {
	if f.height <= 0 || f.focus < 0 {
		return
	}
	if f.focus < f.offset {
		f.offset = f.focus
	}
	if f.focus >= f.offset+f.height {
		f.offset = f.focus - f.height + 1
	}
}

// View renders the errors followed by one row per field.
func (f *Form) View() string {
	s := theme.Current().S()

	var b strings.Builder
	if errs := RenderErrors(f.errors); errs != "" {
		b.WriteString(errs)
		b.WriteString("\n\n")
	}

	first, last := 0, len(f.fields)
	if f.height > 0 && len(f.fields) > f.height {
		first = f.offset
		last = min(f.offset+f.height, len(f.fields))
	}

	if first > 0 {
		b.WriteString(s.Muted.Render("  ↑ more"))
		b.WriteString("\n")
	}
	for i := first; i < last; i++ {
		fld := f.fields[i]

		marker := "  "
		label := s.Label
		if i == f.focus {
			marker = s.LabelFocused.Render("▸ ")
			label = s.LabelFocused
		}
		name := fld.spec.Label
		if fld.spec.Required {
			name += s.Required.Render("*")
		}
		b.WriteString(marker)
		b.WriteString(label.Width(f.labelW).Render(name))
		b.WriteString(fld.view())
		if i < last-1 {
			b.WriteString("\n")
		}
	}
	if last < len(f.fields) {
		b.WriteString("\n")
		b.WriteString(s.Muted.Render("  ↓ more"))
	}

	return b.String()
}
