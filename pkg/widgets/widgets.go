package widgets

import (
	"fmt"

	"github.com/go-drift/autobind/pkg/core"
)

// Label displays a line of text.
type Label struct {
	leaf
	text string
}

// Text returns the displayed text.
func (l *Label) Text() string { return l.text }

// SetText changes the displayed text.
func (l *Label) SetText(text string) { l.text = text }

// Describe implements Describer.
func (l *Label) Describe() string {
	return fmt.Sprintf("label %q", l.text)
}

// TextField is an editable line of text.
//
// SetText simulates the user typing and notifies listeners; Show changes
// the displayed text silently.
type TextField struct {
	leaf
	// Placeholder is shown while the field is empty.
	Placeholder string
	// Secure masks the text in descriptions.
	Secure bool

	text  string
	edits core.Emitter[string]
}

// Text returns the current text.
func (f *TextField) Text() string { return f.text }

// SetText replaces the text as if the user typed it and notifies listeners.
func (f *TextField) SetText(text string) {
	f.text = text
	f.edits.Emit(text)
}

// Show replaces the displayed text without notifying listeners.
func (f *TextField) Show(text string) { f.text = text }

// AddListener subscribes to user edits.
func (f *TextField) AddListener(listener func(string)) func() {
	return f.edits.AddListener(listener)
}

// Describe implements Describer.
func (f *TextField) Describe() string {
	switch {
	case f.text == "":
		return fmt.Sprintf("field [%s]", f.Placeholder)
	case f.Secure:
		return fmt.Sprintf("field %q", maskText(f.text))
	default:
		return fmt.Sprintf("field %q", f.text)
	}
}

func maskText(s string) string {
	masked := make([]rune, 0, len(s))
	for range s {
		masked = append(masked, '•')
	}
	return string(masked)
}

// BindText forwards user edits of field into cell until reg is disposed.
func BindText(reg *core.Registry, field *TextField, cell *core.Cell[string]) func() {
	return core.Pipe(reg, field, cell)
}

// Button is a tappable button that can be disabled.
type Button struct {
	leaf
	// Title is the button text.
	Title string
	// OnTap is called when an enabled button is tapped.
	OnTap func()

	enabled bool
}

// Enabled reports whether the button accepts taps.
func (b *Button) Enabled() bool { return b.enabled }

// SetEnabled enables or disables the button.
func (b *Button) SetEnabled(enabled bool) { b.enabled = enabled }

// Tap simulates a tap. It returns false, without calling OnTap, when the
// button is disabled.
func (b *Button) Tap() bool {
	if !b.enabled {
		return false
	}
	if b.OnTap != nil {
		b.OnTap()
	}
	return true
}

// Describe implements Describer.
func (b *Button) Describe() string {
	state := "enabled"
	if !b.enabled {
		state = "disabled"
	}
	return fmt.Sprintf("button %q %s", b.Title, state)
}

// ActivityIndicator is a spinner.
type ActivityIndicator struct {
	leaf
	animating bool
}

// Start starts the spinner.
func (a *ActivityIndicator) Start() { a.animating = true }

// Stop stops the spinner.
func (a *ActivityIndicator) Stop() { a.animating = false }

// IsAnimating reports whether the spinner is running.
func (a *ActivityIndicator) IsAnimating() bool { return a.animating }

// Describe implements Describer.
func (a *ActivityIndicator) Describe() string {
	if a.animating {
		return "spinner animating"
	}
	return "spinner stopped"
}
