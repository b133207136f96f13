// Package showcase contains a login screen built on autobind. It is the
// reference consumer of the binding layer and the screen driven by the
// autobind CLI.
package showcase

import (
	"time"

	"github.com/go-drift/autobind/pkg/core"
)

// LoginDuration is how long a simulated login takes.
const LoginDuration = 2 * time.Second

// Timers schedules callbacks on the UI thread. engine.Runner implements it.
type Timers interface {
	After(d time.Duration, fn func()) func()
}

// LoginViewModel holds the state of the login form.
type LoginViewModel struct {
	core.ObjectBase

	Email     *core.Cell[string]
	Password  *core.Cell[string]
	isLoading *core.Cell[bool]

	timers Timers
}

// NewLoginViewModel creates an empty, idle form. timers runs the end of a
// simulated login.
func NewLoginViewModel(timers Timers) *LoginViewModel {
	m := &LoginViewModel{timers: timers}
	m.Email = core.Track(m, "")
	m.Password = core.Track(m, "")
	m.isLoading = core.Track(m, false)
	return m
}

// IsLoading reports whether a login is in progress.
func (m *LoginViewModel) IsLoading() bool {
	return m.isLoading.Value()
}

// Title is the greeting shown above the form.
func (m *LoginViewModel) Title() string {
	email := m.Email.Value()
	if email == "" {
		email = "–"
	}
	return "Welcome, " + email
}

// IsInputValid reports whether both fields are filled in.
func (m *LoginViewModel) IsInputValid() bool {
	return m.Email.Value() != "" && m.Password.Value() != ""
}

// IsLoginButtonEnabled reports whether the user may submit the form.
func (m *LoginViewModel) IsLoginButtonEnabled() bool {
	return m.IsInputValid() && !m.IsLoading()
}

// Login starts a simulated login that finishes after LoginDuration.
// Calls made while a login is in progress are ignored.
func (m *LoginViewModel) Login() {
	if m.IsLoading() {
		return
	}
	m.isLoading.Set(true)
	m.timers.After(LoginDuration, func() {
		m.isLoading.Set(false)
	})
}
