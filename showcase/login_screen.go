package showcase

import (
	"github.com/go-drift/autobind/pkg/bind"
	"github.com/go-drift/autobind/pkg/layout"
	"github.com/go-drift/autobind/pkg/widgets"
)

// LoginScreen renders a LoginViewModel.
type LoginScreen struct {
	bind.ViewBase

	Title    *widgets.Label
	Email    *widgets.TextField
	Password *widgets.TextField
	Login    *widgets.Button
	Spinner  *widgets.ActivityIndicator

	model *LoginViewModel
}

// NewLoginScreen builds the screen in root, forwards input to model and
// binds the screen to it.
func NewLoginScreen(root *layout.Container, model *LoginViewModel) *LoginScreen {
	s := &LoginScreen{
		Title:    &widgets.Label{},
		Email:    &widgets.TextField{Placeholder: "Email"},
		Password: &widgets.TextField{Placeholder: "Password", Secure: true},
		Login:    &widgets.Button{Title: "Login", OnTap: model.Login},
		Spinner:  &widgets.ActivityIndicator{},
		model:    model,
	}
	s.SetContainer(root)
	root.AddChild(s.Title)
	root.AddChild(s.Email)
	root.AddChild(s.Password)
	root.AddChild(s.Login)
	root.AddChild(s.Spinner)

	widgets.BindText(s.Registry(), s.Email, model.Email)
	widgets.BindText(s.Registry(), s.Password, model.Password)

	bind.Bind(s, model)
	return s
}

// Refresh paints the screen from the model.
func (s *LoginScreen) Refresh() {
	s.Title.SetText(s.model.Title())
	s.Email.Show(s.model.Email.Value())
	s.Password.Show(s.model.Password.Value())
	if s.model.IsLoading() {
		s.Spinner.Start()
	} else {
		s.Spinner.Stop()
	}
	s.Login.SetEnabled(s.model.IsLoginButtonEnabled())
}

// Describe returns a line per visible widget of the screen.
func (s *LoginScreen) Describe() []string {
	return widgets.Describe(s.Container())
}
