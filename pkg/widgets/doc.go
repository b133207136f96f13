// Package widgets provides headless view nodes for autobind screens.
//
// Widgets are leaf nodes of a layout.Container. They hold display state
// and simulate user input, which is enough to build and test screens
// without a rendering backend:
//
//	email := &widgets.TextField{Placeholder: "Email"}
//	login := &widgets.Button{Title: "Login"}
//	root.AddChild(email)
//	root.AddChild(login)
//
//	widgets.BindText(view.Registry(), email, model.Email)
//	email.SetText("a@b.com") // as if typed; model.Email is now "a@b.com"
//
// # Display vs input
//
// Setters that a Refresh calls (Label.SetText, TextField.Show,
// Button.SetEnabled, ActivityIndicator.Start) only change what is displayed
// and never emit. TextField.SetText and Button.Tap simulate the user and do
// emit, so a Refresh must not call them.
//
// # Describing a screen
//
// Every widget implements Describer. Describe walks a container and
// returns one line per visible widget, which tests and pkg/rendering use as
// a textual picture of the screen.
package widgets
