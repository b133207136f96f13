package core

// Subscribe adds listener to l and hands the cancel function to reg, so the
// subscription ends when reg is disposed. It returns the cancel function for
// callers that want to end it earlier.
//
// Example:
//
//	func (v *profileView) Attach(model *ProfileModel) {
//	    core.Subscribe(&v.registry, model.ObjectChanged(), v.markDirty)
//	}
func Subscribe(reg *Registry, l Listenable, listener func()) func() {
	cancel := l.AddListener(listener)
	reg.Add(cancel)
	return cancel
}

// ValueSource is a stream of values, such as a Cell or a text field's edits.
type ValueSource[T any] interface {
	AddListener(listener func(T)) func()
}

// Pipe writes every value published by src into dst until reg is disposed.
//
// Example:
//
//	core.Pipe(&s.registry, emailField, model.Email)
func Pipe[T any](reg *Registry, src ValueSource[T], dst *Cell[T]) func() {
	cancel := src.AddListener(dst.Set)
	reg.Add(cancel)
	return cancel
}
