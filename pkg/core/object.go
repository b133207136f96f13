package core

import (
	"fmt"

	"github.com/go-drift/autobind/pkg/errors"
)

// ChangeSource is anything that exposes a change stream. Cells satisfy it,
// and so can any custom storage that wants to participate in an object's
// merged change signal.
type ChangeSource interface {
	Changes() Listenable
}

// Observable is a model whose changes are published as a single stream.
type Observable interface {
	ObjectChanged() Listenable
}

// objectBase is satisfied by any struct that embeds ObjectBase.
// Track accepts objectBase so callers can pass the model directly.
type objectBase interface {
	object() *ObjectBase
}

func (o *ObjectBase) object() *ObjectBase { return o }

// ObjectBase aggregates the change streams of a model's cells into one
// ObjectChanged stream. Embed it in a model and declare cells with Track:
//
//	type LoginViewModel struct {
//	    core.ObjectBase
//	    Email    *core.Cell[string]
//	    Password *core.Cell[string]
//	}
//
//	func NewLoginViewModel() *LoginViewModel {
//	    m := &LoginViewModel{}
//	    m.Email = core.Track(m, "")
//	    m.Password = core.Track(m, "")
//	    return m
//	}
//
// The merged stream is built on the first ObjectChanged call from the sources
// registered so far. Sources registered afterwards are not observed.
type ObjectBase struct {
	sources     []ChangeSource
	changed     *Notifier
	initialized bool
	registry    Registry
}

// Track creates a cell holding initial and registers it with the model.
func Track[T any](o objectBase, initial T) *Cell[T] {
	cell := NewCell(initial)
	o.object().Register(cell)
	return cell
}

// Register adds change sources in declaration order. Call it while
// constructing the model. Once ObjectChanged has been called, further
// registrations are ignored and a warning is reported.
func (o *ObjectBase) Register(sources ...ChangeSource) {
	if o.initialized {
		errors.Warn("core.ObjectBase.Register",
			fmt.Sprintf("%d source(s) registered after ObjectChanged was built; they will not be observed", len(sources)))
		return
	}
	for _, s := range sources {
		if s != nil {
			o.sources = append(o.sources, s)
		}
	}
}

// SourceCount returns the number of registered sources.
func (o *ObjectBase) SourceCount() int {
	return len(o.sources)
}

// ObjectChanged returns the merged change stream of the model. The first
// call subscribes to every registered source; later calls return the same
// stream. A model with no sources gets a stream that never fires.
func (o *ObjectBase) ObjectChanged() Listenable {
	o.ensureInitialized()
	return o.changed
}

func (o *ObjectBase) ensureInitialized() {
	if o.initialized {
		return
	}
	o.initialized = true
	o.changed = NewNotifier()
	for _, source := range o.sources {
		o.registry.Add(source.Changes().AddListener(o.changed.Notify))
	}
}

// Dispose releases the subscriptions to the model's sources. The merged
// stream stays valid but never fires again.
func (o *ObjectBase) Dispose() {
	o.registry.Dispose()
}
