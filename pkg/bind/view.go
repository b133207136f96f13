package bind

import (
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/go-drift/autobind/pkg/core"
	"github.com/go-drift/autobind/pkg/errors"
	"github.com/go-drift/autobind/pkg/layout"
)

// ErrNoContainer is reported when Bind is called on a view that has no
// rendering container.
var ErrNoContainer = stderrors.New("view has no rendering container")

// View is a render target that can paint itself from current model state.
//
// Refresh must be idempotent and must not mutate observable model state.
type View interface {
	Refresh()
}

// bindable is satisfied by any View that embeds ViewBase.
type bindable interface {
	View
	viewBase() *ViewBase
}

func (b *ViewBase) viewBase() *ViewBase { return b }

// ViewBase provides the binding bookkeeping of a view. Embed it in a view
// struct and give it a container before calling Bind:
//
//	type profileView struct {
//	    bind.ViewBase
//	    model *ProfileModel
//	    name  *widgets.Label
//	}
//
//	func newProfileView(parent *layout.Container, model *ProfileModel) *profileView {
//	    v := &profileView{model: model, name: &widgets.Label{}}
//	    v.MountIn(parent)
//	    v.Container().AddChild(v.name)
//	    bind.Bind(v, model)
//	    return v
//	}
//
//	func (v *profileView) Refresh() {
//	    v.name.SetText(v.model.Name.Value())
//	}
type ViewBase struct {
	container    *layout.Container
	registry     core.Registry
	streams      []core.Listenable
	layoutHooked bool
}

// SetContainer uses an existing container as the view's rendering container.
// Screens use this with their root container.
func (b *ViewBase) SetContainer(c *layout.Container) {
	b.container = c
}

// MountIn creates the view's own container nested in parent.
func (b *ViewBase) MountIn(parent *layout.Container) {
	c := &layout.Container{}
	parent.AddChild(c)
	b.container = c
}

// Container returns the view's rendering container.
func (b *ViewBase) Container() *layout.Container {
	return b.container
}

// Registry returns the registry that owns the view's subscriptions. Views
// can add their own subscriptions, such as input forwarding, so they end
// with the bindings.
func (b *ViewBase) Registry() *core.Registry {
	return &b.registry
}

// Dispose releases every subscription made by Bind. Model changes after
// Dispose never reach the view.
func (b *ViewBase) Dispose() {
	b.registry.Dispose()
}

// IsDisposed returns true if the view has been disposed.
func (b *ViewBase) IsDisposed() bool {
	return b.registry.IsDisposed()
}

// Bind refreshes v now and again on every layout pass that follows a change
// of model.
//
// Model changes do not refresh the view directly. They mark the coalescing
// proxy of v's container as needing layout, and the proxy's layout pass
// calls Refresh. Any number of changes between two passes therefore produce
// a single refresh.
//
// Calling Bind again refreshes eagerly again but does not add subscriptions:
// each model is observed once per view, and the view listens to its proxy
// once no matter how many models it is bound to. Binding a disposed view
// does nothing.
func Bind(v bindable, model core.Observable) {
	base := v.viewBase()
	if base.registry.IsDisposed() {
		return
	}
	if base.container == nil {
		errors.Report(&errors.BindError{
			Op:   "bind.Bind",
			Kind: errors.KindBind,
			Err:  ErrNoContainer,
		})
		refresh(v)
		return
	}

	proxy := base.container.EnsureProxy()

	refresh(v)

	if changed := model.ObjectChanged(); changed != nil && !base.observes(changed) {
		base.streams = append(base.streams, changed)
		core.Subscribe(&base.registry, changed, proxy.MarkNeedsLayout)
	}

	if !base.layoutHooked {
		base.layoutHooked = true
		base.registry.Add(proxy.OnLayout(func() {
			if base.registry.IsDisposed() {
				return
			}
			refresh(v)
		}))
	}
}

// observes reports whether the view already listens to changed. Streams of
// a non-comparable type cannot be told apart and are never deduplicated;
// the proxy still coalesces their marks.
func (b *ViewBase) observes(changed core.Listenable) bool {
	if !reflect.TypeOf(changed).Comparable() {
		return false
	}
	for _, s := range b.streams {
		if s == changed {
			return true
		}
	}
	return false
}

// refresh calls v.Refresh. A panic is reported and does not reach the other
// views refreshed in the same pass.
func refresh(v View) {
	defer errors.RecoverWithCallback("bind.Refresh", func(r any) {
		errors.Report(&errors.BindError{
			Op:   "bind.Refresh",
			Kind: errors.KindRefresh,
			Err:  fmt.Errorf("%T: refresh panicked: %v", v, r),
		})
	})
	v.Refresh()
}
