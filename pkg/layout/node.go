package layout

import "github.com/go-drift/autobind/pkg/core"

// Size is a width and height in logical pixels.
type Size struct {
	Width  float64
	Height float64
}

// Node is an element of the view hierarchy that takes part in layout passes.
type Node interface {
	// Depth is the distance from the root container. Parents are laid out
	// before their children within a pass.
	Depth() int
	// NeedsLayout reports whether the node is waiting for a layout pass.
	NeedsLayout() bool
	// Layout runs the node's layout. The pipeline calls it at most once per pass.
	Layout()
}

// Mountable is a Node that can be attached to a Container.
type Mountable interface {
	Node
	Mount(parent *Container)
}

// Container is a view's rendering container: a node holding child nodes and
// at most one coalescing Proxy.
type Container struct {
	owner       Scheduler
	parent      *Container
	children    []Node
	proxy       *Proxy
	needsLayout bool
}

// NewContainer creates a root container whose layout requests go to owner.
func NewContainer(owner Scheduler) *Container {
	return &Container{owner: owner}
}

// Owner returns the scheduler the container reports to. Nested containers
// inherit their root's owner.
func (c *Container) Owner() Scheduler {
	for n := c; n != nil; n = n.parent {
		if n.owner != nil {
			return n.owner
		}
	}
	return nil
}

// Parent returns the enclosing container, or nil for a root.
func (c *Container) Parent() *Container {
	return c.parent
}

// Mount attaches c as a nested container of parent.
func (c *Container) Mount(parent *Container) {
	c.parent = parent
}

// AddChild appends child to the container and mounts it. If the child, or
// anything below it, was marked while detached, it is scheduled now that an
// owner may be reachable.
func (c *Container) AddChild(child Mountable) {
	child.Mount(c)
	c.children = append(c.children, child)
	if owner := c.Owner(); owner != nil {
		scheduleDirty(owner, child)
	}
}

func scheduleDirty(owner Scheduler, n Node) {
	if n.NeedsLayout() {
		owner.ScheduleLayout(n)
	}
	if c, ok := n.(*Container); ok {
		for _, child := range c.children {
			scheduleDirty(owner, child)
		}
	}
}

// Children returns the container's child nodes, including the proxy if one
// has been created.
func (c *Container) Children() []Node {
	return c.children
}

// Depth returns the distance from the root container.
func (c *Container) Depth() int {
	if c.parent == nil {
		return 0
	}
	return c.parent.Depth() + 1
}

// MarkNeedsLayout schedules the container for the next layout pass.
func (c *Container) MarkNeedsLayout() {
	if c.needsLayout {
		return
	}
	c.needsLayout = true
	if owner := c.Owner(); owner != nil {
		owner.ScheduleLayout(c)
	}
}

// NeedsLayout reports whether the container is waiting for a layout pass.
func (c *Container) NeedsLayout() bool {
	return c.needsLayout
}

// Layout lays out every child that still needs it.
func (c *Container) Layout() {
	c.needsLayout = false
	for _, child := range c.children {
		if child.NeedsLayout() {
			child.Layout()
		}
	}
}

// EnsureProxy returns the container's coalescing proxy, creating and
// attaching it on first use.
func (c *Container) EnsureProxy() *Proxy {
	if c.proxy == nil {
		c.proxy = &Proxy{}
		c.AddChild(c.proxy)
	}
	return c.proxy
}

// Proxy is an invisible, zero-size node used to piggy-back on layout
// passes. Marking it as needing layout any number of times between two
// passes produces exactly one OnLayout notification in the next pass.
type Proxy struct {
	parent      *Container
	needsLayout bool
	layouts     int
	onLayout    core.Notifier
}

// Mount attaches the proxy to its container.
func (p *Proxy) Mount(parent *Container) {
	p.parent = parent
}

// Parent returns the container the proxy belongs to.
func (p *Proxy) Parent() *Container {
	return p.parent
}

// Hidden is always true.
func (p *Proxy) Hidden() bool { return true }

// Size is always zero.
func (p *Proxy) Size() Size { return Size{} }

// Depth returns the proxy's distance from the root container.
func (p *Proxy) Depth() int {
	if p.parent == nil {
		return 0
	}
	return p.parent.Depth() + 1
}

// MarkNeedsLayout flags the proxy and schedules it with the container's
// owner. Calls made while the flag is already set do nothing.
func (p *Proxy) MarkNeedsLayout() {
	if p.needsLayout {
		return
	}
	p.needsLayout = true
	if p.parent == nil {
		return
	}
	if owner := p.parent.Owner(); owner != nil {
		owner.ScheduleLayout(p)
	}
}

// NeedsLayout reports whether the proxy is waiting for a layout pass.
func (p *Proxy) NeedsLayout() bool {
	return p.needsLayout
}

// Layout clears the flag and notifies OnLayout listeners in order.
func (p *Proxy) Layout() {
	p.needsLayout = false
	p.layouts++
	p.onLayout.Notify()
}

// Layouts returns the number of layout passes the proxy took part in.
func (p *Proxy) Layouts() int {
	return p.layouts
}

// OnLayout registers listener to run on every layout pass of the proxy.
func (p *Proxy) OnLayout(listener func()) func() {
	return p.onLayout.AddListener(listener)
}

// LayoutListenerCount returns the number of OnLayout listeners.
func (p *Proxy) LayoutListenerCount() int {
	return p.onLayout.ListenerCount()
}
