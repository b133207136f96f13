package widgets

import "github.com/go-drift/autobind/pkg/layout"

// Describer is implemented by widgets that can summarise what they display.
type Describer interface {
	Describe() string
}

// leaf provides the layout.Mountable plumbing shared by all widgets.
// Widgets never need a layout pass of their own.
type leaf struct {
	parent *layout.Container
}

func (l *leaf) Mount(parent *layout.Container) { l.parent = parent }

func (l *leaf) Depth() int {
	if l.parent == nil {
		return 0
	}
	return l.parent.Depth() + 1
}

func (l *leaf) NeedsLayout() bool { return false }

func (l *leaf) Layout() {}

// Describe returns one line per visible widget in c, depth first.
// Hidden nodes, such as a coalescing proxy, are skipped.
func Describe(c *layout.Container) []string {
	var lines []string
	for _, child := range c.Children() {
		if h, ok := child.(interface{ Hidden() bool }); ok && h.Hidden() {
			continue
		}
		switch n := child.(type) {
		case *layout.Container:
			lines = append(lines, Describe(n)...)
		case Describer:
			lines = append(lines, n.Describe())
		}
	}
	return lines
}
