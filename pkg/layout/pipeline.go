package layout

import (
	"slices"
	"sync"

	"github.com/go-drift/autobind/pkg/errors"
)

// Scheduler collapses layout requests into passes. Scheduling the same node
// several times before the next pass has the same effect as scheduling it
// once.
type Scheduler interface {
	ScheduleLayout(node Node)
}

// PipelineOwner tracks nodes that need layout and runs layout passes.
//
// It is the manual-tick Scheduler backend: something else (engine.Runner, a
// test, the host platform's frame callback) decides when a pass happens by
// calling FlushLayout. Each call is one scheduling epoch.
type PipelineOwner struct {
	dirtyLayout    []Node        // nodes needing layout, processed depth-first
	dirtyLayoutSet map[Node]bool // O(1) dedup check
	passes         int
	mu             sync.Mutex

	// OnNeedsFrame is called when the first node of an epoch is scheduled,
	// signalling that a frame should be produced. This is necessary for
	// on-demand frame scheduling where the frame loop idles until asked.
	OnNeedsFrame func()
}

// NewPipelineOwner creates an empty PipelineOwner.
func NewPipelineOwner() *PipelineOwner {
	return &PipelineOwner{}
}

// ScheduleLayout marks a node as needing layout in the next pass.
func (p *PipelineOwner) ScheduleLayout(node Node) {
	first := func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.dirtyLayoutSet == nil {
			p.dirtyLayoutSet = make(map[Node]bool)
		}
		if p.dirtyLayoutSet[node] {
			return false
		}
		p.dirtyLayoutSet[node] = true
		p.dirtyLayout = append(p.dirtyLayout, node)
		return len(p.dirtyLayout) == 1
	}()

	if first && p.OnNeedsFrame != nil {
		p.OnNeedsFrame()
	}
}

// NeedsLayout reports if any nodes are waiting for a layout pass.
func (p *PipelineOwner) NeedsLayout() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.dirtyLayout) > 0
}

// Passes returns the number of layout passes that processed at least one node.
func (p *PipelineOwner) Passes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.passes
}

// FlushLayout runs one layout pass.
//
// The nodes scheduled so far are laid out parents first, each only if it
// still needs layout. Nodes scheduled while the pass runs, for example by a
// refresh that mutates a model, wait for the next pass. A panic in one
// node is recovered and reported, and the pass continues.
func (p *PipelineOwner) FlushLayout() {
	p.mu.Lock()
	if len(p.dirtyLayout) == 0 {
		p.mu.Unlock()
		return
	}
	dirty := p.dirtyLayout
	p.dirtyLayout = nil
	p.dirtyLayoutSet = nil
	p.passes++
	p.mu.Unlock()

	// Sort by depth - parents first (lower depth = processed first).
	// SortStableFunc keeps scheduling order among siblings.
	slices.SortStableFunc(dirty, func(a, b Node) int {
		return a.Depth() - b.Depth()
	})

	for _, node := range dirty {
		if node.NeedsLayout() {
			layoutNode(node)
		}
	}
}

func layoutNode(node Node) {
	defer errors.Recover("layout.FlushLayout")
	node.Layout()
}
