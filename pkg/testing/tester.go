package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/autobind/pkg/engine"
	"github.com/go-drift/autobind/pkg/layout"
)

// FrameDuration is how far PumpAndSettle advances the clock per frame.
const FrameDuration = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: runner did not settle")

// Tester drives frames by hand. It wires the same pipeline and runner an
// application uses, but on a manual clock and without a frame ticker.
type Tester struct {
	pipeline *layout.PipelineOwner
	runner   *engine.Runner
	root     *layout.Container
	clock    *engine.ManualClock
}

// NewTester creates a tester with an empty root container.
func NewTester() *Tester {
	clk := engine.NewManualClock(time.Time{})
	pipeline := layout.NewPipelineOwner()
	return &Tester{
		pipeline: pipeline,
		runner:   engine.NewRunner(pipeline, clk),
		root:     layout.NewContainer(pipeline),
		clock:    clk,
	}
}

// NewTesterWithT creates a tester and registers a cleanup that fails the
// test if a frame is still pending when it ends. This is the recommended
// constructor for tests.
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	t.Cleanup(func() {
		if tester.pipeline.NeedsLayout() {
			t.Errorf("test ended with an unflushed layout pass")
		}
	})
	return tester
}

// Root returns the root container, the container screens should use.
func (t *Tester) Root() *layout.Container {
	return t.root
}

// Pipeline returns the layout pipeline.
func (t *Tester) Pipeline() *layout.PipelineOwner {
	return t.pipeline
}

// Runner returns the frame runner.
func (t *Tester) Runner() *engine.Runner {
	return t.runner
}

// Clock returns the manual clock for advancing time in tests.
func (t *Tester) Clock() *engine.ManualClock {
	return t.clock
}

// Pump runs a single frame: dispatches, due timers, then one layout pass.
func (t *Tester) Pump() {
	t.runner.StepFrame()
}

// Advance moves the clock forward by d and pumps one frame.
func (t *Tester) Advance(d time.Duration) {
	t.clock.Advance(d)
	t.Pump()
}

// PumpAndSettle runs frames until the runner is idle and no timers are
// pending, or the timeout is reached. Each frame advances the clock by
// FrameDuration. Returns ErrSettleTimeout if the runner does not settle.
func (t *Tester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		t.Pump()
		if !t.runner.NeedsFrame() && t.runner.PendingTimers() == 0 {
			return nil
		}
		t.clock.Advance(FrameDuration)
		elapsed += FrameDuration
	}
	return ErrSettleTimeout
}
