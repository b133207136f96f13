package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/autobind/pkg/errors"
	"github.com/go-drift/autobind/pkg/layout"
)

func newTestRunner() (*Runner, *ManualClock) {
	clk := NewManualClock(time.Time{})
	return NewRunner(layout.NewPipelineOwner(), clk), clk
}

type silentHandler struct {
	panics []*errors.PanicError
}

func (h *silentHandler) HandleError(*errors.BindError) {}
func (h *silentHandler) HandlePanic(err *errors.PanicError) {
	h.panics = append(h.panics, err)
}
func (h *silentHandler) HandleWarning(*errors.Warning) {}

func TestRunner_DispatchRunsInNextFrame(t *testing.T) {
	r, _ := newTestRunner()
	var got []int
	r.Dispatch(func() { got = append(got, 1) })
	r.Dispatch(func() { got = append(got, 2) })

	if !r.NeedsFrame() {
		t.Fatal("dispatch should request a frame")
	}
	if len(got) != 0 {
		t.Fatal("dispatch should not run synchronously")
	}

	r.StepFrame()

	if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
		t.Errorf("dispatch order mismatch (-want +got):\n%s", diff)
	}
	if r.NeedsFrame() {
		t.Error("runner should be idle after the frame")
	}
}

func TestRunner_DispatchFromGoroutines(t *testing.T) {
	r, _ := newTestRunner()
	var wg sync.WaitGroup
	count := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Dispatch(func() { count++ })
		}()
	}
	wg.Wait()

	r.StepFrame()

	if count != 10 {
		t.Errorf("Expected 10 callbacks, got %d", count)
	}
}

func TestRunner_AfterFiresWhenDue(t *testing.T) {
	r, clk := newTestRunner()
	fired := false
	r.After(2*time.Second, func() { fired = true })

	r.StepFrame()
	if fired {
		t.Fatal("timer fired early")
	}
	if r.NeedsFrame() {
		t.Error("a pending timer that is not due should not request a frame")
	}

	clk.Advance(2 * time.Second)
	if !r.NeedsFrame() {
		t.Error("due timer should request a frame")
	}
	r.StepFrame()

	if !fired {
		t.Error("timer should fire once due")
	}
	if r.PendingTimers() != 0 {
		t.Errorf("Expected no pending timers, got %d", r.PendingTimers())
	}
}

func TestRunner_TimersFireInDeadlineOrder(t *testing.T) {
	r, clk := newTestRunner()
	var got []string
	r.After(3*time.Second, func() { got = append(got, "late") })
	r.After(1*time.Second, func() { got = append(got, "early") })

	clk.Advance(5 * time.Second)
	r.StepFrame()

	if diff := cmp.Diff([]string{"early", "late"}, got); diff != "" {
		t.Errorf("timer order mismatch (-want +got):\n%s", diff)
	}
}

func TestRunner_CancelTimer(t *testing.T) {
	r, clk := newTestRunner()
	fired := false
	cancel := r.After(time.Second, func() { fired = true })
	cancel()

	clk.Advance(time.Second)
	r.StepFrame()

	if fired {
		t.Error("cancelled timer should not fire")
	}
}

type countingNode struct {
	needs   bool
	layouts int
}

func (n *countingNode) Depth() int        { return 0 }
func (n *countingNode) NeedsLayout() bool { return n.needs }
func (n *countingNode) Layout() {
	n.needs = false
	n.layouts++
}

func TestRunner_FlushesLayoutAfterDispatch(t *testing.T) {
	r, _ := newTestRunner()
	node := &countingNode{}
	r.Dispatch(func() {
		node.needs = true
		r.Pipeline().ScheduleLayout(node)
	})

	r.StepFrame()

	if node.layouts != 1 {
		t.Errorf("layout scheduled by a dispatch should run in the same frame, got %d", node.layouts)
	}
}

func TestRunner_ScheduleLayoutRequestsFrame(t *testing.T) {
	r, _ := newTestRunner()
	node := &countingNode{needs: true}
	r.Pipeline().ScheduleLayout(node)

	if !r.NeedsFrame() {
		t.Error("scheduled layout should request a frame")
	}
}

func TestRunner_PanicIsRecovered(t *testing.T) {
	h := &silentHandler{}
	prev := errors.SetHandler(h)
	defer errors.SetHandler(prev)

	r, _ := newTestRunner()
	ran := false
	r.Dispatch(func() { panic("boom") })
	r.Dispatch(func() { ran = true })

	r.StepFrame()

	if !ran {
		t.Error("callbacks after a panic should still run")
	}
	if len(h.panics) != 1 || h.panics[0].Op != "engine.Dispatch" {
		t.Errorf("Expected one engine.Dispatch panic, got %v", h.panics)
	}
}

func TestRunner_OnFrame(t *testing.T) {
	r, _ := newTestRunner()
	var frames []int
	r.OnFrame = func(frame int) { frames = append(frames, frame) }

	r.StepFrame()
	r.StepFrame()

	if diff := cmp.Diff([]int{1, 2}, frames); diff != "" {
		t.Errorf("frame numbers mismatch (-want +got):\n%s", diff)
	}
	if r.Frames() != 2 {
		t.Errorf("Expected 2 frames, got %d", r.Frames())
	}
}

func TestRunner_RunStopsOnCancel(t *testing.T) {
	r := NewRunner(layout.NewPipelineOwner(), nil)
	r.FrameInterval = time.Millisecond

	done := make(chan struct{})
	r.Dispatch(func() { close(done) })

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatched callback did not run")
	}
	cancel()

	if err := <-errCh; err != context.Canceled {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}
