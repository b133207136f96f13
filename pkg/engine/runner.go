// Package engine owns the UI thread: it runs dispatched callbacks and timers
// and drives layout passes, one per frame.
package engine

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-drift/autobind/pkg/errors"
	"github.com/go-drift/autobind/pkg/layout"
)

// DefaultFrameInterval is the frame period used when Runner.FrameInterval is
// zero, roughly 60 frames per second.
const DefaultFrameInterval = 16 * time.Millisecond

// Runner is the frame loop of an application.
//
// Each frame runs three phases in order:
//  1. dispatched callbacks, in the order they were queued
//  2. timers whose deadline has passed, earliest first
//  3. one layout pass of the pipeline, which is where bound views refresh
//
// Model mutations made in phases 1 and 2 are therefore visible to the
// refreshes of the same frame.
//
// Only Dispatch and RequestFrame may be called from other goroutines.
// Everything else belongs to the goroutine that calls Run or StepFrame.
// Tests and scripted replays skip Run and call StepFrame by hand.
type Runner struct {
	pipeline *layout.PipelineOwner
	clock    Clock

	// FrameInterval is the period of the frame ticker used by Run.
	FrameInterval time.Duration

	// OnFrame, if set, is called at the end of every frame with the frame
	// number, starting at 1.
	OnFrame func(frame int)

	dispatchMu    sync.Mutex
	dispatchQueue []func()
	pendingFrame  atomic.Bool

	timers  []*timer
	timerID uint64
	frames  int
}

type timer struct {
	id       uint64
	deadline time.Time
	fn       func()
}

// NewRunner creates a runner driving pipeline. A nil clock uses system time.
// The runner installs itself as the pipeline's OnNeedsFrame hook.
func NewRunner(pipeline *layout.PipelineOwner, clock Clock) *Runner {
	if clock == nil {
		clock = realClock{}
	}
	r := &Runner{
		pipeline: pipeline,
		clock:    clock,
	}
	pipeline.OnNeedsFrame = r.RequestFrame
	return r
}

// Pipeline returns the pipeline driven by the runner.
func (r *Runner) Pipeline() *layout.PipelineOwner {
	return r.pipeline
}

// Clock returns the runner's time source.
func (r *Runner) Clock() Clock {
	return r.clock
}

// Frames returns the number of frames run so far.
func (r *Runner) Frames() int {
	return r.frames
}

// Dispatch schedules a callback to run on the UI thread during the next
// frame and is safe to call from any goroutine.
func (r *Runner) Dispatch(callback func()) {
	if callback == nil {
		return
	}
	r.dispatchMu.Lock()
	r.dispatchQueue = append(r.dispatchQueue, callback)
	r.dispatchMu.Unlock()
	r.RequestFrame()
}

// RequestFrame asks for a frame even if no work is pending.
func (r *Runner) RequestFrame() {
	r.pendingFrame.Store(true)
}

// After runs fn on the UI thread in the first frame at or after d from now.
// It returns a function that cancels the timer if it has not fired yet.
func (r *Runner) After(d time.Duration, fn func()) func() {
	if fn == nil {
		return func() {}
	}
	r.timerID++
	t := &timer{id: r.timerID, deadline: r.clock.Now().Add(d), fn: fn}
	r.timers = append(r.timers, t)
	return func() {
		r.timers = slices.DeleteFunc(r.timers, func(other *timer) bool {
			return other.id == t.id
		})
	}
}

// PendingTimers returns the number of timers that have not fired yet.
func (r *Runner) PendingTimers() int {
	return len(r.timers)
}

// NeedsFrame reports whether the next frame has any work to do.
func (r *Runner) NeedsFrame() bool {
	if r.pendingFrame.Load() {
		return true
	}
	r.dispatchMu.Lock()
	hasCallbacks := len(r.dispatchQueue) > 0
	r.dispatchMu.Unlock()
	if hasCallbacks {
		return true
	}
	if r.hasDueTimer() {
		return true
	}
	return r.pipeline.NeedsLayout()
}

// StepFrame runs one frame. A panic in a callback, timer or refresh is
// recovered and reported; the rest of the frame still runs.
func (r *Runner) StepFrame() {
	r.pendingFrame.Store(false)

	for _, callback := range r.drainDispatchQueue() {
		runTask("engine.Dispatch", callback)
	}

	for _, t := range r.takeDueTimers() {
		runTask("engine.After", t.fn)
	}

	r.pipeline.FlushLayout()

	r.frames++
	if r.OnFrame != nil {
		r.OnFrame(r.frames)
	}
}

// Run steps frames on a ticker until ctx is done. Frames with no pending
// work are skipped. Run returns ctx.Err().
func (r *Runner) Run(ctx context.Context) error {
	interval := r.FrameInterval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if r.NeedsFrame() {
				r.StepFrame()
			}
		}
	}
}

func (r *Runner) drainDispatchQueue() []func() {
	r.dispatchMu.Lock()
	callbacks := r.dispatchQueue
	r.dispatchQueue = nil
	r.dispatchMu.Unlock()
	return callbacks
}

func (r *Runner) hasDueTimer() bool {
	now := r.clock.Now()
	for _, t := range r.timers {
		if !t.deadline.After(now) {
			return true
		}
	}
	return false
}

// takeDueTimers removes and returns the due timers, earliest deadline first.
// Timers added by a firing timer wait for a later frame.
func (r *Runner) takeDueTimers() []*timer {
	now := r.clock.Now()
	var due []*timer
	r.timers = slices.DeleteFunc(r.timers, func(t *timer) bool {
		if t.deadline.After(now) {
			return false
		}
		due = append(due, t)
		return true
	})
	slices.SortStableFunc(due, func(a, b *timer) int {
		return a.deadline.Compare(b.deadline)
	})
	return due
}

func runTask(op string, fn func()) {
	defer errors.Recover(op)
	fn()
}
