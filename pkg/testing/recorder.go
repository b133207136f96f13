package testing

import (
	"github.com/go-drift/autobind/pkg/bind"
)

// RefreshRecorder is a bindable view that records every refresh. Snapshot,
// if set, is called on each refresh and its result appended to Frames, so a
// test can assert on what each refresh would have painted.
type RefreshRecorder struct {
	bind.ViewBase

	Snapshot func() string
	Frames   []string
	count    int
}

// Refresh records one refresh.
func (r *RefreshRecorder) Refresh() {
	r.count++
	if r.Snapshot != nil {
		r.Frames = append(r.Frames, r.Snapshot())
	}
}

// Count returns the number of refreshes so far.
func (r *RefreshRecorder) Count() int {
	return r.count
}

// Last returns the most recent snapshot, or "" if there is none.
func (r *RefreshRecorder) Last() string {
	if len(r.Frames) == 0 {
		return ""
	}
	return r.Frames[len(r.Frames)-1]
}
