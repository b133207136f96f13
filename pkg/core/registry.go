package core

import "sync"

// Registry owns cleanup functions, typically subscription cancellers, and
// runs each of them exactly once when disposed.
//
// Every ObjectBase and every bind.ViewBase owns one Registry. The zero value
// is ready to use.
type Registry struct {
	disposers []func()
	disposed  bool
	mu        sync.Mutex
}

// Add registers a cleanup function to be called when the registry is disposed.
// Returns an unregister function that removes the cleanup without running it.
// If the registry is already disposed, cleanup runs immediately.
func (r *Registry) Add(cleanup func()) func() {
	if cleanup == nil {
		return func() {}
	}

	r.mu.Lock()
	if r.disposed {
		r.mu.Unlock()
		cleanup()
		return func() {}
	}
	index := len(r.disposers)
	r.disposers = append(r.disposers, cleanup)
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if index < len(r.disposers) {
			r.disposers[index] = nil
		}
	}
}

// Len returns the number of live cleanup functions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, d := range r.disposers {
		if d != nil {
			n++
		}
	}
	return n
}

// Dispose runs all registered cleanups in reverse order (LIFO).
// Later calls are no-ops.
func (r *Registry) Dispose() {
	r.mu.Lock()
	if r.disposed {
		r.mu.Unlock()
		return
	}
	r.disposed = true
	disposers := r.disposers
	r.disposers = nil
	r.mu.Unlock()

	for i := len(disposers) - 1; i >= 0; i-- {
		if disposers[i] != nil {
			disposers[i]()
		}
	}
}

// IsDisposed returns true if Dispose has been called.
func (r *Registry) IsDisposed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disposed
}
