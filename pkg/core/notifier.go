package core

import "sync"

// Listenable is a payload-less multicast event stream.
type Listenable interface {
	// AddListener registers listener and returns a function that removes it.
	// The returned function is safe to call more than once.
	AddListener(listener func()) func()
}

// Emitter is a multicast stream of values of type T.
//
// Listeners run synchronously inside Emit, in the order they were added.
// A listener added during an emission only sees later emissions, and a
// listener removed during an emission is not called for the rest of it.
// Emit may be called from inside a listener; the nested emission is
// delivered in full before the outer one resumes.
//
// The zero value is ready to use.
type Emitter[T any] struct {
	mu        sync.Mutex
	listeners []*emitterEntry[T]
}

type emitterEntry[T any] struct {
	fn      func(T)
	removed bool
}

// AddListener registers fn and returns a function that removes it.
func (e *Emitter[T]) AddListener(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}
	entry := &emitterEntry[T]{fn: fn}

	e.mu.Lock()
	e.listeners = append(e.listeners, entry)
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if entry.removed {
			return
		}
		entry.removed = true
		for i, l := range e.listeners {
			if l == entry {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				break
			}
		}
	}
}

// Emit delivers value to every current listener.
func (e *Emitter[T]) Emit(value T) {
	e.mu.Lock()
	if len(e.listeners) == 0 {
		e.mu.Unlock()
		return
	}
	snapshot := make([]*emitterEntry[T], len(e.listeners))
	copy(snapshot, e.listeners)
	e.mu.Unlock()

	for _, entry := range snapshot {
		e.mu.Lock()
		removed := entry.removed
		e.mu.Unlock()
		if !removed {
			entry.fn(value)
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (e *Emitter[T]) ListenerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}

// Clear removes every listener.
func (e *Emitter[T]) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, entry := range e.listeners {
		entry.removed = true
	}
	e.listeners = nil
}

// Notifier is a Listenable that can be triggered explicitly.
type Notifier struct {
	emitter Emitter[struct{}]
}

// NewNotifier creates a Notifier with no listeners.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// AddListener registers listener and returns a function that removes it.
func (n *Notifier) AddListener(listener func()) func() {
	if listener == nil {
		return func() {}
	}
	return n.emitter.AddListener(func(struct{}) { listener() })
}

// Notify calls every listener once.
func (n *Notifier) Notify() {
	n.emitter.Emit(struct{}{})
}

// ListenerCount returns the number of registered listeners.
func (n *Notifier) ListenerCount() int {
	return n.emitter.ListenerCount()
}

// Dispose removes every listener.
func (n *Notifier) Dispose() {
	n.emitter.Clear()
}
