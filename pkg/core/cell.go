package core

// Cell is an observable storage location holding one value.
//
// Reading returns the most recently set value. Every Set emits exactly one
// change event to the current listeners before it returns.
//
// Cell is NOT thread-safe. It must only be mutated from the UI thread.
// To update from a background goroutine, go through engine.Runner.Dispatch:
//
//	go func() {
//	    user := fetchUser()
//	    runner.Dispatch(func() {
//	        model.name.Set(user.Name)
//	    })
//	}()
type Cell[T any] struct {
	value   T
	emitter Emitter[T]
}

// NewCell creates a cell holding initial. Creating a cell does not emit.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Value returns the current value.
func (c *Cell[T]) Value() T {
	return c.value
}

// Set stores value and notifies listeners.
func (c *Cell[T]) Set(value T) {
	c.value = value
	c.emitter.Emit(value)
}

// Update applies a transformation to the current value and notifies listeners.
func (c *Cell[T]) Update(transform func(T) T) {
	c.Set(transform(c.value))
}

// AddListener subscribes to the values written to the cell.
// The listener is not called with the current value.
func (c *Cell[T]) AddListener(listener func(T)) func() {
	return c.emitter.AddListener(listener)
}

// ListenerCount returns the number of subscriptions on the cell.
func (c *Cell[T]) ListenerCount() int {
	return c.emitter.ListenerCount()
}

// Changes returns the payload-less change stream of the cell.
func (c *Cell[T]) Changes() Listenable {
	return cellChanges[T]{cell: c}
}

type cellChanges[T any] struct {
	cell *Cell[T]
}

func (c cellChanges[T]) AddListener(listener func()) func() {
	if listener == nil {
		return func() {}
	}
	return c.cell.emitter.AddListener(func(T) { listener() })
}
