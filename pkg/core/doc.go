// Package core provides the observable building blocks of autobind.
//
// # Cells
//
// Cell is an observable storage location. Set stores the value and
// synchronously notifies every listener before returning:
//
//	count := core.NewCell(0)
//	count.AddListener(func(v int) { fmt.Println("count is", v) })
//	count.Set(1) // prints "count is 1"
//
// # Observable objects
//
// Models embed ObjectBase and declare their cells with Track. The cells'
// change streams are merged into one ObjectChanged stream, built lazily on
// first access and shared for the model's lifetime:
//
//	type counterModel struct {
//	    core.ObjectBase
//	    count *core.Cell[int]
//	}
//
//	m := &counterModel{}
//	m.count = core.Track(m, 0)
//	m.ObjectChanged().AddListener(func() { ... })
//
// # Registries
//
// Registry owns subscription cancellers and releases each of them once on
// Dispose. Subscribe and Pipe register their cancellers with a Registry.
//
// # Threading
//
// Everything in this package is meant to be driven from a single UI
// goroutine. Notifier and Registry tolerate concurrent use, Cell does not.
package core
