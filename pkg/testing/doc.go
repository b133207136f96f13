// Package testing provides a headless frame harness for autobind.
//
// # Quick Start
//
// Create a tester, bind a view to its root container, mutate the model and
// pump frames:
//
//	func TestProfile(t *testing.T) {
//	    tester := bindtest.NewTesterWithT(t)
//	    model := newProfileModel()
//	    view := &bindtest.RefreshRecorder{Snapshot: model.Name.Value}
//	    view.SetContainer(tester.Root())
//	    bind.Bind(view, model)
//
//	    model.Name.Set("Ada")
//	    model.Name.Set("Ada L.")
//	    tester.Pump()
//
//	    if view.Count() != 2 || view.Last() != "Ada L." {
//	        t.Errorf("unexpected refreshes: %v", view.Frames)
//	    }
//	}
//
// # Time
//
// Timers registered with Runner.After fire on the tester's manual clock:
//
//	tester.Advance(2 * time.Second)
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import bindtest "github.com/go-drift/autobind/pkg/testing"
package testing
