package testing

import (
	"testing"
	"time"
)

func TestTester_TimersUseManualClock(t *testing.T) {
	tester := NewTesterWithT(t)
	fired := false
	tester.Runner().After(time.Second, func() { fired = true })

	tester.Pump()
	if fired {
		t.Fatal("timer fired before the clock advanced")
	}

	tester.Advance(time.Second)
	if !fired {
		t.Error("timer should fire after advancing the clock")
	}
}

func TestPumpAndSettle_WaitsForTimers(t *testing.T) {
	tester := NewTesterWithT(t)
	fired := false
	tester.Runner().After(100*time.Millisecond, func() { fired = true })

	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatalf("expected settle, got: %v", err)
	}
	if !fired {
		t.Error("timer should have fired while settling")
	}
}

func TestPumpAndSettle_Timeout(t *testing.T) {
	tester := NewTesterWithT(t)
	var reschedule func()
	reschedule = func() { tester.Runner().After(time.Millisecond, reschedule) }
	reschedule()

	if err := tester.PumpAndSettle(100 * time.Millisecond); err != ErrSettleTimeout {
		t.Errorf("expected ErrSettleTimeout, got %v", err)
	}
}
