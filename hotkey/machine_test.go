package hotkey

import (
	"testing"
	"time"
)

// testMachine returns a machine with a controllable clock and counters
// wired to its start/stop handlers.
func testMachine(t *testing.T, keys []string) (*Machine, *int, *int, *time.Time) {
	t.Helper()
	m := NewMachine(keys, DefaultDebounce)
	clock := time.Unix(1000, 0)
	m.now = func() time.Time { return clock }

	var starts, stops int
	m.OnStart(func() { starts++ })
	m.OnStop(func() { stops++ })
	return m, &starts, &stops, &clock
}

func TestMachineStartStopCycle(t *testing.T) {
	m, starts, stops, clock := testMachine(t, []string{"ctrl", "win"})

	m.HandleKeyEvent("ctrl", KeyDown)
	if *starts != 0 {
		t.Fatalf("start fired with partial combination")
	}
	m.HandleKeyEvent("left windows", KeyDown)
	if *starts != 1 {
		t.Fatalf("starts = %d, want 1", *starts)
	}
	if !m.Active() {
		t.Fatal("machine should be active")
	}

	*clock = clock.Add(time.Second)
	m.HandleKeyEvent("win", KeyUp)
	if *stops != 1 {
		t.Fatalf("stops = %d, want 1", *stops)
	}
	if m.Active() {
		t.Fatal("machine should be idle after release")
	}
}

func TestMachineIdempotentRepress(t *testing.T) {
	m, starts, _, _ := testMachine(t, []string{"ctrl", "win"})

	m.HandleKeyEvent("ctrl", KeyDown)
	m.HandleKeyEvent("win", KeyDown)
	// OS key-repeat delivers the same down edges again while held.
	m.HandleKeyEvent("ctrl", KeyDown)
	m.HandleKeyEvent("win", KeyDown)
	m.HandleKeyEvent("win", KeyDown)

	if *starts != 1 {
		t.Fatalf("starts = %d, want exactly 1 per press cycle", *starts)
	}
}

func TestMachineDebounceSuppressesChatter(t *testing.T) {
	m, starts, stops, clock := testMachine(t, []string{"ctrl", "win"})

	m.HandleKeyEvent("ctrl", KeyDown)
	m.HandleKeyEvent("win", KeyDown)
	*clock = clock.Add(10 * time.Millisecond)
	m.HandleKeyEvent("win", KeyUp)
	*clock = clock.Add(10 * time.Millisecond)
	m.HandleKeyEvent("win", KeyDown)

	if *starts != 1 || *stops != 1 {
		t.Fatalf("starts=%d stops=%d, chatter inside the debounce window must not restart", *starts, *stops)
	}

	// Past the window the re-press is accepted.
	*clock = clock.Add(DefaultDebounce + time.Millisecond)
	m.HandleKeyEvent("win", KeyUp)
	m.HandleKeyEvent("win", KeyDown)
	if *starts != 2 {
		t.Fatalf("starts = %d, want 2 after debounce window elapsed", *starts)
	}
}

func TestMachineRapidRestartSuppressed(t *testing.T) {
	// The last-transition timestamp is refreshed on stop as well as start,
	// so a release-and-repress inside the window is held back.
	m, starts, stops, clock := testMachine(t, []string{"ctrl", "win"})

	m.HandleKeyEvent("ctrl", KeyDown)
	m.HandleKeyEvent("win", KeyDown)
	*clock = clock.Add(time.Second)
	m.HandleKeyEvent("win", KeyUp)
	if *stops != 1 {
		t.Fatalf("stops = %d, want 1", *stops)
	}

	*clock = clock.Add(50 * time.Millisecond)
	m.HandleKeyEvent("win", KeyDown)
	if *starts != 1 {
		t.Fatalf("restart inside debounce window must be suppressed, starts = %d", *starts)
	}
}

func TestMachineIgnoresUnrelatedKeys(t *testing.T) {
	m, starts, stops, _ := testMachine(t, []string{"ctrl", "win"})

	m.HandleKeyEvent("a", KeyDown)
	m.HandleKeyEvent("shift", KeyDown)
	m.HandleKeyEvent("ctrl", KeyDown)
	m.HandleKeyEvent("a", KeyUp)
	m.HandleKeyEvent("", KeyDown)

	if *starts != 0 || *stops != 0 {
		t.Fatalf("unrelated keys must not signal, starts=%d stops=%d", *starts, *stops)
	}
}

func TestMachineUpdateCombination(t *testing.T) {
	m, starts, stops, _ := testMachine(t, []string{"ctrl", "win"})

	m.HandleKeyEvent("ctrl", KeyDown)
	m.HandleKeyEvent("win", KeyDown)
	if *starts != 1 {
		t.Fatalf("starts = %d, want 1", *starts)
	}

	m.UpdateCombination([]string{"ctrl", "alt"})
	if m.Active() {
		t.Fatal("update must force idle")
	}
	if *stops != 0 {
		t.Fatal("configuration change must not emit a stop")
	}

	// Old combination no longer triggers; new one does.
	m.HandleKeyEvent("win", KeyDown)
	if *starts != 1 {
		t.Fatal("stale combination fired after update")
	}
	m.HandleKeyEvent("ctrl", KeyDown)
	m.HandleKeyEvent("alt", KeyDown)
	if *starts != 1 {
		// Still inside the debounce window from the first start.
		t.Fatalf("starts = %d, debounce carries across UpdateCombination", *starts)
	}
}

func TestMachineHandlerPanicDoesNotBreakDelivery(t *testing.T) {
	m := NewMachine([]string{"ctrl", "win"}, DefaultDebounce)
	clock := time.Unix(1000, 0)
	m.now = func() time.Time { return clock }

	var stops int
	m.OnStart(func() { panic("broken handler") })
	m.OnStop(func() { stops++ })

	m.HandleKeyEvent("ctrl", KeyDown)
	m.HandleKeyEvent("win", KeyDown) // must not panic through
	clock = clock.Add(time.Second)
	m.HandleKeyEvent("ctrl", KeyUp)

	if stops != 1 {
		t.Fatalf("stops = %d, want 1: a broken start handler must not break later events", stops)
	}
}

func TestMachineThreeKeyCombination(t *testing.T) {
	m, starts, stops, clock := testMachine(t, []string{"ctrl", "shift", "space"})

	m.HandleKeyEvent("ctrl", KeyDown)
	m.HandleKeyEvent("shift", KeyDown)
	if *starts != 0 {
		t.Fatal("partial three-key combination fired")
	}
	m.HandleKeyEvent("space", KeyDown)
	if *starts != 1 {
		t.Fatalf("starts = %d, want 1", *starts)
	}
	*clock = clock.Add(time.Second)
	m.HandleKeyEvent("shift", KeyUp)
	if *stops != 1 {
		t.Fatalf("stops = %d, want 1", *stops)
	}
}
