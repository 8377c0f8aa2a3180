package hotkey

import (
	"log/slog"
	"sync"

	hook "github.com/robotn/gohook"
)

// Listener owns the global keyboard hook and feeds raw key edges into a
// Machine. One listener per process; the hook library installs a
// process-wide tap.
type Listener struct {
	machine *Machine

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// NewListener wires a listener to the given machine.
func NewListener(m *Machine) *Listener {
	return &Listener{machine: m}
}

// Start installs the global hook and begins dispatching events on a
// dedicated goroutine. Calling Start on a running listener is a no-op.
func (l *Listener) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return
	}
	l.running = true
	l.done = make(chan struct{})

	events := hook.Start()
	go l.dispatch(events, l.done)
	slog.Info("hotkey listener started")
}

// Stop removes the hook. Idempotent.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	l.running = false
	close(l.done)
	hook.End()
	slog.Info("hotkey listener stopped")
}

func (l *Listener) dispatch(events chan hook.Event, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev.Kind {
			case hook.KeyDown, hook.KeyHold:
				// KeyHold is OS auto-repeat; the pressed set in the
				// machine makes the repeat idempotent.
				l.machine.HandleKeyEvent(hook.RawcodetoKeychar(ev.Rawcode), KeyDown)
			case hook.KeyUp:
				l.machine.HandleKeyEvent(hook.RawcodetoKeychar(ev.Rawcode), KeyUp)
			}
		}
	}
}
