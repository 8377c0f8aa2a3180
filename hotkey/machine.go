package hotkey

import (
	"log/slog"
	"sync"
	"time"
)

// Direction is the edge of a key event.
type Direction int

const (
	KeyDown Direction = iota
	KeyUp
)

// DefaultDebounce is the minimum interval between accepted transitions.
// OS key-repeat can deliver a down-up-down burst well inside this window.
const DefaultDebounce = 150 * time.Millisecond

// Handler receives a session-start or session-stop signal. Handlers run
// synchronously on the goroutine delivering the key event and must not block.
type Handler func()

// Machine tracks the pressed subset of a required key combination and emits
// exactly one start signal when the combination becomes fully pressed and
// exactly one stop signal when it stops being fully pressed.
type Machine struct {
	mu             sync.Mutex
	required       map[string]struct{}
	pressed        map[string]struct{}
	active         bool
	lastTransition time.Time
	debounce       time.Duration
	now            func() time.Time

	onStart Handler
	onStop  Handler
}

// NewMachine creates a state machine for the given key combination.
// Keys are normalized; the combination may be any size.
func NewMachine(keys []string, debounce time.Duration) *Machine {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	m := &Machine{
		required: make(map[string]struct{}, len(keys)),
		pressed:  make(map[string]struct{}, len(keys)),
		debounce: debounce,
		now:      time.Now,
	}
	for _, k := range keys {
		if n := Normalize(k); n != "" {
			m.required[n] = struct{}{}
		}
	}
	return m
}

// OnStart registers the session-start handler. One handler per event type.
func (m *Machine) OnStart(h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onStart = h
}

// OnStop registers the session-stop handler.
func (m *Machine) OnStop(h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onStop = h
}

// HandleKeyEvent feeds one raw key event into the machine. Events for keys
// outside the required combination are ignored on the down edge; unknown
// names simply never match.
func (m *Machine) HandleKeyEvent(raw string, dir Direction) {
	key := Normalize(raw)
	if key == "" {
		return
	}

	var fire Handler
	m.mu.Lock()
	switch dir {
	case KeyDown:
		if _, ok := m.required[key]; !ok {
			break
		}
		m.pressed[key] = struct{}{}
		if !m.active && m.satisfied() {
			now := m.now()
			if now.Sub(m.lastTransition) < m.debounce {
				break
			}
			m.lastTransition = now
			m.active = true
			fire = m.onStart
		}
	case KeyUp:
		delete(m.pressed, key)
		if m.active && !m.satisfied() {
			m.lastTransition = m.now()
			m.active = false
			fire = m.onStop
		}
	}
	m.mu.Unlock()

	if fire != nil {
		safeCall(fire)
	}
}

// UpdateCombination swaps the required keys. The pressed set is cleared and
// the machine forced Idle without emitting a stop: a configuration change is
// not a session event.
func (m *Machine) UpdateCombination(keys []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.required = make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if n := Normalize(k); n != "" {
			m.required[n] = struct{}{}
		}
	}
	m.pressed = make(map[string]struct{}, len(keys))
	m.active = false
}

// Active reports whether the combination is currently held.
func (m *Machine) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// satisfied reports required ⊆ pressed. Caller holds the lock.
func (m *Machine) satisfied() bool {
	if len(m.required) == 0 {
		return false
	}
	for k := range m.required {
		if _, ok := m.pressed[k]; !ok {
			return false
		}
	}
	return true
}

// safeCall shields the event-delivery path from a broken handler.
func safeCall(h Handler) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("hotkey handler panicked", "panic", r)
		}
	}()
	h()
}
