// Package ui delivers state changes and transient messages to the
// presentation layer. Callers on audio and worker goroutines hand events to
// a Notifier, which forwards them to a Presenter from a single goroutine.
package ui

import (
	"sync"
	"time"
)

// Presenter renders notifications. All methods are invoked from the
// Notifier's pump goroutine, never concurrently.
type Presenter interface {
	ShowIdle()
	ShowRecording()
	ShowTransient(text string, d time.Duration)
	ShowLevel(level float64)
}

// WaveformPresenter is implemented by presenters that can render the
// captured waveform in addition to the scalar level.
type WaveformPresenter interface {
	ShowWaveform(samples []float32)
}

type eventKind int

const (
	eventIdle eventKind = iota
	eventRecording
	eventTransient
)

type event struct {
	kind     eventKind
	text     string
	duration time.Duration
}

// Notifier is a thread-safe hand-off between the session pipeline and the
// Presenter. State events are buffered; level updates are lossy and dropped
// when the presenter falls behind.
type Notifier struct {
	presenter Presenter

	events chan event
	levels chan float64
	waves  chan []float32
	done   chan struct{}

	closeOnce sync.Once
}

// NewNotifier starts the pump goroutine feeding p.
func NewNotifier(p Presenter) *Notifier {
	n := &Notifier{
		presenter: p,
		events:    make(chan event, 16),
		levels:    make(chan float64, 8),
		waves:     make(chan []float32, 4),
		done:      make(chan struct{}),
	}
	go n.pump()
	return n
}

func (n *Notifier) pump() {
	for {
		select {
		case <-n.done:
			return
		case ev := <-n.events:
			switch ev.kind {
			case eventIdle:
				n.presenter.ShowIdle()
			case eventRecording:
				n.presenter.ShowRecording()
			case eventTransient:
				n.presenter.ShowTransient(ev.text, ev.duration)
			}
		case level := <-n.levels:
			n.presenter.ShowLevel(level)
		case wave := <-n.waves:
			if wp, ok := n.presenter.(WaveformPresenter); ok {
				wp.ShowWaveform(wave)
			}
		}
	}
}

// ShowIdle signals the idle state.
func (n *Notifier) ShowIdle() { n.send(event{kind: eventIdle}) }

// ShowRecording signals that capture is in progress.
func (n *Notifier) ShowRecording() { n.send(event{kind: eventRecording}) }

// ShowTransient displays text for roughly d, then the presenter reverts to
// the current state on its own.
func (n *Notifier) ShowTransient(text string, d time.Duration) {
	n.send(event{kind: eventTransient, text: text, duration: d})
}

func (n *Notifier) send(ev event) {
	select {
	case n.events <- ev:
	case <-n.done:
	default:
		// presenter is stalled; drop rather than block the caller
	}
}

// FeedLevel forwards a smoothed RMS level. Lossy: excess updates are dropped.
func (n *Notifier) FeedLevel(level float64) {
	select {
	case n.levels <- level:
	default:
	}
}

// FeedWaveform forwards a normalized waveform snippet to presenters that
// render one. Lossy like FeedLevel; the caller's slice is copied since the
// capture callback reuses its buffer.
func (n *Notifier) FeedWaveform(wave []float32) {
	snap := make([]float32, len(wave))
	copy(snap, wave)
	select {
	case n.waves <- snap:
	default:
	}
}

// Close stops the pump goroutine. Events handed off after Close are dropped.
func (n *Notifier) Close() {
	n.closeOnce.Do(func() { close(n.done) })
}
