// Package app coordinates the push-to-talk session lifecycle: capture
// start/stop, asynchronous transcription, paste, history recording, and
// UI reset.
package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KRagula/WhisperFlow/audiocapture"
	"github.com/KRagula/WhisperFlow/history"
	"github.com/KRagula/WhisperFlow/stt"
)

// State is the orchestrator's session state.
type State int

const (
	Idle State = iota
	Recording
	Transcribing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Transcribing:
		return "transcribing"
	default:
		return "unknown"
	}
}

// transcodeWorkers bounds concurrent transcription+paste work. Two is
// enough: at most one session records while the previous one finishes.
const transcodeWorkers = 2

// noticeDuration is how long transient messages stay visible.
const noticeDuration = 2 * time.Second

// Capture is the audio buffer the orchestrator drives.
type Capture interface {
	Start() error
	Stop()
	EncodedBytes() []byte
}

// Paster injects text into the focused application.
type Paster interface {
	Paste(text string, appendNewline bool, retries int, retryDelay, restoreDelay time.Duration) bool
}

// History records completed transcriptions.
type History interface {
	Append(text string, ts time.Time) (history.Entry, error)
}

// Notifier receives fire-and-forget UI signals; safe from any goroutine.
type Notifier interface {
	ShowIdle()
	ShowRecording()
	ShowTransient(text string, d time.Duration)
}

// Listener is the global hotkey hook the orchestrator shuts down.
type Listener interface {
	Stop()
}

// Options tunes the session pipeline.
type Options struct {
	Language      string // language hint for transcription, "auto" to detect
	AppendNewline bool
	PasteRetries  int
	RetryDelay    time.Duration
	RestoreDelay  time.Duration
}

type job struct {
	session string
	payload []byte
}

// Orchestrator owns the session lifecycle. At most one session records at a
// time; a prior session's transcription may still be in flight when the
// next recording begins. Starts and stops arriving out of order are
// ignored.
type Orchestrator struct {
	capture     Capture
	transcriber stt.Transcriber
	paster      Paster
	history     History
	notifier    Notifier
	listener    Listener
	opts        Options

	mu        sync.Mutex
	recording bool
	session   string // id of the session currently recording
	inflight  int    // sessions between capture-stop and UI reset

	ctx    context.Context
	cancel context.CancelFunc
	jobs   chan job
	wg     sync.WaitGroup

	shutdownOnce sync.Once
}

// New creates an orchestrator and starts its worker pool.
func New(capture Capture, transcriber stt.Transcriber, paster Paster, hist History, notifier Notifier, listener Listener, opts Options) *Orchestrator {
	ctx, cancel := context.WithCancel(context.Background())
	o := &Orchestrator{
		capture:     capture,
		transcriber: transcriber,
		paster:      paster,
		history:     hist,
		notifier:    notifier,
		listener:    listener,
		opts:        opts,
		ctx:         ctx,
		cancel:      cancel,
		jobs:        make(chan job, transcodeWorkers),
	}
	for i := 0; i < transcodeWorkers; i++ {
		o.wg.Add(1)
		go o.worker()
	}
	return o
}

// State returns the current session state. Recording wins over Transcribing
// when a new session overlaps a prior session's in-flight work.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch {
	case o.recording:
		return Recording
	case o.inflight > 0:
		return Transcribing
	default:
		return Idle
	}
}

// HandleSessionStart begins a recording session. Called from the hotkey
// event goroutine; must not block.
func (o *Orchestrator) HandleSessionStart() {
	o.mu.Lock()
	if o.recording {
		o.mu.Unlock()
		slog.Warn("session start ignored, already recording")
		return
	}
	id := uuid.NewString()
	o.recording = true
	o.session = id
	o.mu.Unlock()

	if err := o.capture.Start(); err != nil {
		o.mu.Lock()
		o.recording = false
		o.session = ""
		o.mu.Unlock()

		var devErr *audiocapture.DeviceError
		if errors.As(err, &devErr) {
			slog.Error("audio device unavailable", "session", id, "device", devErr.Device, "error", devErr.Err)
		} else {
			slog.Error("capture start failed", "session", id, "error", err)
		}
		o.notifier.ShowTransient("Audio input error", noticeDuration)
		return
	}

	slog.Info("session started", "session", id)
	o.notifier.ShowRecording()
}

// HandleSessionStop ends the recording and hands the captured audio to the
// worker pool. Called from the hotkey event goroutine; must not block on
// network work.
func (o *Orchestrator) HandleSessionStop() {
	o.mu.Lock()
	if !o.recording {
		o.mu.Unlock()
		slog.Warn("session stop ignored, not recording")
		return
	}
	id := o.session
	o.recording = false
	o.session = ""
	o.inflight++
	o.mu.Unlock()

	o.capture.Stop()
	payload := o.capture.EncodedBytes()
	if len(payload) == 0 {
		slog.Info("session captured no audio", "session", id)
		o.finishSession(id, "No speech detected")
		return
	}

	select {
	case o.jobs <- job{session: id, payload: payload}:
	case <-o.ctx.Done():
		// shutting down; abandon the session
	}
}

func (o *Orchestrator) worker() {
	defer o.wg.Done()
	for {
		select {
		case <-o.ctx.Done():
			return
		case j := <-o.jobs:
			o.process(j)
		}
	}
}

// process runs transcription, paste, and history recording for one session.
// Runs on a worker goroutine, never on the hotkey event path.
func (o *Orchestrator) process(j job) {
	result, err := o.transcriber.Transcribe(o.ctx, j.payload, o.opts.Language)
	if o.ctx.Err() != nil {
		// shutdown raced the completion; leave torn-down state alone
		return
	}
	if err != nil {
		slog.Error("transcription failed", "session", j.session, "error", err)
		o.finishSession(j.session, "Transcription failed")
		return
	}

	text := strings.TrimSpace(result.Text)
	if text == "" {
		slog.Info("transcription returned no text", "session", j.session)
		o.finishSession(j.session, "Nothing to paste")
		return
	}
	slog.Info("transcription complete",
		"session", j.session,
		"chars", len(text),
		"language", result.Language)

	ok := o.paster.Paste(text, o.opts.AppendNewline, o.opts.PasteRetries, o.opts.RetryDelay, o.opts.RestoreDelay)
	if !ok {
		// the text is preserved in history below, so no fatal notice
		slog.Error("paste failed, transcription kept in history", "session", j.session)
	}

	// recorded regardless of paste outcome
	if entry, err := o.history.Append(text, time.Now()); err != nil {
		slog.Error("recording history failed", "session", j.session, "error", err)
	} else {
		slog.Debug("history recorded", "session", j.session, "entry", entry.ID, "words", entry.Words)
	}

	o.finishSession(j.session, "")
}

// finishSession retires one in-flight session and resets the UI, unless a
// newer session is already recording.
func (o *Orchestrator) finishSession(id, notice string) {
	o.mu.Lock()
	o.inflight--
	recording := o.recording
	o.mu.Unlock()

	if notice != "" {
		o.notifier.ShowTransient(notice, noticeDuration)
	}
	if !recording {
		o.notifier.ShowIdle()
	}
	slog.Debug("session finished", "session", id)
}

// Shutdown stops the hotkey listener and any in-progress capture, then
// abandons in-flight transcription work. Safe to call more than once.
func (o *Orchestrator) Shutdown() {
	o.shutdownOnce.Do(func() {
		if o.listener != nil {
			o.listener.Stop()
		}
		o.capture.Stop()
		o.cancel()
		o.wg.Wait()
		slog.Info("orchestrator stopped")
	})
}
