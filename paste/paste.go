// Package paste injects transcribed text into the focused application by
// writing it to the clipboard and simulating a paste keystroke, then
// restoring the previous clipboard content.
package paste

import (
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

const (
	// DefaultRetryDelay is the pause between failed keystroke attempts.
	DefaultRetryDelay = 150 * time.Millisecond
	// DefaultRestoreDelay gives the target application time to read the
	// clipboard before the previous content is put back.
	DefaultRestoreDelay = 1200 * time.Millisecond

	// writeSettle lets the clipboard write propagate before the paste
	// keystroke fires.
	writeSettle = 80 * time.Millisecond
)

// Clipboard abstracts the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(t string) error  { return clipboard.WriteAll(t) }

// Paster performs the clipboard write + keystroke + restore sequence.
type Paster struct {
	clip      Clipboard
	sendPaste func() error
	sleep     func(time.Duration)
	schedule  func(d time.Duration, fn func())
}

// New returns a Paster backed by the system clipboard and keyboard.
func New() *Paster {
	return &Paster{
		clip:      systemClipboard{},
		sendPaste: sendPasteKeystroke,
		sleep:     time.Sleep,
		schedule:  func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
	}
}

// Paste writes text to the clipboard and simulates a paste keystroke,
// retrying the keystroke up to retries additional times. The previous
// clipboard content, if readable, is restored after restoreDelay without
// blocking the caller. Returns whether the paste keystroke succeeded.
func (p *Paster) Paste(text string, appendNewline bool, retries int, retryDelay, restoreDelay time.Duration) bool {
	text = strings.TrimRight(text, "\r\n")
	if appendNewline {
		text += "\n"
	}

	previous, err := p.clip.ReadAll()
	restore := err == nil
	if err != nil {
		slog.Warn("reading clipboard for restore failed, skipping restore", "error", err)
	}

	if err := p.clip.WriteAll(text); err != nil {
		slog.Error("writing clipboard failed", "error", err)
		return false
	}
	p.sleep(writeSettle)

	ok := false
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			p.sleep(retryDelay)
		}
		if err := p.sendPaste(); err != nil {
			slog.Warn("paste keystroke failed", "attempt", attempt+1, "error", err)
			continue
		}
		ok = true
		break
	}
	if !ok {
		slog.Error("paste keystroke failed after all attempts", "attempts", retries+1)
	}

	if restore {
		p.schedule(restoreDelay, func() {
			if err := p.clip.WriteAll(previous); err != nil {
				slog.Warn("restoring clipboard failed", "error", err)
			}
		})
	}
	return ok
}
