package ui

import (
	_ "embed"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/getlantern/systray"
)

//go:embed assets/icon_idle.png
var iconIdle []byte

//go:embed assets/icon_recording.png
var iconRecording []byte

var levelGlyphs = []rune("▁▂▃▄▅▆▇█")

// Tray presents session state in the system tray and raises desktop
// notifications for transient messages.
type Tray struct {
	appName string

	mu        sync.Mutex
	recording bool
	status    *systray.MenuItem
}

// NewTray returns a Tray presenter. Run must be called before the Tray
// receives events.
func NewTray(appName string) *Tray {
	return &Tray{appName: appName}
}

// Run enters the systray loop and blocks until Quit. onReady is called once
// the tray is live; the quit menu item resolves the returned channel.
func (t *Tray) Run(onReady func(quit <-chan struct{})) {
	systray.Run(func() {
		systray.SetIcon(iconIdle)
		systray.SetTitle(t.appName)
		systray.SetTooltip(t.appName + ": idle")

		t.mu.Lock()
		t.status = systray.AddMenuItem("Idle", "Current state")
		t.status.Disable()
		t.mu.Unlock()

		systray.AddSeparator()
		quitItem := systray.AddMenuItem("Quit", "Quit "+t.appName)

		quit := make(chan struct{})
		go func() {
			<-quitItem.ClickedCh
			close(quit)
			systray.Quit()
		}()
		go onReady(quit)
	}, nil)
}

// Quit exits the systray loop, unblocking Run. Used by the shutdown path
// when the process is terminated by a signal rather than the menu.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) ShowIdle() {
	t.mu.Lock()
	t.recording = false
	if t.status != nil {
		t.status.SetTitle("Idle")
	}
	t.mu.Unlock()
	systray.SetIcon(iconIdle)
	systray.SetTooltip(t.appName + ": idle")
}

func (t *Tray) ShowRecording() {
	t.mu.Lock()
	t.recording = true
	if t.status != nil {
		t.status.SetTitle("Recording…")
	}
	t.mu.Unlock()
	systray.SetIcon(iconRecording)
	systray.SetTooltip(t.appName + ": recording")
}

func (t *Tray) ShowTransient(text string, _ time.Duration) {
	if err := beeep.Notify(t.appName, text, ""); err != nil {
		// tooltip fallback when desktop notifications are unavailable
		systray.SetTooltip(t.appName + ": " + text)
	}
}

// ShowLevel renders the input level as a bar glyph in the tooltip while
// recording.
func (t *Tray) ShowLevel(level float64) {
	t.mu.Lock()
	recording := t.recording
	t.mu.Unlock()
	if !recording {
		return
	}
	systray.SetTooltip(fmt.Sprintf("%s: recording %s", t.appName, levelBar(level, 8)))
}

// ShowWaveform renders the captured waveform as a sparkline in the status
// menu item while recording.
func (t *Tray) ShowWaveform(samples []float32) {
	t.mu.Lock()
	recording := t.recording
	status := t.status
	t.mu.Unlock()
	if !recording || status == nil {
		return
	}
	status.SetTitle("Recording " + waveformBar(samples, 8))
}

// waveformBar downsamples a [-1, 1] waveform to width buckets and maps each
// bucket's peak amplitude to a block glyph.
func waveformBar(samples []float32, width int) string {
	if len(samples) == 0 || width <= 0 {
		return ""
	}
	bucket := len(samples) / width
	if bucket == 0 {
		bucket = 1
	}
	var b strings.Builder
	for i := 0; i < width; i++ {
		start := i * bucket
		if start >= len(samples) {
			break
		}
		end := start + bucket
		if end > len(samples) {
			end = len(samples)
		}
		var peak float64
		for _, s := range samples[start:end] {
			if v := math.Abs(float64(s)); v > peak {
				peak = v
			}
		}
		idx := int(peak * float64(len(levelGlyphs)))
		if idx >= len(levelGlyphs) {
			idx = len(levelGlyphs) - 1
		}
		b.WriteRune(levelGlyphs[idx])
	}
	return b.String()
}

// levelBar maps a 0..1 level to a fixed-width string of block glyphs.
func levelBar(level float64, width int) string {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	filled := int(level * float64(width))
	var b strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteRune(levelGlyphs[len(levelGlyphs)-1])
		} else {
			b.WriteRune(levelGlyphs[0])
		}
	}
	return b.String()
}
