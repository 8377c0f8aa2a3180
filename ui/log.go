package ui

import (
	"log/slog"
	"time"

	"github.com/gen2brain/beeep"
)

// Headless presents state through the log and desktop notifications only.
// Used when the tray indicator is disabled.
type Headless struct {
	appName string
}

// NewHeadless returns a Headless presenter.
func NewHeadless(appName string) *Headless {
	return &Headless{appName: appName}
}

func (h *Headless) ShowIdle()      { slog.Debug("ui state", "state", "idle") }
func (h *Headless) ShowRecording() { slog.Debug("ui state", "state", "recording") }

func (h *Headless) ShowTransient(text string, _ time.Duration) {
	if err := beeep.Notify(h.appName, text, ""); err != nil {
		slog.Info("notice", "text", text)
	}
}

func (h *Headless) ShowLevel(float64) {}

func (h *Headless) ShowWaveform(samples []float32) {
	slog.Debug("waveform", "samples", len(samples))
}
