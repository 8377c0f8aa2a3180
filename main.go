package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KRagula/WhisperFlow/audiocapture"
	"github.com/KRagula/WhisperFlow/config"
	"github.com/KRagula/WhisperFlow/history"
	"github.com/KRagula/WhisperFlow/hotkey"
	"github.com/KRagula/WhisperFlow/internal/app"
	"github.com/KRagula/WhisperFlow/internal/logging"
	"github.com/KRagula/WhisperFlow/paste"
	"github.com/KRagula/WhisperFlow/stt"
	"github.com/KRagula/WhisperFlow/ui"
)

const appName = "WhisperFlow"

var version = "dev"

func main() {
	logging.Setup(os.Getenv("WHISPERFLOW_DEBUG") != "")
	slog.Info("starting", "app", appName, "version", version)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	apiKey := cfg.ResolveAPIKey()
	if apiKey == "" {
		slog.Warn("no API key found, transcription will fail", "env", cfg.APIKeyEnv)
	}
	if !stt.ValidLanguage(cfg.Language) {
		slog.Warn("invalid language hint, falling back to auto-detect", "language", cfg.Language)
		cfg.Language = stt.AutoLanguage
	}

	if err := audiocapture.Initialize(); err != nil {
		slog.Error("init audio subsystem", "error", err)
		os.Exit(1)
	}
	defer audiocapture.Terminate()

	for _, mic := range audiocapture.ListMicrophones() {
		slog.Info("input device available", "name", mic)
	}

	historyPath, err := config.HistoryPath()
	if err != nil {
		slog.Error("resolve history path", "error", err)
		os.Exit(1)
	}
	store, err := history.Open(historyPath)
	if err != nil {
		slog.Error("open history", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	if total, err := store.TotalWordCount(); err == nil {
		slog.Info("history loaded", "total_words", total)
	}
	if recent, err := store.Entries(1); err == nil && len(recent) > 0 {
		slog.Info("last transcription", "at", recent[0].Timestamp, "words", recent[0].Words)
	}

	recorder := audiocapture.NewRecorder(audiocapture.Config{
		DeviceName: cfg.MicDeviceName,
		SampleRate: cfg.SampleRate,
		GainDB:     cfg.InputGainDB,
	})

	var tray *ui.Tray
	var presenter ui.Presenter
	if cfg.TrayEnabled {
		tray = ui.NewTray(appName)
		presenter = tray
	} else {
		presenter = ui.NewHeadless(appName)
	}
	notifier := ui.NewNotifier(presenter)
	defer notifier.Close()

	recorder.OnLevel(notifier.FeedLevel)
	recorder.OnWaveform(func(samples []float32, _ int) {
		notifier.FeedWaveform(samples)
	})

	transcriber := stt.NewWhisper(stt.WhisperConfig{
		APIKey: apiKey,
		Model:  cfg.WhisperModel,
	})

	machine := hotkey.NewMachine(cfg.Hotkey(), hotkey.DefaultDebounce)
	listener := hotkey.NewListener(machine)

	orch := app.New(recorder, transcriber, paste.New(), store, notifier, listener, app.Options{
		Language:      cfg.Language,
		AppendNewline: cfg.AppendNewline,
		PasteRetries:  cfg.PasteRetries,
		RetryDelay:    paste.DefaultRetryDelay,
		RestoreDelay:  paste.DefaultRestoreDelay,
	})
	machine.OnStart(orch.HandleSessionStart)
	machine.OnStop(orch.HandleSessionStop)

	listener.Start()
	notifier.ShowIdle()
	slog.Info("push-to-talk ready", "hotkey", cfg.Hotkey())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if tray != nil {
		tray.Run(func(quit <-chan struct{}) {
			select {
			case <-ctx.Done():
				tray.Quit()
			case <-quit:
			}
			orch.Shutdown()
		})
	} else {
		<-ctx.Done()
		orch.Shutdown()
	}

	// give the deferred clipboard restore a chance to fire
	time.Sleep(100 * time.Millisecond)
	slog.Info("stopped")
}
