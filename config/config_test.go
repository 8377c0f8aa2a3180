package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", cfg.SampleRate)
	}
	if cfg.Language != "auto" {
		t.Errorf("Language = %q, want %q", cfg.Language, "auto")
	}
	if !cfg.AppendNewline {
		t.Error("AppendNewline = false, want true")
	}
	if got := cfg.Hotkey(); len(got) != 2 || got[0] != "ctrl" || got[1] != "win" {
		t.Errorf("Hotkey = %v, want [ctrl win]", got)
	}
}

func TestLoadFromCorruptFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.WhisperModel != "whisper-1" {
		t.Errorf("WhisperModel = %q, want default", cfg.WhisperModel)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.MicDeviceName = "USB Microphone"
	cfg.InputGainDB = 6.5
	cfg.PasteRetries = 3
	cfg.Language = "de"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, cfg)
	}
}

func TestLoadFromOldVersionRewritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	old := Default()
	old.Version = 1
	old.Language = "es"
	if err := old.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Version != Version {
		t.Errorf("Version = %d, want %d", cfg.Version, Version)
	}
	if cfg.Language != "es" {
		t.Errorf("Language = %q, settings should survive version bump", cfg.Language)
	}

	// the file on disk carries the new version
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var onDisk map[string]any
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatal(err)
	}
	if v, _ := onDisk["version"].(float64); int(v) != Version {
		t.Errorf("on-disk version = %v, want %d", onDisk["version"], Version)
	}
}

func TestResolveAPIKey(t *testing.T) {
	cfg := Default()
	cfg.APIKeyEnv = "WHISPERFLOW_TEST_KEY"
	t.Setenv("WHISPERFLOW_TEST_KEY", "sk-test")
	if got := cfg.ResolveAPIKey(); got != "sk-test" {
		t.Errorf("ResolveAPIKey = %q, want %q", got, "sk-test")
	}
}
