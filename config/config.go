// Package config handles application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	appName        = "whisperflow"
	configFileName = "config.json"

	// Version identifies the current config schema. Files written by older
	// versions are rewritten on load.
	Version = 3
)

// Config represents the persisted application configuration.
type Config struct {
	Version       int     `json:"version"`
	MicDeviceName string  `json:"mic_device_name,omitempty"`
	SampleRate    int     `json:"sample_rate"`
	Language      string  `json:"language"`
	APIKeyEnv     string  `json:"api_key_env"`
	WhisperModel  string  `json:"api_whisper_model"`
	AppendNewline bool    `json:"append_newline"`
	InputGainDB   float64 `json:"input_gain_db"`
	TrayEnabled   bool    `json:"overlay_enabled"`
	PasteRetries  int     `json:"paste_retries"`

	HotkeyPrimary   string `json:"hotkey_modifier_primary"`
	HotkeySecondary string `json:"hotkey_modifier_secondary"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:         Version,
		SampleRate:      16000,
		Language:        "auto",
		APIKeyEnv:       "OPENAI_API_KEY",
		WhisperModel:    "whisper-1",
		AppendNewline:   true,
		InputGainDB:     0,
		TrayEnabled:     true,
		PasteRetries:    1,
		HotkeyPrimary:   "ctrl",
		HotkeySecondary: "win",
	}
}

// Load reads configuration from the config file. A missing or unreadable
// file yields the defaults; a file from an older schema version is rewritten
// in place.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, fmt.Errorf("get config path: %w", err)
	}
	return LoadFrom(path)
}

// LoadFrom is Load against an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("reading config failed, using defaults", "path", path, "error", err)
		}
		return Default(), nil
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		slog.Warn("config file is corrupt, using defaults", "path", path, "error", err)
		return Default(), nil
	}

	if cfg.Version != Version {
		cfg.Version = Version
		if err := cfg.SaveTo(path); err != nil {
			return nil, fmt.Errorf("rewrite config after version bump: %w", err)
		}
	}
	return cfg, nil
}

// Save persists the configuration to the default location.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return fmt.Errorf("get config path: %w", err)
	}
	return c.SaveTo(path)
}

// SaveTo persists the configuration to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Hotkey returns the configured push-to-talk combination.
func (c *Config) Hotkey() []string {
	return []string{c.HotkeyPrimary, c.HotkeySecondary}
}

// ResolveAPIKey looks up the transcription API key from the environment,
// loading a .env file from the working directory first when present.
func (c *Config) ResolveAPIKey() string {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Debug("loading .env failed", "error", err)
	}
	return os.Getenv(c.APIKeyEnv)
}

// HistoryPath returns the location of the transcription history database.
func HistoryPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appName, "history.db"), nil
}

func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appName, configFileName), nil
}
