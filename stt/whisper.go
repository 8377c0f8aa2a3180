package stt

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/KRagula/WhisperFlow/langdetect"
)

// AutoLanguage asks the API to detect the spoken language itself.
const AutoLanguage = "auto"

// WhisperConfig holds settings for the Whisper API client.
type WhisperConfig struct {
	APIKey  string
	Model   string // defaults to "whisper-1"
	BaseURL string // optional, for OpenAI-compatible endpoints
}

// Whisper transcribes audio through the OpenAI Whisper API.
type Whisper struct {
	client openai.Client
	model  string
}

// NewWhisper creates a Whisper API transcriber.
func NewWhisper(cfg WhisperConfig) *Whisper {
	model := cfg.Model
	if model == "" {
		model = "whisper-1"
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Whisper{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Transcribe uploads a WAV payload and returns the transcribed text. An
// empty payload short-circuits to an empty result without a network call.
// When the API does not report the spoken language, it is detected from
// the returned text.
func (w *Whisper) Transcribe(ctx context.Context, payload []byte, language string) (Result, error) {
	if len(payload) == 0 {
		return Result{}, nil
	}

	params := openai.AudioTranscriptionNewParams{
		Model: openai.AudioModel(w.model),
		File:  openai.File(bytes.NewReader(payload), "audio.wav", "audio/wav"),
	}
	// The API rejects "auto"; omitting the field means auto-detect.
	if language != "" && language != AutoLanguage {
		params.Language = openai.String(language)
	}

	slog.Info("invoking whisper api", "model", w.model, "bytes", len(payload))
	resp, err := w.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return Result{}, &TranscriptionError{Err: err}
	}

	result := Result{Text: strings.TrimSpace(resp.Text)}
	if language != "" && language != AutoLanguage {
		result.Language = language
	} else if result.Text != "" {
		if code, _ := langdetect.Detect(result.Text); code != AutoLanguage {
			result.Language = code
		}
	}
	return result, nil
}
