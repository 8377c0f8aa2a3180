// Package stt provides the speech-to-text collaborator interface and the
// OpenAI Whisper API implementation.
package stt

import (
	"context"
	"fmt"
)

// Result is the immutable outcome of one transcription.
type Result struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"` // ISO 639-1 code, empty when unknown
}

// Transcriber converts an encoded audio payload to text. language is an
// ISO 639-1 code or "auto" for server-side detection.
type Transcriber interface {
	Transcribe(ctx context.Context, payload []byte, language string) (Result, error)
}

// TranscriptionError wraps any failure of the remote call. The session
// orchestrator treats all of them uniformly as "transcription failed".
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("stt: transcription failed: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }
