package asr

import (
	"context"

	"speakerscribe/internal/transcript"
)

// Options carries the per-run transcription parameters forwarded to the
// speech-to-text engine. Word timestamps are always requested; the
// speaker merge cannot run without them.
type Options struct {
	// Language is an optional language hint; empty means auto-detect.
	Language string
	// Prompt is an optional initial prompt / hotword string.
	Prompt string
	// Translate selects the translate task instead of plain transcription.
	Translate bool
	// VADMinSilenceMS is the minimum silence duration for voice activity
	// detection, in milliseconds.
	VADMinSilenceMS int
}

// Result is the complete output of one transcription run
type Result struct {
	Language string               `json:"language"`
	Segments []transcript.Segment `json:"segments"`
}

// Transcriber converts a 16kHz mono WAV file into ordered transcript
// segments with word-level timestamps, plus the detected language.
type Transcriber interface {
	Transcribe(ctx context.Context, wavPath string, opts Options) (*Result, error)
}
