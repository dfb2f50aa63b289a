package diarize

import (
	"context"

	"speakerscribe/internal/audio"
)

// Diarizer segments decoded audio into speaker turns. numSpeakers is an
// optional hint for the expected number of distinct speakers; zero means the
// engine decides on its own.
type Diarizer interface {
	Diarize(ctx context.Context, waveform audio.Waveform, numSpeakers int) ([]Turn, error)
}
