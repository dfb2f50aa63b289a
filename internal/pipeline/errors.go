package pipeline

import "fmt"

// Stage names the pipeline phase in which a terminal failure occurred.
type Stage string

const (
	// StageAcquire covers fetching, decoding and converting the source audio.
	StageAcquire Stage = "acquire"
	// StageTranscribe covers the speech-to-text engine call.
	StageTranscribe Stage = "transcribe"
	// StageDiarize covers waveform loading and the diarization engine call.
	StageDiarize Stage = "diarize"
)

// StageError tags a terminal pipeline failure with the stage that raised it.
// There are no retries; the wrapped cause propagates unchanged.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
