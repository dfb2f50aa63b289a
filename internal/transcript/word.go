package transcript

import "fmt"

// Word represents a single transcribed token with word-level timestamps as
// produced by the speech-to-text engine. Times are in seconds from the start
// of the audio.
type Word struct {
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Text        string  `json:"word"`
	Probability float64 `json:"probability"`
}

// Validate checks if the Word has valid values
func (w *Word) Validate() error {
	if w.Start < 0 {
		return fmt.Errorf("start cannot be negative")
	}

	if w.End < w.Start {
		return fmt.Errorf("end must not be before start")
	}

	if w.Probability < 0.0 || w.Probability > 1.0 {
		return fmt.Errorf("probability must be between 0.0 and 1.0")
	}

	return nil
}
