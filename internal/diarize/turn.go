package diarize

import "fmt"

// Turn represents one speaker turn produced by the diarization engine: a time
// interval during which a single labeled speaker is active. The engine
// guarantees that the full turn sequence is ordered non-decreasing by start.
type Turn struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// Validate checks if the Turn has valid values
func (t *Turn) Validate() error {
	if t.Speaker == "" {
		return fmt.Errorf("speaker cannot be empty")
	}

	if t.Start < 0 {
		return fmt.Errorf("start cannot be negative")
	}

	if t.End < t.Start {
		return fmt.Errorf("end must not be before start")
	}

	return nil
}

// CountSpeakers returns the number of distinct speaker labels in the turns.
func CountSpeakers(turns []Turn) int {
	seen := make(map[string]struct{}, len(turns))
	for _, t := range turns {
		seen[t.Speaker] = struct{}{}
	}
	return len(seen)
}
