package transcript

import "fmt"

// Segment represents one transcript segment as emitted by the speech-to-text
// engine: a time interval plus the ordered words it contains. The engine
// guarantees that words are ordered non-decreasing by start and that the
// segment boundaries match its first and last word; Validate re-checks the
// ordering but the boundaries are taken on trust.
type Segment struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	AvgLogProb float64 `json:"avg_logprob"`
	Words      []Word  `json:"words"`
}

// Validate checks if the Segment has valid values
func (s *Segment) Validate() error {
	if s.Start < 0 {
		return fmt.Errorf("start cannot be negative")
	}

	if s.End < s.Start {
		return fmt.Errorf("end must not be before start")
	}

	for i := range s.Words {
		if err := s.Words[i].Validate(); err != nil {
			return fmt.Errorf("word %d: %w", i, err)
		}
		if i > 0 && s.Words[i].Start < s.Words[i-1].Start {
			return fmt.Errorf("word %d starts before word %d", i, i-1)
		}
	}

	return nil
}

// FlattenWords returns all words across the given segments in segment order.
func FlattenWords(segments []Segment) []Word {
	var words []Word
	for _, s := range segments {
		words = append(words, s.Words...)
	}
	return words
}
