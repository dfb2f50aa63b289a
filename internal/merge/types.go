package merge

import "speakerscribe/internal/transcript"

// LabeledWord is a transcribed word with its resolved speaker. Words whose
// widened window overlaps no diarization turn are never materialized as
// LabeledWords; they are dropped from the output entirely.
type LabeledWord struct {
	transcript.Word
	Speaker string `json:"speaker"`
}

// LabeledSegment is one source transcript segment rebuilt from its retained
// labeled words. Start, End and AvgLogProb are copied from the source segment
// unchanged; Speaker is the label of the segment's last retained word.
type LabeledSegment struct {
	Start      float64
	End        float64
	AvgLogProb float64
	Speaker    string
	Text       string
	Words      []LabeledWord
}

// Group is the final output unit: one or more consecutive same-speaker
// labeled segments coalesced together. Text and Words are populated according
// to the active output format.
type Group struct {
	Start      float64       `json:"start"`
	End        float64       `json:"end"`
	AvgLogProb float64       `json:"avg_logprob"`
	Speaker    string        `json:"speaker"`
	Text       string        `json:"text,omitempty"`
	Words      []LabeledWord `json:"words,omitempty"`
}
