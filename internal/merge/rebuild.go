package merge

import (
	"strings"

	"speakerscribe/internal/diarize"
	"speakerscribe/internal/transcript"
)

// RebuildSegments aligns every segment's words against the turn sequence and
// rebuilds per-segment speaker-labeled text. One Aligner cursor is shared
// across all segments, matching the global time order of the word stream.
// A segment whose words all fail alignment produces no output; a segment can
// therefore never emit an empty-but-labeled result.
func RebuildSegments(segments []transcript.Segment, turns []diarize.Turn) []LabeledSegment {
	aligner := NewAligner(turns)
	rebuilt := make([]LabeledSegment, 0, len(segments))

	for _, seg := range segments {
		var rawText strings.Builder
		var words []LabeledWord

		for _, w := range seg.Words {
			speaker, ok := aligner.Assign(w)
			if !ok {
				continue
			}

			// Concatenation uses the raw word text so the engine's own
			// spacing survives; the stored word is trimmed.
			rawText.WriteString(w.Text)
			w.Text = strings.TrimSpace(w.Text)
			words = append(words, LabeledWord{Word: w, Speaker: speaker})
		}

		if len(words) == 0 {
			continue
		}

		rebuilt = append(rebuilt, LabeledSegment{
			Start:      seg.Start,
			End:        seg.End,
			AvgLogProb: seg.AvgLogProb,
			Speaker:    segmentSpeaker(words),
			Text:       cleanText(rawText.String()),
			Words:      words,
		})
	}

	return rebuilt
}

// segmentSpeaker applies the labeling rule: a segment takes the speaker of
// its last retained word. When a turn change falls mid-segment the segment is
// not split; the final word's label wins. Callers guarantee words is
// non-empty.
func segmentSpeaker(words []LabeledWord) string {
	return words[len(words)-1].Speaker
}

// cleanText collapses doubled spaces left by raw word concatenation and trims
// the surrounding whitespace.
func cleanText(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "  ", " "))
}
