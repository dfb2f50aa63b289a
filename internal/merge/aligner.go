package merge

import (
	"strings"

	"speakerscribe/internal/diarize"
	"speakerscribe/internal/transcript"
)

// margin widens each word's interval on both sides before checking overlap
// with a turn, absorbing small boundary disagreements between the two engines.
const margin = 0.1

// Aligner assigns speaker labels to a time-ordered word stream by scanning
// the turn sequence with a single forward cursor. The cursor never rewinds,
// so the whole alignment is amortized O(words + turns). The word stream must
// be globally time-ordered across segments; if it is not, overlap behind the
// cursor is missed.
type Aligner struct {
	turns []diarize.Turn
	idx   int
}

// NewAligner creates an Aligner over the given turn sequence, which must be
// ordered non-decreasing by start.
func NewAligner(turns []diarize.Turn) *Aligner {
	return &Aligner{turns: turns}
}

// Assign resolves the speaker for the next word in the stream. It returns
// false when no turn overlaps the word's widened window; such words are
// dropped by the caller. Only the turn at the cursor is ever considered:
// first match wins, and a turn fully behind the widened window is discarded
// because later words start no earlier.
func (a *Aligner) Assign(w transcript.Word) (string, bool) {
	windowStart := w.Start - margin
	windowEnd := w.End + margin

	for a.idx < len(a.turns) {
		turn := a.turns[a.idx]

		if turn.End < windowStart {
			// Turn ended before the window; it cannot match this word or any
			// later one.
			a.idx++
			continue
		}

		if turn.Start <= windowEnd {
			if turn.End <= windowEnd {
				// Turn is used up by this word and cannot extend to the next.
				a.idx++
			}
			return turn.Speaker, true
		}

		// Turn starts after the window; keep it for a later word.
		return "", false
	}

	return "", false
}

// AlignWords labels a flattened, time-ordered word stream against the turn
// sequence. Words with no overlapping turn are dropped; surviving words keep
// their input order with surrounding whitespace trimmed.
func AlignWords(words []transcript.Word, turns []diarize.Turn) []LabeledWord {
	aligner := NewAligner(turns)
	labeled := make([]LabeledWord, 0, len(words))

	for _, w := range words {
		speaker, ok := aligner.Assign(w)
		if !ok {
			continue
		}
		w.Text = strings.TrimSpace(w.Text)
		labeled = append(labeled, LabeledWord{Word: w, Speaker: speaker})
	}

	return labeled
}
