package merge

// GapThreshold is the maximum silence, in seconds, between two same-speaker
// segments that still coalesce into one group.
const GapThreshold = 2.0

// GroupSegments coalesces consecutive same-speaker segments whose gap does
// not exceed GapThreshold into single groups. With grouping disabled every
// segment becomes its own group. The format controls which fields of each
// group are populated; fields the format excludes are never built. An empty
// input yields an empty output.
func GroupSegments(segments []LabeledSegment, groupSegments bool, format Format) []Group {
	groups := make([]Group, 0, len(segments))
	if len(segments) == 0 {
		return groups
	}

	current := newGroup(segments[0], format)

	for i := 1; i < len(segments); i++ {
		seg := segments[i]
		prev := segments[i-1]
		gap := seg.Start - prev.End

		if groupSegments && seg.Speaker == prev.Speaker && gap <= GapThreshold {
			current.End = seg.End
			if format.IncludesText() {
				current.Text += " " + seg.Text
			}
			if format.IncludesWords() {
				current.Words = append(current.Words, seg.Words...)
			}
			continue
		}

		groups = append(groups, current)
		current = newGroup(seg, format)
	}

	// The final group is always still open.
	return append(groups, current)
}

// newGroup seeds a group from a single segment, populating only the fields
// the format calls for.
func newGroup(seg LabeledSegment, format Format) Group {
	g := Group{
		Start:      seg.Start,
		End:        seg.End,
		AvgLogProb: seg.AvgLogProb,
		Speaker:    seg.Speaker,
	}
	if format.IncludesText() {
		g.Text = seg.Text
	}
	if format.IncludesWords() {
		g.Words = append(g.Words, seg.Words...)
	}
	return g
}
