package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speakerscribe/internal/diarize"
	"speakerscribe/internal/transcript"
)

func TestRebuildSegments_SingleSpeakerSegment(t *testing.T) {
	// Arrange
	turns := []diarize.Turn{{Start: 0, End: 5, Speaker: "A"}}
	segments := []transcript.Segment{
		{
			Start:      0.0,
			End:        2.0,
			AvgLogProb: -0.25,
			Words: []transcript.Word{
				{Start: 0.0, End: 1.0, Text: " hi", Probability: 0.9},
				{Start: 1.0, End: 2.0, Text: " there", Probability: 0.8},
			},
		},
	}

	// Act
	rebuilt := RebuildSegments(segments, turns)

	// Assert
	require.Len(t, rebuilt, 1)
	assert.Equal(t, "A", rebuilt[0].Speaker)
	assert.Equal(t, "hi there", rebuilt[0].Text)
	assert.Equal(t, 0.0, rebuilt[0].Start)
	assert.Equal(t, 2.0, rebuilt[0].End)
	assert.Equal(t, -0.25, rebuilt[0].AvgLogProb)
	require.Len(t, rebuilt[0].Words, 2)
	assert.Equal(t, "hi", rebuilt[0].Words[0].Text)
	assert.Equal(t, "there", rebuilt[0].Words[1].Text)
}

func TestRebuildSegments_SpeakerIsLastRetainedWords(t *testing.T) {
	// Arrange: the turn changes mid-segment; the segment is not split and
	// takes the label of its final retained word
	turns := []diarize.Turn{
		{Start: 0, End: 1.2, Speaker: "A"},
		{Start: 1.2, End: 5, Speaker: "B"},
	}
	segments := []transcript.Segment{
		{
			Start: 0.0,
			End:   3.0,
			Words: []transcript.Word{
				{Start: 0.0, End: 1.0, Text: " first"},
				{Start: 2.0, End: 3.0, Text: " second"},
			},
		},
	}

	// Act
	rebuilt := RebuildSegments(segments, turns)

	// Assert
	require.Len(t, rebuilt, 1)
	assert.Equal(t, "B", rebuilt[0].Speaker)
	assert.Equal(t, "A", rebuilt[0].Words[0].Speaker)
	assert.Equal(t, "B", rebuilt[0].Words[1].Speaker)
}

func TestRebuildSegments_DropsSegmentWithNoRetainedWords(t *testing.T) {
	// Arrange: the middle segment falls into a diarization gap
	turns := []diarize.Turn{
		{Start: 0, End: 2, Speaker: "A"},
		{Start: 10, End: 12, Speaker: "B"},
	}
	segments := []transcript.Segment{
		{Start: 0, End: 1.5, Words: []transcript.Word{{Start: 0.5, End: 1.0, Text: " kept"}}},
		{Start: 5, End: 6, Words: []transcript.Word{{Start: 5.0, End: 6.0, Text: " orphan"}}},
		{Start: 10, End: 11, Words: []transcript.Word{{Start: 10.2, End: 10.8, Text: " also"}}},
	}

	// Act
	rebuilt := RebuildSegments(segments, turns)

	// Assert
	require.Len(t, rebuilt, 2)
	assert.Equal(t, "kept", rebuilt[0].Text)
	assert.Equal(t, "also", rebuilt[1].Text)
}

func TestRebuildSegments_CollapsesDoubledSpaces(t *testing.T) {
	// Arrange: raw word texts carry their own leading spaces; doubled runs
	// from concatenation are collapsed once the whole string is built
	turns := []diarize.Turn{{Start: 0, End: 10, Speaker: "A"}}
	segments := []transcript.Segment{
		{
			Start: 0,
			End:   3,
			Words: []transcript.Word{
				{Start: 0.0, End: 1.0, Text: " one "},
				{Start: 1.0, End: 2.0, Text: " two"},
			},
		},
	}

	// Act
	rebuilt := RebuildSegments(segments, turns)

	// Assert
	require.Len(t, rebuilt, 1)
	assert.Equal(t, "one two", rebuilt[0].Text)
}

func TestRebuildSegments_CursorSharedAcrossSegments(t *testing.T) {
	// Arrange: the second segment's words must continue the scan where the
	// first segment left it, not restart from the first turn
	turns := []diarize.Turn{
		{Start: 0, End: 2, Speaker: "A"},
		{Start: 2, End: 4, Speaker: "B"},
		{Start: 4, End: 6, Speaker: "C"},
	}
	segments := []transcript.Segment{
		{Start: 0, End: 1.5, Words: []transcript.Word{{Start: 0.5, End: 1.0, Text: " s1"}}},
		{Start: 2.2, End: 3.0, Words: []transcript.Word{{Start: 2.3, End: 2.9, Text: " s2"}}},
		{Start: 4.5, End: 5.5, Words: []transcript.Word{{Start: 4.6, End: 5.2, Text: " s3"}}},
	}

	// Act
	rebuilt := RebuildSegments(segments, turns)

	// Assert
	require.Len(t, rebuilt, 3)
	assert.Equal(t, "A", rebuilt[0].Speaker)
	assert.Equal(t, "B", rebuilt[1].Speaker)
	assert.Equal(t, "C", rebuilt[2].Speaker)
}

func TestRebuildSegments_BoundariesCopiedNotRecomputed(t *testing.T) {
	// Arrange: the first word is dropped, but the segment keeps its source
	// start rather than shrinking to the surviving words
	turns := []diarize.Turn{{Start: 2, End: 5, Speaker: "A"}}
	segments := []transcript.Segment{
		{
			Start:      0.0,
			End:        4.0,
			AvgLogProb: -0.5,
			Words: []transcript.Word{
				{Start: 0.0, End: 0.5, Text: " dropped"},
				{Start: 2.5, End: 3.5, Text: " kept"},
			},
		},
	}

	// Act
	rebuilt := RebuildSegments(segments, turns)

	// Assert
	require.Len(t, rebuilt, 1)
	assert.Equal(t, 0.0, rebuilt[0].Start)
	assert.Equal(t, 4.0, rebuilt[0].End)
	assert.Equal(t, -0.5, rebuilt[0].AvgLogProb)
	require.Len(t, rebuilt[0].Words, 1)
	assert.Equal(t, "kept", rebuilt[0].Words[0].Text)
}

func TestRebuildSegments_EmptyInputs(t *testing.T) {
	// Act
	noSegments := RebuildSegments(nil, []diarize.Turn{{Start: 0, End: 1, Speaker: "A"}})
	noTurns := RebuildSegments([]transcript.Segment{
		{Start: 0, End: 1, Words: []transcript.Word{{Start: 0, End: 1, Text: "x"}}},
	}, nil)

	// Assert
	assert.Empty(t, noSegments)
	assert.Empty(t, noTurns)
}
