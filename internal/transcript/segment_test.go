package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWord_Validate(t *testing.T) {
	// Arrange
	cases := []struct {
		name    string
		word    Word
		wantErr bool
	}{
		{"valid", Word{Start: 1.0, End: 1.5, Text: "hi", Probability: 0.9}, false},
		{"zero length", Word{Start: 1.0, End: 1.0, Text: "hi", Probability: 0.5}, false},
		{"negative start", Word{Start: -0.1, End: 1.0, Probability: 0.5}, true},
		{"end before start", Word{Start: 2.0, End: 1.0, Probability: 0.5}, true},
		{"probability too high", Word{Start: 0, End: 1, Probability: 1.5}, true},
		{"probability negative", Word{Start: 0, End: 1, Probability: -0.1}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			err := tc.word.Validate()

			// Assert
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSegment_Validate(t *testing.T) {
	// Arrange
	valid := Segment{
		Start: 0.0,
		End:   2.0,
		Words: []Word{
			{Start: 0.0, End: 1.0, Text: "a", Probability: 0.9},
			{Start: 1.0, End: 2.0, Text: "b", Probability: 0.8},
		},
	}
	outOfOrder := Segment{
		Start: 0.0,
		End:   2.0,
		Words: []Word{
			{Start: 1.0, End: 2.0, Text: "b", Probability: 0.8},
			{Start: 0.0, End: 1.0, Text: "a", Probability: 0.9},
		},
	}
	badWord := Segment{
		Start: 0.0,
		End:   2.0,
		Words: []Word{{Start: 1.0, End: 0.5, Text: "x", Probability: 0.9}},
	}

	// Act & Assert
	assert.NoError(t, valid.Validate())
	assert.Error(t, outOfOrder.Validate())
	assert.Error(t, badWord.Validate())
}

func TestSegment_ValidateEmptyWords(t *testing.T) {
	// Arrange
	segment := Segment{Start: 0.0, End: 1.0}

	// Act & Assert
	assert.NoError(t, segment.Validate())
}

func TestFlattenWords_PreservesSegmentOrder(t *testing.T) {
	// Arrange
	segments := []Segment{
		{Words: []Word{{Text: "a"}, {Text: "b"}}},
		{Words: nil},
		{Words: []Word{{Text: "c"}}},
	}

	// Act
	words := FlattenWords(segments)

	// Assert
	assert.Len(t, words, 3)
	assert.Equal(t, "a", words[0].Text)
	assert.Equal(t, "b", words[1].Text)
	assert.Equal(t, "c", words[2].Text)
}

func TestFlattenWords_Empty(t *testing.T) {
	// Act & Assert
	assert.Empty(t, FlattenWords(nil))
}
