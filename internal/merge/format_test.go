package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFormat_ValidNames(t *testing.T) {
	// Arrange
	cases := []struct {
		name     string
		expected Format
	}{
		{"both", FormatBoth},
		{"", FormatBoth},
		{"segments_only", FormatSegmentsOnly},
		{"words_only", FormatWordsOnly},
	}

	for _, tc := range cases {
		// Act
		format, err := ParseFormat(tc.name)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, tc.expected, format)
	}
}

func TestParseFormat_UnknownNameFails(t *testing.T) {
	// Act
	_, err := ParseFormat("everything")

	// Assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "everything")
}

func TestFormat_FieldSelection(t *testing.T) {
	// Assert
	assert.True(t, FormatBoth.IncludesText())
	assert.True(t, FormatBoth.IncludesWords())
	assert.True(t, FormatSegmentsOnly.IncludesText())
	assert.False(t, FormatSegmentsOnly.IncludesWords())
	assert.False(t, FormatWordsOnly.IncludesText())
	assert.True(t, FormatWordsOnly.IncludesWords())
}

func TestFormat_StringRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatBoth, FormatSegmentsOnly, FormatWordsOnly} {
		// Act
		parsed, err := ParseFormat(f.String())

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, f, parsed)
	}
}
