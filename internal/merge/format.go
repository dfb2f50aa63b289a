package merge

import "fmt"

// Format selects which fields of a Group are populated in the output.
type Format int

const (
	// FormatBoth includes the rebuilt text and the word list.
	FormatBoth Format = iota
	// FormatSegmentsOnly includes the rebuilt text and omits the word list.
	FormatSegmentsOnly
	// FormatWordsOnly includes the word list and omits the rebuilt text.
	FormatWordsOnly
)

// ParseFormat converts a configured format name into a Format
func ParseFormat(s string) (Format, error) {
	switch s {
	case "both", "":
		return FormatBoth, nil
	case "segments_only":
		return FormatSegmentsOnly, nil
	case "words_only":
		return FormatWordsOnly, nil
	default:
		return FormatBoth, fmt.Errorf("unknown transcript output format: %q", s)
	}
}

// String returns the configuration name of the format
func (f Format) String() string {
	switch f {
	case FormatSegmentsOnly:
		return "segments_only"
	case FormatWordsOnly:
		return "words_only"
	default:
		return "both"
	}
}

// IncludesText reports whether groups carry their rebuilt text.
func (f Format) IncludesText() bool {
	return f == FormatBoth || f == FormatSegmentsOnly
}

// IncludesWords reports whether groups carry their word list.
func (f Format) IncludesWords() bool {
	return f == FormatBoth || f == FormatWordsOnly
}
