package domain

import (
	apperrors "github.com/allisson/serials/internal/errors"
)

// Exclusion restricts the strings a codec may produce for a given length.
type Exclusion int

const (
	// ExclusionNone admits every string over the alphabet.
	ExclusionNone Exclusion = iota
	// ExclusionFirstZero removes strings whose first character is the zero glyph.
	ExclusionFirstZero
	// ExclusionAllNumeric removes strings made only of the glyphs 0-9.
	ExclusionAllNumeric
)

var exclusionNames = map[Exclusion]string{
	ExclusionNone:       "none",
	ExclusionFirstZero:  "first-zero",
	ExclusionAllNumeric: "all-numeric",
}

// String returns the string representation of the exclusion.
func (e Exclusion) String() string {
	if name, ok := exclusionNames[e]; ok {
		return name
	}
	return "unknown"
}

// Validate checks if the exclusion is one of the known values.
func (e Exclusion) Validate() error {
	if _, ok := exclusionNames[e]; !ok {
		return newError(KindInvalidExclusion, apperrors.Params{"exclusion": int(e)})
	}
	return nil
}

// ExclusionNames lists the accepted textual exclusion names.
func ExclusionNames() []string {
	return []string{"none", "first-zero", "all-numeric"}
}

// ParseExclusion converts a textual exclusion name. The empty string means none.
func ParseExclusion(s string) (Exclusion, error) {
	switch s {
	case "", "none":
		return ExclusionNone, nil
	case "first-zero":
		return ExclusionFirstZero, nil
	case "all-numeric":
		return ExclusionAllNumeric, nil
	default:
		return ExclusionNone, newError(KindInvalidExclusion, apperrors.Params{"exclusion": s})
	}
}
