package domain

import (
	"slices"
	"sort"
	"strings"

	apperrors "github.com/allisson/serials/internal/errors"
)

// Alphabet is an ordered set of unique characters together with the exclusions
// (besides none) that codecs built on it may apply.
type Alphabet struct {
	name       string
	characters []rune
	indexes    map[rune]int
	exclusions []Exclusion
	zeroIndex  int
}

// NewAlphabet validates and builds an alphabet. Declaring ExclusionFirstZero requires the
// first character to be '0'; declaring ExclusionAllNumeric requires "0123456789" to appear
// contiguously and in ascending order.
func NewAlphabet(name, characters string, exclusions ...Exclusion) (*Alphabet, error) {
	chars := []rune(characters)
	if len(chars) == 0 {
		return nil, newError(KindEmptyAlphabet, apperrors.Params{"alphabet": name})
	}

	indexes := make(map[rune]int, len(chars))
	for i, c := range chars {
		if _, exists := indexes[c]; exists {
			return nil, newError(KindDuplicateCharacter, apperrors.Params{
				"alphabet":  name,
				"character": string(c),
			})
		}
		indexes[c] = i
	}

	a := &Alphabet{
		name:       name,
		characters: chars,
		indexes:    indexes,
		zeroIndex:  strings.Index(characters, numericCharacters),
	}
	if a.zeroIndex >= 0 {
		// strings.Index reports a byte offset.
		a.zeroIndex = len([]rune(characters[:a.zeroIndex]))
	}

	for _, e := range exclusions {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		switch e {
		case ExclusionNone:
			continue
		case ExclusionFirstZero:
			if chars[0] != '0' {
				return nil, newError(KindFirstZeroFirstCharacter, apperrors.Params{"alphabet": name})
			}
		case ExclusionAllNumeric:
			if a.zeroIndex < 0 {
				return nil, newError(KindAllNumericCharacters, apperrors.Params{"alphabet": name})
			}
		}
		if !slices.Contains(a.exclusions, e) {
			a.exclusions = append(a.exclusions, e)
		}
	}
	sort.Slice(a.exclusions, func(i, j int) bool { return a.exclusions[i] < a.exclusions[j] })

	return a, nil
}

// MustNewAlphabet is like NewAlphabet but panics on error. Intended for package-level presets.
func MustNewAlphabet(name, characters string, exclusions ...Exclusion) *Alphabet {
	a, err := NewAlphabet(name, characters, exclusions...)
	if err != nil {
		panic(err)
	}
	return a
}

// Name returns the alphabet name.
func (a *Alphabet) Name() string {
	return a.name
}

// Size returns the number of characters, which is the radix of the codec.
func (a *Alphabet) Size() int {
	return len(a.characters)
}

// Characters returns the alphabet as a string.
func (a *Alphabet) Characters() string {
	return string(a.characters)
}

// Character returns the character at index i.
func (a *Alphabet) Character(i int) rune {
	return a.characters[i]
}

// Index returns the position of c in the alphabet.
func (a *Alphabet) Index(c rune) (int, bool) {
	i, ok := a.indexes[c]
	return i, ok
}

// ZeroIndex returns the position of '0' within the contiguous numeric run, or -1.
func (a *Alphabet) ZeroIndex() int {
	return a.zeroIndex
}

// Exclusions returns the declared exclusions, always including ExclusionNone first.
func (a *Alphabet) Exclusions() []Exclusion {
	out := make([]Exclusion, 0, len(a.exclusions)+1)
	out = append(out, ExclusionNone)
	return append(out, a.exclusions...)
}

// Supports reports whether codecs over this alphabet may apply e.
func (a *Alphabet) Supports(e Exclusion) bool {
	return e == ExclusionNone || slices.Contains(a.exclusions, e)
}

// Predefined alphabets.
var (
	Numeric      = MustNewAlphabet("numeric", "0123456789", ExclusionFirstZero)
	Hexadecimal  = MustNewAlphabet("hexadecimal", "0123456789ABCDEF", ExclusionFirstZero, ExclusionAllNumeric)
	Alphabetic   = MustNewAlphabet("alphabetic", "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	Alphanumeric = MustNewAlphabet(
		"alphanumeric",
		"0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		ExclusionFirstZero,
		ExclusionAllNumeric,
	)
	// GS1AI82 is the GS1 application identifier character set 82.
	GS1AI82 = MustNewAlphabet(
		"gs1-ai-82",
		"!\"%&'()*+,-./0123456789:;<=>?ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz",
		ExclusionAllNumeric,
	)
	// GS1AI39 is the GS1 application identifier character set 39.
	GS1AI39 = MustNewAlphabet("gs1-ai-39", "#-/0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ", ExclusionAllNumeric)
)

var alphabetsByName = map[string]*Alphabet{
	Numeric.name:      Numeric,
	Hexadecimal.name:  Hexadecimal,
	Alphabetic.name:   Alphabetic,
	Alphanumeric.name: Alphanumeric,
	GS1AI82.name:      GS1AI82,
	GS1AI39.name:      GS1AI39,
}

// AlphabetByName looks up a predefined alphabet.
func AlphabetByName(name string) (*Alphabet, error) {
	a, ok := alphabetsByName[name]
	if !ok {
		return nil, newError(KindUnknownAlphabet, apperrors.Params{"alphabet": name})
	}
	return a, nil
}

// AlphabetNames returns the names of the predefined alphabets in sorted order.
func AlphabetNames() []string {
	names := make([]string, 0, len(alphabetsByName))
	for name := range alphabetsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
