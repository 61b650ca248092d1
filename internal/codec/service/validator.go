package service

import (
	"slices"

	"github.com/allisson/serials/internal/codec/domain"
	apperrors "github.com/allisson/serials/internal/errors"
)

// ValidateOptions narrows what Validate accepts. Nil length bounds are not checked.
type ValidateOptions struct {
	MinimumLength *int
	MaximumLength *int
	ExactLength   *int
	Exclusion     domain.Exclusion
	// Component names the part of a composite string being validated; it is copied
	// into error params when set.
	Component string
	// Offset is added to reported character positions when validating a substring.
	Offset int
}

// Length returns a pointer to n, for use in ValidateOptions.
func Length(n int) *int {
	return &n
}

// Validator checks strings against an alphabet and its exclusions.
type Validator struct {
	alphabet   *domain.Alphabet
	exclusions []domain.Exclusion
}

// NewValidator creates a validator over alphabet. When exclusions are given they restrict
// the supported set, and each must be declared by the alphabet.
func NewValidator(alphabet *domain.Alphabet, exclusions ...domain.Exclusion) (*Validator, error) {
	v := &Validator{alphabet: alphabet}
	if len(exclusions) == 0 {
		v.exclusions = alphabet.Exclusions()
		return v, nil
	}

	v.exclusions = []domain.Exclusion{domain.ExclusionNone}
	for _, e := range exclusions {
		if !alphabet.Supports(e) {
			return nil, exclusionNotSupported(alphabet, e)
		}
		if !slices.Contains(v.exclusions, e) {
			v.exclusions = append(v.exclusions, e)
		}
	}
	return v, nil
}

// Alphabet returns the underlying alphabet.
func (v *Validator) Alphabet() *domain.Alphabet {
	return v.alphabet
}

// Size returns the radix.
func (v *Validator) Size() int {
	return v.alphabet.Size()
}

// Character returns the character at index i.
func (v *Validator) Character(i int) rune {
	return v.alphabet.Character(i)
}

// CharacterIndex returns the index of c, or -1 if c is not in the alphabet.
func (v *Validator) CharacterIndex(c rune) int {
	if i, ok := v.alphabet.Index(c); ok {
		return i
	}
	return -1
}

// CharacterIndexes maps each character of s to its index. It fails on the first
// character outside the alphabet.
func (v *Validator) CharacterIndexes(s string) ([]int, error) {
	return v.indexes([]rune(s), ValidateOptions{})
}

// SupportsExclusion reports whether e may be requested.
func (v *Validator) SupportsExclusion(e domain.Exclusion) bool {
	return slices.Contains(v.exclusions, e)
}

// ValidateExclusion fails when e is not supported.
func (v *Validator) ValidateExclusion(e domain.Exclusion) error {
	if !v.SupportsExclusion(e) {
		return exclusionNotSupported(v.alphabet, e)
	}
	return nil
}

// Validate checks length bounds, alphabet membership and the requested exclusion.
func (v *Validator) Validate(s string, opts ValidateOptions) error {
	if err := v.ValidateExclusion(opts.Exclusion); err != nil {
		return err
	}

	runes := []rune(s)
	if err := validateLength(len(runes), opts); err != nil {
		return err
	}

	if _, err := v.indexes(runes, opts); err != nil {
		return err
	}

	switch opts.Exclusion {
	case domain.ExclusionFirstZero:
		if len(runes) > 0 && runes[0] == '0' {
			return firstZeroError(opts, runes[0])
		}
	case domain.ExclusionAllNumeric:
		if !containsNonNumeric(runes) {
			return apperrors.NewKindError(domain.KindAllNumeric, componentParams(opts, nil))
		}
	}
	return nil
}

func (v *Validator) indexes(runes []rune, opts ValidateOptions) ([]int, error) {
	out := make([]int, len(runes))
	for i, c := range runes {
		idx, ok := v.alphabet.Index(c)
		if !ok {
			return nil, apperrors.NewKindError(domain.KindInvalidCharacter, componentParams(opts, apperrors.Params{
				"character": string(c),
				"position":  i + 1 + opts.Offset,
			}))
		}
		out[i] = idx
	}
	return out, nil
}

func validateLength(n int, opts ValidateOptions) error {
	if opts.ExactLength != nil && n != *opts.ExactLength {
		return apperrors.NewKindError(domain.KindLengthMismatch, componentParams(opts, apperrors.Params{
			"length":       n,
			"exact_length": *opts.ExactLength,
		}))
	}
	if opts.MinimumLength != nil && n < *opts.MinimumLength {
		return apperrors.NewKindError(domain.KindLengthTooShort, componentParams(opts, apperrors.Params{
			"length":         n,
			"minimum_length": *opts.MinimumLength,
		}))
	}
	if opts.MaximumLength != nil && n > *opts.MaximumLength {
		return apperrors.NewKindError(domain.KindLengthTooLong, componentParams(opts, apperrors.Params{
			"length":         n,
			"maximum_length": *opts.MaximumLength,
		}))
	}
	return nil
}

// containsNonNumeric reports whether any rune falls outside 0-9. An empty string has none.
func containsNonNumeric(runes []rune) bool {
	for _, c := range runes {
		if c < '0' || c > '9' {
			return true
		}
	}
	return false
}

func componentParams(opts ValidateOptions, params apperrors.Params) apperrors.Params {
	if params == nil {
		params = apperrors.Params{}
	}
	if opts.Component != "" {
		params["component"] = opts.Component
	}
	return params
}

func firstZeroError(opts ValidateOptions, c rune) error {
	return apperrors.NewKindError(domain.KindFirstZero, componentParams(opts, apperrors.Params{
		"character": string(c),
		"position":  1 + opts.Offset,
	}))
}

func exclusionNotSupported(alphabet *domain.Alphabet, e domain.Exclusion) error {
	return apperrors.NewKindError(domain.KindExclusionNotSupported, apperrors.Params{
		"exclusion": e.String(),
		"alphabet":  alphabet.Name(),
	})
}
