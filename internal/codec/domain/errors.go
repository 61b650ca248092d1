package domain

import (
	apperrors "github.com/allisson/serials/internal/errors"
)

// Structured error kinds reported by the codec. Parameters are documented next to each kind.
const (
	// KindDomainNotPositive: domain.
	KindDomainNotPositive apperrors.Kind = "domain_must_be_greater_than_zero"
	// KindTweakNegative: tweak.
	KindTweakNegative apperrors.Kind = "tweak_must_be_greater_than_or_equal_to_zero"
	// KindValueNegative: value.
	KindValueNegative apperrors.Kind = "value_must_be_greater_than_or_equal_to_zero"
	// KindValueTooLarge: value, domain.
	KindValueTooLarge apperrors.Kind = "value_must_be_less_than_domain"
	// KindMinimumValueNegative: minimum_value.
	KindMinimumValueNegative apperrors.Kind = "minimum_value_must_be_greater_than_or_equal_to_zero"
	// KindMaximumValueTooLarge: maximum_value, domain.
	KindMaximumValueTooLarge apperrors.Kind = "maximum_value_must_be_less_than_domain"

	// KindLengthTooShort: length, minimum_length, component (optional).
	KindLengthTooShort apperrors.Kind = "length_must_be_greater_than_or_equal_to"
	// KindLengthTooLong: length, maximum_length, component (optional).
	KindLengthTooLong apperrors.Kind = "length_must_be_less_than_or_equal_to"
	// KindLengthMismatch: length, exact_length, component (optional).
	KindLengthMismatch apperrors.Kind = "length_must_be_equal_to"
	// KindInvalidCharacter: character, position (1-based), component (optional).
	KindInvalidCharacter apperrors.Kind = "invalid_character"
	// KindExclusionNotSupported: exclusion, alphabet.
	KindExclusionNotSupported apperrors.Kind = "exclusion_not_supported"
	// KindInvalidExclusion: exclusion.
	KindInvalidExclusion apperrors.Kind = "invalid_exclusion"
	// KindFirstZero: component (optional).
	KindFirstZero apperrors.Kind = "string_must_not_start_with_zero"
	// KindAllNumeric: component (optional).
	KindAllNumeric apperrors.Kind = "string_must_not_be_all_numeric"

	// KindFirstZeroFirstCharacter: alphabet.
	KindFirstZeroFirstCharacter apperrors.Kind = "first_zero_requires_zero_first_character"
	// KindAllNumericCharacters: alphabet.
	KindAllNumericCharacters apperrors.Kind = "all_numeric_requires_contiguous_numeric_characters"
	// KindDuplicateCharacter: character, alphabet.
	KindDuplicateCharacter apperrors.Kind = "duplicate_character"
	// KindEmptyAlphabet: alphabet.
	KindEmptyAlphabet apperrors.Kind = "alphabet_must_not_be_empty"
	// KindUnknownAlphabet: alphabet.
	KindUnknownAlphabet apperrors.Kind = "unknown_alphabet"
)

func newError(kind apperrors.Kind, params apperrors.Params) error {
	return apperrors.NewKindError(kind, params)
}
