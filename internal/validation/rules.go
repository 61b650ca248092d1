// Package validation provides custom validation rules for the application.
package validation

import (
	"math/big"
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	codecDomain "github.com/allisson/serials/internal/codec/domain"
	apperrors "github.com/allisson/serials/internal/errors"
)

var (
	// sequenceNameRegex matches lowercase, URL-safe sequence names
	sequenceNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)

	// decimalRegex matches a non-negative base-10 integer without sign or leading zeros
	decimalRegex = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// SequenceName validates lowercase names made of letters, digits, '-' and '_'
var SequenceName = validation.NewStringRuleWithError(
	func(s string) bool {
		return sequenceNameRegex.MatchString(s)
	},
	validation.NewError(
		"validation_sequence_name",
		"must start with a lowercase letter or digit and contain only a-z, 0-9, '-' or '_'",
	),
)

// Decimal validates a non-negative base-10 integer of arbitrary size
var Decimal = validation.NewStringRuleWithError(
	func(s string) bool {
		return decimalRegex.MatchString(s)
	},
	validation.NewError("validation_decimal", "must be a non-negative base-10 integer"),
)

// AlphabetName validates that the value names a predefined alphabet
var AlphabetName = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := codecDomain.AlphabetByName(s)
		return err == nil
	},
	validation.NewError(
		"validation_alphabet_name",
		"must be one of: "+strings.Join(codecDomain.AlphabetNames(), ", "),
	),
)

// ExclusionName validates that the value names an exclusion ("" means none)
var ExclusionName = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := codecDomain.ParseExclusion(s)
		return err == nil
	},
	validation.NewError(
		"validation_exclusion_name",
		"must be one of: "+strings.Join(codecDomain.ExclusionNames(), ", "),
	),
)

// ParseDecimal converts a string accepted by Decimal into a big integer. Empty input returns nil.
func ParseDecimal(s string) (*big.Int, bool) {
	if s == "" {
		return nil, true
	}
	if !decimalRegex.MatchString(s) {
		return nil, false
	}
	return new(big.Int).SetString(s, 10)
}
