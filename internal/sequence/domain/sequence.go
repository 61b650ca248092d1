package domain

import (
	"math/big"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	codecDomain "github.com/allisson/serials/internal/codec/domain"
	apperrors "github.com/allisson/serials/internal/errors"
)

// MaxPrefixLength bounds the literal prefix prepended to every identifier.
const MaxPrefixLength = 32

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)

// Sequence is a named, persistent counter rendered as fixed-length identifiers.
type Sequence struct {
	// ID is the unique identifier (UUIDv7).
	ID uuid.UUID

	// Name is the unique, URL-safe handle of the sequence (e.g., "invoices", "pallet-sscc").
	Name string

	// AlphabetName selects one of the predefined codec alphabets.
	AlphabetName string

	// Length is the number of characters of every identifier, prefix excluded.
	Length int

	// Exclusion removes leading-zero or all-numeric identifiers from the output.
	Exclusion codecDomain.Exclusion

	// Tweak keys the permutation that obscures the order of identifiers. Nil keeps
	// identifiers in counter order. Only the sealed form is persisted.
	Tweak *big.Int

	// SealedTweak is the tweak encrypted by the tweak keeper, nil when Tweak is nil.
	SealedTweak []byte

	// Prefix is prepended to every rendered identifier.
	Prefix string

	// NextValue is the first counter value the next allocation will hand out.
	NextValue *big.Int

	CreatedAt time.Time
	UpdatedAt time.Time

	// DeletedAt is the timestamp when this sequence was soft-deleted (nil if active).
	DeletedAt *time.Time
}

// Validate checks if the Sequence has valid field values.
func (s *Sequence) Validate() error {
	if !namePattern.MatchString(s.Name) {
		return ErrInvalidSequenceName
	}
	if s.Length < 1 || s.Length > codecDomain.MaxStringLength {
		return ErrInvalidLength
	}
	if err := s.Exclusion.Validate(); err != nil {
		return err
	}
	alphabet, err := codecDomain.AlphabetByName(s.AlphabetName)
	if err != nil {
		return err
	}
	if !alphabet.Supports(s.Exclusion) {
		return apperrors.NewKindError(codecDomain.KindExclusionNotSupported, apperrors.Params{
			"exclusion": s.Exclusion.String(),
			"alphabet":  alphabet.Name(),
		})
	}
	if s.Tweak != nil && s.Tweak.Sign() < 0 {
		return ErrInvalidTweak
	}
	if s.NextValue == nil || s.NextValue.Sign() < 0 {
		return ErrInvalidNextValue
	}
	if len(s.Prefix) > MaxPrefixLength || strings.IndexFunc(s.Prefix, unicode.IsControl) >= 0 {
		return ErrInvalidPrefix
	}
	return nil
}

// Tweaked reports whether identifiers are permuted.
func (s *Sequence) Tweaked() bool {
	return s.Tweak != nil || len(s.SealedTweak) > 0
}

// Allocation is a contiguous block of counter values reserved from a sequence together
// with their rendered identifiers.
type Allocation struct {
	SequenceName string
	Range        codecDomain.Range
	Identifiers  []string
}

// CreateSequenceInput carries the caller-supplied attributes of a new sequence.
type CreateSequenceInput struct {
	Name         string
	AlphabetName string
	Length       int
	Exclusion    codecDomain.Exclusion
	Tweak        *big.Int
	Prefix       string
	// NextValue is the first counter value to allocate. Nil starts at zero.
	NextValue *big.Int
}
