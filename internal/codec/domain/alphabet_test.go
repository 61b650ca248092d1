package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/serials/internal/codec/domain"
	apperrors "github.com/allisson/serials/internal/errors"
)

func requireKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()
	require.Error(t, err)
	got, ok := apperrors.KindOf(err)
	require.True(t, ok, "expected structured error, got %v", err)
	assert.Equal(t, kind, got)
}

func TestNewAlphabet(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		a, err := domain.NewAlphabet("hex", "0123456789abcdef", domain.ExclusionAllNumeric, domain.ExclusionFirstZero)

		require.NoError(t, err)
		assert.Equal(t, "hex", a.Name())
		assert.Equal(t, 16, a.Size())
		assert.Equal(t, 0, a.ZeroIndex())
		assert.Equal(t,
			[]domain.Exclusion{domain.ExclusionNone, domain.ExclusionFirstZero, domain.ExclusionAllNumeric},
			a.Exclusions(),
		)
		idx, ok := a.Index('f')
		assert.True(t, ok)
		assert.Equal(t, 15, idx)
		assert.Equal(t, 'a', a.Character(10))
	})

	t.Run("ZeroIndexCountsRunes", func(t *testing.T) {
		a, err := domain.NewAlphabet("unicode", "αβ0123456789", domain.ExclusionAllNumeric)

		require.NoError(t, err)
		assert.Equal(t, 2, a.ZeroIndex())
		assert.Equal(t, 12, a.Size())
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := domain.NewAlphabet("empty", "")
		requireKind(t, err, domain.KindEmptyAlphabet)
	})

	t.Run("DuplicateCharacter", func(t *testing.T) {
		_, err := domain.NewAlphabet("dup", "ABCA")
		requireKind(t, err, domain.KindDuplicateCharacter)
	})

	t.Run("FirstZeroRequiresZeroFirst", func(t *testing.T) {
		_, err := domain.NewAlphabet("bad", "A0123456789", domain.ExclusionFirstZero)
		requireKind(t, err, domain.KindFirstZeroFirstCharacter)
	})

	t.Run("AllNumericRequiresContiguousDigits", func(t *testing.T) {
		_, err := domain.NewAlphabet("bad", "01234A56789", domain.ExclusionAllNumeric)
		requireKind(t, err, domain.KindAllNumericCharacters)

		_, err = domain.NewAlphabet("bad", "9876543210", domain.ExclusionAllNumeric)
		requireKind(t, err, domain.KindAllNumericCharacters)
	})

	t.Run("InvalidExclusion", func(t *testing.T) {
		_, err := domain.NewAlphabet("bad", "01", domain.Exclusion(9))
		requireKind(t, err, domain.KindInvalidExclusion)
	})
}

func TestPredefinedAlphabets(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		firstZero  bool
		allNumeric bool
	}{
		{"numeric", 10, true, false},
		{"hexadecimal", 16, true, true},
		{"alphabetic", 26, false, false},
		{"alphanumeric", 36, true, true},
		{"gs1-ai-82", 82, false, true},
		{"gs1-ai-39", 39, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := domain.AlphabetByName(tt.name)

			require.NoError(t, err)
			assert.Equal(t, tt.size, a.Size())
			assert.True(t, a.Supports(domain.ExclusionNone))
			assert.Equal(t, tt.firstZero, a.Supports(domain.ExclusionFirstZero))
			assert.Equal(t, tt.allNumeric, a.Supports(domain.ExclusionAllNumeric))
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := domain.AlphabetByName("base64")
		requireKind(t, err, domain.KindUnknownAlphabet)
	})

	t.Run("Names", func(t *testing.T) {
		assert.Equal(t,
			[]string{"alphabetic", "alphanumeric", "gs1-ai-39", "gs1-ai-82", "hexadecimal", "numeric"},
			domain.AlphabetNames(),
		)
	})
}

func TestParseExclusion(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.Exclusion
	}{
		{"", domain.ExclusionNone},
		{"none", domain.ExclusionNone},
		{"first-zero", domain.ExclusionFirstZero},
		{"all-numeric", domain.ExclusionAllNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e, err := domain.ParseExclusion(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, e)
			if tt.input != "" {
				assert.Equal(t, tt.input, e.String())
			}
		})
	}

	t.Run("Invalid", func(t *testing.T) {
		_, err := domain.ParseExclusion("leading-zero")
		requireKind(t, err, domain.KindInvalidExclusion)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("UnknownString", func(t *testing.T) {
		assert.Equal(t, "unknown", domain.Exclusion(42).String())
	})
}
