package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	codecDomain "github.com/allisson/serials/internal/codec/domain"
	sequenceDomain "github.com/allisson/serials/internal/sequence/domain"
	sequenceMocks "github.com/allisson/serials/internal/sequence/usecase/mocks"
)

func TestRunCreateSequence(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	params := CreateSequenceParams{
		Name:      "invoices",
		Alphabet:  "numeric",
		Length:    6,
		Exclusion: "first-zero",
		Prefix:    "INV-",
		NextValue: "100",
	}
	created := &sequenceDomain.Sequence{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         "invoices",
		AlphabetName: "numeric",
		Length:       6,
		Exclusion:    codecDomain.ExclusionFirstZero,
		Prefix:       "INV-",
		NextValue:    big.NewInt(100),
		CreatedAt:    time.Now().UTC(),
	}

	matchesInput := mock.MatchedBy(func(input *sequenceDomain.CreateSequenceInput) bool {
		return input.Name == "invoices" &&
			input.AlphabetName == "numeric" &&
			input.Length == 6 &&
			input.Exclusion == codecDomain.ExclusionFirstZero &&
			input.Tweak == nil &&
			input.Prefix == "INV-" &&
			input.NextValue.Cmp(big.NewInt(100)) == 0
	})

	t.Run("text", func(t *testing.T) {
		mockUseCase := &sequenceMocks.MockSequenceUseCase{}
		mockUseCase.On("Create", ctx, matchesInput).Return(created, nil)

		var out bytes.Buffer
		require.NoError(t, RunCreateSequence(ctx, mockUseCase, logger, &out, params, "text"))
		assert.Contains(t, out.String(), created.ID.String())
		assert.Contains(t, out.String(), "first-zero")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json", func(t *testing.T) {
		mockUseCase := &sequenceMocks.MockSequenceUseCase{}
		mockUseCase.On("Create", ctx, matchesInput).Return(created, nil)

		var out bytes.Buffer
		require.NoError(t, RunCreateSequence(ctx, mockUseCase, logger, &out, params, "json"))

		var got sequenceOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, "invoices", got.Name)
		assert.Equal(t, "100", got.NextValue)
		assert.False(t, got.Tweaked)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid tweak", func(t *testing.T) {
		mockUseCase := &sequenceMocks.MockSequenceUseCase{}
		p := params
		p.Tweak = "abc"

		err := RunCreateSequence(ctx, mockUseCase, logger, &bytes.Buffer{}, p, "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid tweak")
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("use case error", func(t *testing.T) {
		mockUseCase := &sequenceMocks.MockSequenceUseCase{}
		mockUseCase.On("Create", ctx, matchesInput).Return(nil, errors.New("conflict"))

		err := RunCreateSequence(ctx, mockUseCase, logger, &bytes.Buffer{}, params, "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create sequence")
		mockUseCase.AssertExpectations(t)
	})
}

func TestRunAllocate(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	allocation := &sequenceDomain.Allocation{
		SequenceName: "invoices",
		Range:        codecDomain.NewRange(big.NewInt(42), 3),
		Identifiers:  []string{"INV-000042", "INV-000043", "INV-000044"},
	}

	t.Run("text", func(t *testing.T) {
		mockUseCase := &sequenceMocks.MockSequenceUseCase{}
		mockUseCase.On("Allocate", ctx, "invoices", int64(3)).Return(allocation, nil)

		var out bytes.Buffer
		require.NoError(t, RunAllocate(ctx, mockUseCase, logger, &out, "invoices", 3, "text"))
		assert.Contains(t, out.String(), "INV-000042")
		assert.Contains(t, out.String(), "INV-000044")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json", func(t *testing.T) {
		mockUseCase := &sequenceMocks.MockSequenceUseCase{}
		mockUseCase.On("Allocate", ctx, "invoices", int64(3)).Return(allocation, nil)

		var out bytes.Buffer
		require.NoError(t, RunAllocate(ctx, mockUseCase, logger, &out, "invoices", 3, "json"))

		var got allocationOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, allocationOutput{
			Sequence:    "invoices",
			Start:       "42",
			End:         "45",
			Count:       3,
			Identifiers: allocation.Identifiers,
		}, got)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("use case error", func(t *testing.T) {
		mockUseCase := &sequenceMocks.MockSequenceUseCase{}
		mockUseCase.On("Allocate", ctx, "invoices", int64(3)).Return(nil, sequenceDomain.ErrSequenceExhausted)

		err := RunAllocate(ctx, mockUseCase, logger, &bytes.Buffer{}, "invoices", 3, "text")
		require.Error(t, err)
		assert.ErrorIs(t, err, sequenceDomain.ErrSequenceExhausted)
		mockUseCase.AssertExpectations(t)
	})
}

func TestFindClosest(t *testing.T) {
	candidates := []string{"alphabetic", "alphanumeric", "numeric"}

	assert.Equal(t, "numeric", findClosest("numerc", candidates))
	assert.Equal(t, "alphabetic", findClosest("alphabetc", candidates))
	assert.Empty(t, findClosest("xyz", candidates))
}
