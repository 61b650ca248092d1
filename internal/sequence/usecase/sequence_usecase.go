package usecase

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	codecDomain "github.com/allisson/serials/internal/codec/domain"
	codecService "github.com/allisson/serials/internal/codec/service"
	"github.com/allisson/serials/internal/database"
	apperrors "github.com/allisson/serials/internal/errors"
	sequenceDomain "github.com/allisson/serials/internal/sequence/domain"
	sequenceService "github.com/allisson/serials/internal/sequence/service"
)

// sequenceUseCase implements the SequenceUseCase interface.
type sequenceUseCase struct {
	txManager     database.TxManager
	sequenceRepo  SequenceRepository
	tweakKeeper   sequenceService.TweakKeeper
	codecs        *sequenceService.CodecFactory
	maxAllocation int64
}

// Create validates the input, seals the tweak and persists a new sequence.
func (s *sequenceUseCase) Create(
	ctx context.Context,
	input *sequenceDomain.CreateSequenceInput,
) (*sequenceDomain.Sequence, error) {
	nextValue := input.NextValue
	if nextValue == nil {
		nextValue = new(big.Int)
	}

	now := time.Now().UTC()
	seq := &sequenceDomain.Sequence{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         input.Name,
		AlphabetName: input.AlphabetName,
		Length:       input.Length,
		Exclusion:    input.Exclusion,
		Tweak:        input.Tweak,
		Prefix:       input.Prefix,
		NextValue:    new(big.Int).Set(nextValue),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := seq.Validate(); err != nil {
		return nil, err
	}

	creator, err := s.codecs.Creator(seq.AlphabetName)
	if err != nil {
		return nil, err
	}
	capacity, err := creator.Domain(seq.Length, seq.Exclusion)
	if err != nil {
		return nil, err
	}
	if seq.NextValue.Cmp(capacity) > 0 {
		return nil, apperrors.Wrapf(sequenceDomain.ErrInvalidNextValue, "next value exceeds capacity %s", capacity)
	}

	sealed, err := s.tweakKeeper.Seal(ctx, seq.Tweak)
	if err != nil {
		return nil, err
	}
	seq.SealedTweak = sealed

	if err := s.sequenceRepo.Create(ctx, seq); err != nil {
		return nil, err
	}
	return seq, nil
}

// Get retrieves a sequence by name. The tweak stays sealed.
func (s *sequenceUseCase) Get(ctx context.Context, name string) (*sequenceDomain.Sequence, error) {
	return s.sequenceRepo.GetByName(ctx, name)
}

// List retrieves sequences ordered by name with pagination.
func (s *sequenceUseCase) List(ctx context.Context, offset, limit int) ([]*sequenceDomain.Sequence, error) {
	return s.sequenceRepo.List(ctx, offset, limit)
}

// Delete soft-deletes a sequence by name.
func (s *sequenceUseCase) Delete(ctx context.Context, name string) error {
	seq, err := s.sequenceRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	return s.sequenceRepo.Delete(ctx, seq.ID)
}

// Allocate locks the sequence row, reserves [next, next+count) and renders every
// identifier of the block before committing the new counter value.
func (s *sequenceUseCase) Allocate(
	ctx context.Context,
	name string,
	count int64,
) (*sequenceDomain.Allocation, error) {
	if count <= 0 {
		return nil, sequenceDomain.ErrInvalidAllocationCount
	}
	if count > s.maxAllocation {
		return nil, apperrors.Wrapf(sequenceDomain.ErrAllocationTooLarge, "maximum is %d", s.maxAllocation)
	}

	var allocation *sequenceDomain.Allocation
	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		seq, err := s.sequenceRepo.GetByNameForUpdate(txCtx, name)
		if err != nil {
			return err
		}

		creator, opts, err := s.codec(txCtx, seq)
		if err != nil {
			return err
		}
		capacity, err := creator.Domain(seq.Length, seq.Exclusion)
		if err != nil {
			return err
		}

		r := codecDomain.NewRange(seq.NextValue, count)
		if r.End().Cmp(capacity) > 0 {
			return sequenceDomain.ErrSequenceExhausted
		}

		identifiers, err := creator.CreateRange(seq.Length, r, opts)
		if err != nil {
			return err
		}
		rendered := make([]string, 0, count)
		for _, identifier := range identifiers {
			rendered = append(rendered, identifier)
		}

		if err := s.sequenceRepo.UpdateNextValue(txCtx, seq.ID, r.End()); err != nil {
			return err
		}

		allocation = &sequenceDomain.Allocation{
			SequenceName: seq.Name,
			Range:        r,
			Identifiers:  rendered,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return allocation, nil
}

// Encode renders value with the sequence's codec settings.
func (s *sequenceUseCase) Encode(ctx context.Context, name string, value *big.Int) (string, error) {
	seq, err := s.sequenceRepo.GetByName(ctx, name)
	if err != nil {
		return "", err
	}
	creator, opts, err := s.codec(ctx, seq)
	if err != nil {
		return "", err
	}
	return creator.Create(seq.Length, value, opts)
}

// Decode strips the prefix, validates the remaining characters and reverses the codec.
func (s *sequenceUseCase) Decode(ctx context.Context, name, identifier string) (*big.Int, error) {
	seq, err := s.sequenceRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	creator, opts, err := s.codec(ctx, seq)
	if err != nil {
		return nil, err
	}
	body, err := validateIdentifier(creator, seq, identifier)
	if err != nil {
		return nil, err
	}
	return creator.ValueFor(body, opts)
}

// Validate reports whether identifier is well formed for the sequence.
func (s *sequenceUseCase) Validate(ctx context.Context, name, identifier string) error {
	seq, err := s.sequenceRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	creator, err := s.codecs.Creator(seq.AlphabetName)
	if err != nil {
		return err
	}
	_, err = validateIdentifier(creator, seq, identifier)
	return err
}

// codec resolves the shared creator of the sequence's alphabet and unseals its tweak.
func (s *sequenceUseCase) codec(
	ctx context.Context,
	seq *sequenceDomain.Sequence,
) (*codecService.Creator, codecService.CreateOptions, error) {
	creator, err := s.codecs.Creator(seq.AlphabetName)
	if err != nil {
		return nil, codecService.CreateOptions{}, err
	}

	tweak := seq.Tweak
	if tweak == nil && len(seq.SealedTweak) > 0 {
		tweak, err = s.tweakKeeper.Unseal(ctx, seq.SealedTweak)
		if err != nil {
			return nil, codecService.CreateOptions{}, err
		}
	}

	return creator, codecService.CreateOptions{
		Exclusion: seq.Exclusion,
		Tweak:     tweak,
		Finish:    prefixer(seq.Prefix),
	}, nil
}

func validateIdentifier(creator *codecService.Creator, seq *sequenceDomain.Sequence, identifier string) (string, error) {
	body, ok := strings.CutPrefix(identifier, seq.Prefix)
	if !ok {
		return "", sequenceDomain.ErrPrefixMismatch
	}
	err := creator.Validate(body, codecService.ValidateOptions{
		ExactLength: codecService.Length(seq.Length),
		Exclusion:   seq.Exclusion,
		Component:   "identifier",
		Offset:      len([]rune(seq.Prefix)),
	})
	if err != nil {
		return "", err
	}
	return body, nil
}

func prefixer(prefix string) func(s string, index int) string {
	if prefix == "" {
		return nil
	}
	return func(s string, _ int) string {
		return prefix + s
	}
}

// NewSequenceUseCase creates a new sequence use case instance with the provided dependencies.
func NewSequenceUseCase(
	txManager database.TxManager,
	sequenceRepo SequenceRepository,
	tweakKeeper sequenceService.TweakKeeper,
	codecs *sequenceService.CodecFactory,
	maxAllocation int64,
) SequenceUseCase {
	return &sequenceUseCase{
		txManager:     txManager,
		sequenceRepo:  sequenceRepo,
		tweakKeeper:   tweakKeeper,
		codecs:        codecs,
		maxAllocation: maxAllocation,
	}
}
