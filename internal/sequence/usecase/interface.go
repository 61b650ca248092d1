// Package usecase defines the interfaces and implementations for sequence management use cases.
// Use cases orchestrate the repository, the tweak keeper and the shared codecs to allocate,
// encode and decode fixed-length identifiers.
package usecase

import (
	"context"
	"math/big"

	"github.com/google/uuid"

	sequenceDomain "github.com/allisson/serials/internal/sequence/domain"
)

// SequenceRepository defines the interface for Sequence persistence operations.
type SequenceRepository interface {
	Create(ctx context.Context, seq *sequenceDomain.Sequence) error
	GetByName(ctx context.Context, name string) (*sequenceDomain.Sequence, error)
	// GetByNameForUpdate locks the row until the surrounding transaction ends.
	GetByNameForUpdate(ctx context.Context, name string) (*sequenceDomain.Sequence, error)
	List(ctx context.Context, offset, limit int) ([]*sequenceDomain.Sequence, error)
	UpdateNextValue(ctx context.Context, sequenceID uuid.UUID, nextValue *big.Int) error
	Delete(ctx context.Context, sequenceID uuid.UUID) error
}

// SequenceUseCase defines the interface for sequence business logic.
type SequenceUseCase interface {
	Create(ctx context.Context, input *sequenceDomain.CreateSequenceInput) (*sequenceDomain.Sequence, error)
	Get(ctx context.Context, name string) (*sequenceDomain.Sequence, error)
	List(ctx context.Context, offset, limit int) ([]*sequenceDomain.Sequence, error)
	Delete(ctx context.Context, name string) error
	// Allocate reserves count consecutive counter values and renders their identifiers.
	Allocate(ctx context.Context, name string, count int64) (*sequenceDomain.Allocation, error)
	// Encode renders a single counter value, prefix included.
	Encode(ctx context.Context, name string, value *big.Int) (string, error)
	// Decode recovers the counter value an identifier was rendered from.
	Decode(ctx context.Context, name, identifier string) (*big.Int, error)
	// Validate checks that identifier could have been produced by the sequence.
	Validate(ctx context.Context, name, identifier string) error
}
