package usecase

import (
	"context"
	"math/big"
	"time"

	"github.com/allisson/serials/internal/metrics"
	sequenceDomain "github.com/allisson/serials/internal/sequence/domain"
)

// sequenceUseCaseWithMetrics decorates SequenceUseCase with metrics instrumentation.
type sequenceUseCaseWithMetrics struct {
	next    SequenceUseCase
	metrics metrics.BusinessMetrics
}

// NewSequenceUseCaseWithMetrics wraps a SequenceUseCase with metrics recording.
func NewSequenceUseCaseWithMetrics(useCase SequenceUseCase, m metrics.BusinessMetrics) SequenceUseCase {
	return &sequenceUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for sequence creation operations.
func (s *sequenceUseCaseWithMetrics) Create(
	ctx context.Context,
	input *sequenceDomain.CreateSequenceInput,
) (*sequenceDomain.Sequence, error) {
	start := time.Now()
	seq, err := s.next.Create(ctx, input)
	s.record(ctx, "sequence_create", start, err)
	return seq, err
}

// Get records metrics for sequence retrieval operations.
func (s *sequenceUseCaseWithMetrics) Get(ctx context.Context, name string) (*sequenceDomain.Sequence, error) {
	start := time.Now()
	seq, err := s.next.Get(ctx, name)
	s.record(ctx, "sequence_get", start, err)
	return seq, err
}

// List records metrics for sequence listing operations.
func (s *sequenceUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*sequenceDomain.Sequence, error) {
	start := time.Now()
	sequences, err := s.next.List(ctx, offset, limit)
	s.record(ctx, "sequence_list", start, err)
	return sequences, err
}

// Delete records metrics for sequence deletion operations.
func (s *sequenceUseCaseWithMetrics) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := s.next.Delete(ctx, name)
	s.record(ctx, "sequence_delete", start, err)
	return err
}

// Allocate records metrics for identifier allocation operations.
func (s *sequenceUseCaseWithMetrics) Allocate(
	ctx context.Context,
	name string,
	count int64,
) (*sequenceDomain.Allocation, error) {
	start := time.Now()
	allocation, err := s.next.Allocate(ctx, name, count)
	s.record(ctx, "sequence_allocate", start, err)
	if err == nil {
		s.metrics.RecordIdentifiers(ctx, name, allocation.Range.Len())
	}
	return allocation, err
}

// Encode records metrics for single value encoding operations.
func (s *sequenceUseCaseWithMetrics) Encode(ctx context.Context, name string, value *big.Int) (string, error) {
	start := time.Now()
	identifier, err := s.next.Encode(ctx, name, value)
	s.record(ctx, "sequence_encode", start, err)
	return identifier, err
}

// Decode records metrics for identifier decoding operations.
func (s *sequenceUseCaseWithMetrics) Decode(ctx context.Context, name, identifier string) (*big.Int, error) {
	start := time.Now()
	value, err := s.next.Decode(ctx, name, identifier)
	s.record(ctx, "sequence_decode", start, err)
	return value, err
}

// Validate records metrics for identifier validation operations.
func (s *sequenceUseCaseWithMetrics) Validate(ctx context.Context, name, identifier string) error {
	start := time.Now()
	err := s.next.Validate(ctx, name, identifier)
	s.record(ctx, "sequence_validate", start, err)
	return err
}

func (s *sequenceUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "sequences", operation, status)
	s.metrics.RecordDuration(ctx, "sequences", operation, time.Since(start), status)
}
