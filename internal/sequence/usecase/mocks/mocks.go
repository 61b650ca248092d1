// Package mocks provides mock implementations of the sequence use case interfaces for testing.
package mocks

import (
	"context"
	"math/big"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	sequenceDomain "github.com/allisson/serials/internal/sequence/domain"
)

// MockSequenceRepository is a mock implementation of SequenceRepository for testing.
type MockSequenceRepository struct {
	mock.Mock
}

// Create mocks the Create method of SequenceRepository.
func (m *MockSequenceRepository) Create(ctx context.Context, seq *sequenceDomain.Sequence) error {
	args := m.Called(ctx, seq)
	return args.Error(0)
}

// GetByName mocks the GetByName method of SequenceRepository.
func (m *MockSequenceRepository) GetByName(ctx context.Context, name string) (*sequenceDomain.Sequence, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sequenceDomain.Sequence), args.Error(1)
}

// GetByNameForUpdate mocks the GetByNameForUpdate method of SequenceRepository.
func (m *MockSequenceRepository) GetByNameForUpdate(
	ctx context.Context,
	name string,
) (*sequenceDomain.Sequence, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sequenceDomain.Sequence), args.Error(1)
}

// List mocks the List method of SequenceRepository.
func (m *MockSequenceRepository) List(ctx context.Context, offset, limit int) ([]*sequenceDomain.Sequence, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sequenceDomain.Sequence), args.Error(1)
}

// UpdateNextValue mocks the UpdateNextValue method of SequenceRepository.
func (m *MockSequenceRepository) UpdateNextValue(ctx context.Context, sequenceID uuid.UUID, nextValue *big.Int) error {
	args := m.Called(ctx, sequenceID, nextValue)
	return args.Error(0)
}

// Delete mocks the Delete method of SequenceRepository.
func (m *MockSequenceRepository) Delete(ctx context.Context, sequenceID uuid.UUID) error {
	args := m.Called(ctx, sequenceID)
	return args.Error(0)
}

// MockSequenceUseCase is a mock implementation of SequenceUseCase for testing.
type MockSequenceUseCase struct {
	mock.Mock
}

// Create mocks the Create method of SequenceUseCase.
func (m *MockSequenceUseCase) Create(
	ctx context.Context,
	input *sequenceDomain.CreateSequenceInput,
) (*sequenceDomain.Sequence, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sequenceDomain.Sequence), args.Error(1)
}

// Get mocks the Get method of SequenceUseCase.
func (m *MockSequenceUseCase) Get(ctx context.Context, name string) (*sequenceDomain.Sequence, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sequenceDomain.Sequence), args.Error(1)
}

// List mocks the List method of SequenceUseCase.
func (m *MockSequenceUseCase) List(ctx context.Context, offset, limit int) ([]*sequenceDomain.Sequence, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sequenceDomain.Sequence), args.Error(1)
}

// Delete mocks the Delete method of SequenceUseCase.
func (m *MockSequenceUseCase) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// Allocate mocks the Allocate method of SequenceUseCase.
func (m *MockSequenceUseCase) Allocate(
	ctx context.Context,
	name string,
	count int64,
) (*sequenceDomain.Allocation, error) {
	args := m.Called(ctx, name, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sequenceDomain.Allocation), args.Error(1)
}

// Encode mocks the Encode method of SequenceUseCase.
func (m *MockSequenceUseCase) Encode(ctx context.Context, name string, value *big.Int) (string, error) {
	args := m.Called(ctx, name, value)
	return args.String(0), args.Error(1)
}

// Decode mocks the Decode method of SequenceUseCase.
func (m *MockSequenceUseCase) Decode(ctx context.Context, name, identifier string) (*big.Int, error) {
	args := m.Called(ctx, name, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

// Validate mocks the Validate method of SequenceUseCase.
func (m *MockSequenceUseCase) Validate(ctx context.Context, name, identifier string) error {
	args := m.Called(ctx, name, identifier)
	return args.Error(0)
}
