// Package mocks provides mock implementations of the sequence service interfaces for testing.
package mocks

import (
	"context"
	"math/big"

	"github.com/stretchr/testify/mock"
)

// MockTweakKeeper is a mock implementation of TweakKeeper for testing.
type MockTweakKeeper struct {
	mock.Mock
}

// Seal mocks the Seal method of TweakKeeper.
func (m *MockTweakKeeper) Seal(ctx context.Context, tweak *big.Int) ([]byte, error) {
	args := m.Called(ctx, tweak)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Unseal mocks the Unseal method of TweakKeeper.
func (m *MockTweakKeeper) Unseal(ctx context.Context, sealed []byte) (*big.Int, error) {
	args := m.Called(ctx, sealed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

// Close mocks the Close method of TweakKeeper.
func (m *MockTweakKeeper) Close() error {
	args := m.Called()
	return args.Error(0)
}
