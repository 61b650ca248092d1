// Package domain defines sequence domain models and errors.
package domain

import (
	"github.com/allisson/serials/internal/errors"
)

// Sequence error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// so handlers can map them to HTTP status codes.
var (
	// ErrSequenceNotFound indicates the sequence was not found.
	ErrSequenceNotFound = errors.Wrap(errors.ErrNotFound, "sequence not found")

	// ErrSequenceAlreadyExists indicates a sequence with the same name already exists.
	ErrSequenceAlreadyExists = errors.Wrap(errors.ErrConflict, "sequence already exists")

	// ErrSequenceExhausted indicates the sequence has no room left for the requested allocation.
	ErrSequenceExhausted = errors.Wrap(errors.ErrConflict, "sequence exhausted")

	// ErrInvalidSequenceName indicates the name is empty or contains unsupported characters.
	ErrInvalidSequenceName = errors.Wrap(errors.ErrInvalidInput, "invalid sequence name")

	// ErrInvalidLength indicates the identifier length is outside [1, 40].
	ErrInvalidLength = errors.Wrap(errors.ErrInvalidInput, "invalid identifier length")

	// ErrInvalidTweak indicates a negative tweak.
	ErrInvalidTweak = errors.Wrap(errors.ErrInvalidInput, "invalid tweak")

	// ErrInvalidNextValue indicates a negative next value.
	ErrInvalidNextValue = errors.Wrap(errors.ErrInvalidInput, "invalid next value")

	// ErrInvalidPrefix indicates the prefix is too long or contains control characters.
	ErrInvalidPrefix = errors.Wrap(errors.ErrInvalidInput, "invalid prefix")

	// ErrInvalidAllocationCount indicates a non-positive allocation count.
	ErrInvalidAllocationCount = errors.Wrap(errors.ErrInvalidInput, "invalid allocation count")

	// ErrAllocationTooLarge indicates the allocation exceeds the configured maximum.
	ErrAllocationTooLarge = errors.Wrap(errors.ErrInvalidInput, "allocation too large")

	// ErrPrefixMismatch indicates an identifier does not start with the sequence prefix.
	ErrPrefixMismatch = errors.Wrap(errors.ErrInvalidInput, "identifier prefix mismatch")

	// ErrTweakKeeperNotConfigured indicates a tweak was requested but no keeper can seal it.
	ErrTweakKeeperNotConfigured = errors.Wrap(errors.ErrInvalidInput, "tweak keeper not configured")
)
