// Package repository implements data persistence for sequences.
//
// Each repository has two implementations:
//   - PostgreSQL: native UUID, BYTEA for the sealed tweak and NUMERIC(80,0) for the counter
//   - MySQL: BINARY(16) for UUIDs, BLOB for the sealed tweak and VARCHAR(80) for the counter
//
// Counters can exceed 64 bits (an 82-character alphabet at length 40 has about 10^76
// identifiers), so next_value travels as a base-10 string and is parsed into *big.Int.
//
// All repositories support transaction-aware operations via database.GetTx(). Allocation
// relies on GetByNameForUpdate holding a row lock for the rest of the transaction.
package repository

import (
	"math/big"

	codecDomain "github.com/allisson/serials/internal/codec/domain"
	apperrors "github.com/allisson/serials/internal/errors"
	sequenceDomain "github.com/allisson/serials/internal/sequence/domain"
)

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// sequenceRow holds the columns that need conversion before they reach the domain model.
type sequenceRow struct {
	exclusion string
	nextValue string
}

func (r sequenceRow) apply(seq *sequenceDomain.Sequence) error {
	exclusion, err := codecDomain.ParseExclusion(r.exclusion)
	if err != nil {
		return apperrors.Wrap(err, "failed to parse sequence exclusion")
	}
	seq.Exclusion = exclusion

	nextValue, ok := new(big.Int).SetString(r.nextValue, 10)
	if !ok {
		return apperrors.Wrapf(sequenceDomain.ErrInvalidNextValue, "failed to parse next value %q", r.nextValue)
	}
	seq.NextValue = nextValue
	return nil
}
