package repository

import (
	"context"
	"database/sql"
	"errors"
	"math/big"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/allisson/serials/internal/database"
	apperrors "github.com/allisson/serials/internal/errors"
	sequenceDomain "github.com/allisson/serials/internal/sequence/domain"
)

const mysqlDuplicateEntry = 1062

const mysqlSequenceColumns = `id, name, alphabet_name, length, exclusion, sealed_tweak, prefix,
			  next_value, created_at, updated_at, deleted_at`

// MySQLSequenceRepository implements sequence persistence for MySQL databases.
//
// Database schema requirements:
//   - id: BINARY(16) PRIMARY KEY (UUID in binary format)
//   - name: VARCHAR(63), unique among non-deleted rows through a generated active_name column
//   - alphabet_name, exclusion: VARCHAR(32); prefix: VARCHAR(32)
//   - length: INTEGER
//   - sealed_tweak: BLOB (nullable, nil for identity sequences)
//   - next_value: VARCHAR(80) holding a base-10 integer
//   - created_at, updated_at: DATETIME(6)
//   - deleted_at: DATETIME(6) (nullable, for soft deletion)
type MySQLSequenceRepository struct {
	db *sql.DB
}

// NewMySQLSequenceRepository creates a new MySQL sequence repository instance.
func NewMySQLSequenceRepository(db *sql.DB) *MySQLSequenceRepository {
	return &MySQLSequenceRepository{db: db}
}

// Create inserts a new sequence. Returns ErrSequenceAlreadyExists when an active sequence
// with the same name exists.
func (m *MySQLSequenceRepository) Create(ctx context.Context, seq *sequenceDomain.Sequence) error {
	querier := database.GetTx(ctx, m.db)

	id, err := seq.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal sequence id")
	}

	query := `INSERT INTO sequences (id, name, alphabet_name, length, exclusion, sealed_tweak, prefix,
			  next_value, created_at, updated_at, deleted_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		seq.Name,
		seq.AlphabetName,
		seq.Length,
		seq.Exclusion.String(),
		seq.SealedTweak,
		seq.Prefix,
		seq.NextValue.String(),
		seq.CreatedAt,
		seq.UpdatedAt,
		seq.DeletedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return sequenceDomain.ErrSequenceAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create sequence")
	}
	return nil
}

// GetByName retrieves a non-deleted sequence by name.
func (m *MySQLSequenceRepository) GetByName(ctx context.Context, name string) (*sequenceDomain.Sequence, error) {
	query := `SELECT ` + mysqlSequenceColumns + `
			  FROM sequences
			  WHERE name = ? AND deleted_at IS NULL`

	return m.getOne(ctx, query, name)
}

// GetByNameForUpdate retrieves a non-deleted sequence by name and locks its row until
// the surrounding transaction ends. Must be called inside TxManager.WithTx.
func (m *MySQLSequenceRepository) GetByNameForUpdate(
	ctx context.Context,
	name string,
) (*sequenceDomain.Sequence, error) {
	query := `SELECT ` + mysqlSequenceColumns + `
			  FROM sequences
			  WHERE name = ? AND deleted_at IS NULL
			  FOR UPDATE`

	return m.getOne(ctx, query, name)
}

// List retrieves non-deleted sequences ordered by name ascending with pagination.
func (m *MySQLSequenceRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*sequenceDomain.Sequence, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlSequenceColumns + `
			  FROM sequences
			  WHERE deleted_at IS NULL
			  ORDER BY name ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list sequences")
	}
	defer func() {
		_ = rows.Close()
	}()

	sequences := make([]*sequenceDomain.Sequence, 0)
	for rows.Next() {
		seq, err := scanMySQLSequence(rows)
		if err != nil {
			return nil, err
		}
		sequences = append(sequences, seq)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate sequences")
	}

	return sequences, nil
}

// UpdateNextValue stores the counter value the next allocation starts from.
func (m *MySQLSequenceRepository) UpdateNextValue(
	ctx context.Context,
	sequenceID uuid.UUID,
	nextValue *big.Int,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := sequenceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal sequence id")
	}

	query := `UPDATE sequences SET next_value = ?, updated_at = NOW(6) WHERE id = ? AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, nextValue.String(), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update sequence next value")
	}
	return requireAffected(result)
}

// Delete soft-deletes a sequence by setting its deleted_at timestamp.
func (m *MySQLSequenceRepository) Delete(ctx context.Context, sequenceID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := sequenceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal sequence id")
	}

	query := `UPDATE sequences SET deleted_at = NOW(6) WHERE id = ? AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete sequence")
	}
	return requireAffected(result)
}

func (m *MySQLSequenceRepository) getOne(
	ctx context.Context,
	query string,
	args ...any,
) (*sequenceDomain.Sequence, error) {
	querier := database.GetTx(ctx, m.db)
	return scanMySQLSequence(querier.QueryRowContext(ctx, query, args...))
}

func scanMySQLSequence(s scanner) (*sequenceDomain.Sequence, error) {
	var seq sequenceDomain.Sequence
	var row sequenceRow
	var id []byte

	err := s.Scan(
		&id,
		&seq.Name,
		&seq.AlphabetName,
		&seq.Length,
		&row.exclusion,
		&seq.SealedTweak,
		&seq.Prefix,
		&row.nextValue,
		&seq.CreatedAt,
		&seq.UpdatedAt,
		&seq.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sequenceDomain.ErrSequenceNotFound
		}
		return nil, apperrors.Wrap(err, "failed to scan sequence")
	}

	if err := seq.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal sequence id")
	}
	if err := row.apply(&seq); err != nil {
		return nil, err
	}
	return &seq, nil
}
