package repository

import (
	"context"
	"database/sql"
	"errors"
	"math/big"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/serials/internal/database"
	apperrors "github.com/allisson/serials/internal/errors"
	sequenceDomain "github.com/allisson/serials/internal/sequence/domain"
)

const postgresUniqueViolation = "23505"

const postgresSequenceColumns = `id, name, alphabet_name, length, exclusion, sealed_tweak, prefix,
			  next_value::text, created_at, updated_at, deleted_at`

// PostgreSQLSequenceRepository implements sequence persistence for PostgreSQL databases.
//
// Database schema requirements:
//   - id: UUID PRIMARY KEY
//   - name: TEXT (unique among non-deleted rows)
//   - alphabet_name, exclusion, prefix: TEXT
//   - length: INTEGER
//   - sealed_tweak: BYTEA (nullable, nil for identity sequences)
//   - next_value: NUMERIC(80,0)
//   - created_at, updated_at: TIMESTAMP WITH TIME ZONE
//   - deleted_at: TIMESTAMP WITH TIME ZONE (nullable, for soft deletion)
type PostgreSQLSequenceRepository struct {
	db *sql.DB
}

// NewPostgreSQLSequenceRepository creates a new PostgreSQL sequence repository instance.
func NewPostgreSQLSequenceRepository(db *sql.DB) *PostgreSQLSequenceRepository {
	return &PostgreSQLSequenceRepository{db: db}
}

// Create inserts a new sequence. Returns ErrSequenceAlreadyExists when an active sequence
// with the same name exists.
func (p *PostgreSQLSequenceRepository) Create(ctx context.Context, seq *sequenceDomain.Sequence) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO sequences (id, name, alphabet_name, length, exclusion, sealed_tweak, prefix,
			  next_value, created_at, updated_at, deleted_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := querier.ExecContext(
		ctx,
		query,
		seq.ID,
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
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == postgresUniqueViolation {
			return sequenceDomain.ErrSequenceAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create sequence")
	}
	return nil
}

// GetByName retrieves a non-deleted sequence by name.
func (p *PostgreSQLSequenceRepository) GetByName(ctx context.Context, name string) (*sequenceDomain.Sequence, error) {
	query := `SELECT ` + postgresSequenceColumns + `
			  FROM sequences
			  WHERE name = $1 AND deleted_at IS NULL`

	return p.getOne(ctx, query, name)
}

// GetByNameForUpdate retrieves a non-deleted sequence by name and locks its row until
// the surrounding transaction ends. Must be called inside TxManager.WithTx.
func (p *PostgreSQLSequenceRepository) GetByNameForUpdate(
	ctx context.Context,
	name string,
) (*sequenceDomain.Sequence, error) {
	query := `SELECT ` + postgresSequenceColumns + `
			  FROM sequences
			  WHERE name = $1 AND deleted_at IS NULL
			  FOR UPDATE`

	return p.getOne(ctx, query, name)
}

// List retrieves non-deleted sequences ordered by name ascending with pagination.
func (p *PostgreSQLSequenceRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*sequenceDomain.Sequence, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresSequenceColumns + `
			  FROM sequences
			  WHERE deleted_at IS NULL
			  ORDER BY name ASC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list sequences")
	}
	defer func() {
		_ = rows.Close()
	}()

	sequences := make([]*sequenceDomain.Sequence, 0)
	for rows.Next() {
		seq, err := scanPostgreSQLSequence(rows)
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
func (p *PostgreSQLSequenceRepository) UpdateNextValue(
	ctx context.Context,
	sequenceID uuid.UUID,
	nextValue *big.Int,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE sequences SET next_value = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, nextValue.String(), sequenceID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update sequence next value")
	}
	return requireAffected(result)
}

// Delete soft-deletes a sequence by setting its deleted_at timestamp.
func (p *PostgreSQLSequenceRepository) Delete(ctx context.Context, sequenceID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE sequences SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, sequenceID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete sequence")
	}
	return requireAffected(result)
}

func (p *PostgreSQLSequenceRepository) getOne(
	ctx context.Context,
	query string,
	args ...any,
) (*sequenceDomain.Sequence, error) {
	querier := database.GetTx(ctx, p.db)

	seq, err := scanPostgreSQLSequence(querier.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	return seq, nil
}

func scanPostgreSQLSequence(s scanner) (*sequenceDomain.Sequence, error) {
	var seq sequenceDomain.Sequence
	var row sequenceRow

	err := s.Scan(
		&seq.ID,
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

	if err := row.apply(&seq); err != nil {
		return nil, err
	}
	return &seq, nil
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return sequenceDomain.ErrSequenceNotFound
	}
	return nil
}
