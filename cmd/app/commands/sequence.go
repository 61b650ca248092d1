package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	sequenceDomain "github.com/allisson/serials/internal/sequence/domain"
	sequenceUseCase "github.com/allisson/serials/internal/sequence/usecase"
)

// CreateSequenceParams carries the flag values of the create-sequence command.
type CreateSequenceParams struct {
	Name      string
	Alphabet  string
	Length    int
	Exclusion string
	Tweak     string
	Prefix    string
	NextValue string
}

type sequenceOutput struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Alphabet  string    `json:"alphabet"`
	Length    int       `json:"length"`
	Exclusion string    `json:"exclusion"`
	Tweaked   bool      `json:"tweaked"`
	Prefix    string    `json:"prefix"`
	NextValue string    `json:"next_value"`
	CreatedAt time.Time `json:"created_at"`
}

type allocationOutput struct {
	Sequence    string   `json:"sequence"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Count       int64    `json:"count"`
	Identifiers []string `json:"identifiers"`
}

// RunCreateSequence creates a sequence and prints it.
//
// Requirements: Database must be migrated and accessible.
func RunCreateSequence(
	ctx context.Context,
	useCase sequenceUseCase.SequenceUseCase,
	logger *slog.Logger,
	writer io.Writer,
	params CreateSequenceParams,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	alphabet, err := parseAlphabet(params.Alphabet)
	if err != nil {
		return err
	}
	exclusion, err := parseExclusion(params.Exclusion)
	if err != nil {
		return err
	}
	tweak, err := parseBigInt("tweak", params.Tweak)
	if err != nil {
		return err
	}
	nextValue, err := parseBigInt("next value", params.NextValue)
	if err != nil {
		return err
	}

	logger.Info("creating sequence", slog.String("name", params.Name))

	seq, err := useCase.Create(ctx, &sequenceDomain.CreateSequenceInput{
		Name:         params.Name,
		AlphabetName: alphabet.Name(),
		Length:       params.Length,
		Exclusion:    exclusion,
		Tweak:        tweak,
		Prefix:       params.Prefix,
		NextValue:    nextValue,
	})
	if err != nil {
		return fmt.Errorf("failed to create sequence: %w", err)
	}

	logger.Info("sequence created successfully",
		slog.String("sequence_id", seq.ID.String()),
		slog.String("name", seq.Name),
	)

	out := sequenceOutput{
		ID:        seq.ID.String(),
		Name:      seq.Name,
		Alphabet:  seq.AlphabetName,
		Length:    seq.Length,
		Exclusion: seq.Exclusion.String(),
		Tweaked:   seq.Tweaked(),
		Prefix:    seq.Prefix,
		NextValue: seq.NextValue.String(),
		CreatedAt: seq.CreatedAt,
	}

	if format == "json" {
		return writeJSON(writer, out)
	}

	t := newTable(writer)
	t.AppendRows([]table.Row{
		{"ID", out.ID},
		{"Name", out.Name},
		{"Alphabet", out.Alphabet},
		{"Length", out.Length},
		{"Exclusion", out.Exclusion},
		{"Tweaked", out.Tweaked},
		{"Prefix", out.Prefix},
		{"Next value", out.NextValue},
	})
	t.Render()
	return nil
}

// RunAllocate reserves count identifiers from a sequence and prints them.
//
// Requirements: Database must be migrated and accessible.
func RunAllocate(
	ctx context.Context,
	useCase sequenceUseCase.SequenceUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	count int64,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	allocation, err := useCase.Allocate(ctx, name, count)
	if err != nil {
		return fmt.Errorf("failed to allocate identifiers: %w", err)
	}

	logger.Info("identifiers allocated",
		slog.String("name", name),
		slog.String("range", allocation.Range.String()),
	)

	if format == "json" {
		return writeJSON(writer, allocationOutput{
			Sequence:    allocation.SequenceName,
			Start:       allocation.Range.Start().String(),
			End:         allocation.Range.End().String(),
			Count:       allocation.Range.Count(),
			Identifiers: allocation.Identifiers,
		})
	}

	t := newTable(writer)
	t.AppendHeader(table.Row{"Value", "Identifier"})
	for i, v := range allocation.Range.All() {
		t.AppendRow(table.Row{v.String(), allocation.Identifiers[i]})
	}
	t.Render()
	return nil
}
