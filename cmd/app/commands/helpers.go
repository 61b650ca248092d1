// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"os"

	"github.com/agnivade/levenshtein"
	"github.com/golang-migrate/migrate/v4"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/allisson/serials/internal/app"
	codecDomain "github.com/allisson/serials/internal/codec/domain"
)

// maxSuggestionDistance is the max edit distance for "did you mean" suggestions.
const maxSuggestionDistance = 3

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := migrate.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// newTable returns a table writer rendering to w.
func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// validateFormat accepts the two output formats every command supports.
func validateFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
}

// parseAlphabet resolves a predefined alphabet, suggesting the closest name on a typo.
func parseAlphabet(name string) (*codecDomain.Alphabet, error) {
	alphabet, err := codecDomain.AlphabetByName(name)
	if err != nil {
		return nil, unknownNameError("alphabet", name, codecDomain.AlphabetNames())
	}
	return alphabet, nil
}

// parseExclusion resolves an exclusion name, suggesting the closest name on a typo.
func parseExclusion(name string) (codecDomain.Exclusion, error) {
	exclusion, err := codecDomain.ParseExclusion(name)
	if err != nil {
		return codecDomain.ExclusionNone, unknownNameError("exclusion", name, codecDomain.ExclusionNames())
	}
	return exclusion, nil
}

// parseBigInt parses a non-negative decimal. An empty string returns nil.
func parseBigInt(field, s string) (*big.Int, error) {
	if s == "" {
		return nil, nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid %s: %q is not a non-negative integer", field, s)
	}
	return v, nil
}

// unknownNameError returns an error for an unknown name with a "did you mean"
// suggestion if a close match is found.
func unknownNameError(kind, unknown string, valid []string) error {
	if best := findClosest(unknown, valid); best != "" {
		return fmt.Errorf("unknown %s: %s (did you mean %q?)", kind, unknown, best)
	}
	return fmt.Errorf("unknown %s: %s", kind, unknown)
}

// findClosest returns the closest match from candidates, or empty if none are close enough.
func findClosest(input string, candidates []string) string {
	var best string
	bestDist := maxSuggestionDistance + 1

	for _, c := range candidates {
		dist := levenshtein.ComputeDistance(input, c)
		if dist < bestDist {
			bestDist = dist
			best = c
		}
	}

	if bestDist <= maxSuggestionDistance {
		return best
	}
	return ""
}
