package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	codecDomain "github.com/allisson/serials/internal/codec/domain"
	codecService "github.com/allisson/serials/internal/codec/service"
	sequenceService "github.com/allisson/serials/internal/sequence/service"
)

// CodecParams selects the codec used by the offline encode and decode commands.
type CodecParams struct {
	Alphabet  string
	Length    int
	Exclusion string
	Tweak     string
}

type codecResult struct {
	Value      string `json:"value"`
	Identifier string `json:"identifier"`
}

type offlineCodec struct {
	creator *codecService.Creator
	length  int
	opts    codecService.CreateOptions
}

func newOfflineCodec(codecs *sequenceService.CodecFactory, params CodecParams) (*offlineCodec, error) {
	alphabet, err := parseAlphabet(params.Alphabet)
	if err != nil {
		return nil, err
	}
	exclusion, err := parseExclusion(params.Exclusion)
	if err != nil {
		return nil, err
	}
	tweak, err := parseBigInt("tweak", params.Tweak)
	if err != nil {
		return nil, err
	}

	creator, err := codecs.Creator(alphabet.Name())
	if err != nil {
		return nil, err
	}

	return &offlineCodec{
		creator: creator,
		length:  params.Length,
		opts:    codecService.CreateOptions{Exclusion: exclusion, Tweak: tweak},
	}, nil
}

// RunEncode renders each value as an identifier without touching the database.
func RunEncode(
	codecs *sequenceService.CodecFactory,
	writer io.Writer,
	params CodecParams,
	values []string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("at least one value is required")
	}

	codec, err := newOfflineCodec(codecs, params)
	if err != nil {
		return err
	}

	results := make([]codecResult, 0, len(values))
	for _, raw := range values {
		v, err := parseBigInt("value", raw)
		if err != nil {
			return err
		}
		if v == nil {
			return fmt.Errorf("invalid value: empty string")
		}
		identifier, err := codec.creator.Create(codec.length, v, codec.opts)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", raw, err)
		}
		results = append(results, codecResult{Value: v.String(), Identifier: identifier})
	}

	return outputCodecResults(writer, results, format)
}

// RunDecode recovers the value behind each identifier without touching the database.
// The identifier length must match params.Length.
func RunDecode(
	codecs *sequenceService.CodecFactory,
	writer io.Writer,
	params CodecParams,
	identifiers []string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if len(identifiers) == 0 {
		return fmt.Errorf("at least one identifier is required")
	}

	codec, err := newOfflineCodec(codecs, params)
	if err != nil {
		return err
	}

	results := make([]codecResult, 0, len(identifiers))
	for _, identifier := range identifiers {
		err := codec.creator.Validate(identifier, codecService.ValidateOptions{
			ExactLength: codecService.Length(codec.length),
			Exclusion:   codec.opts.Exclusion,
		})
		if err != nil {
			return fmt.Errorf("invalid identifier %q: %w", identifier, err)
		}

		v, err := codec.creator.ValueFor(identifier, codec.opts)
		if err != nil {
			return fmt.Errorf("failed to decode %q: %w", identifier, err)
		}
		results = append(results, codecResult{Value: v.String(), Identifier: identifier})
	}

	return outputCodecResults(writer, results, format)
}

func outputCodecResults(writer io.Writer, results []codecResult, format string) error {
	if format == "json" {
		return writeJSON(writer, results)
	}

	t := newTable(writer)
	t.AppendHeader(table.Row{"Value", "Identifier"})
	for _, r := range results {
		t.AppendRow(table.Row{r.Value, r.Identifier})
	}
	t.Render()
	return nil
}

type alphabetInfo struct {
	Name       string   `json:"name"`
	Size       int      `json:"size"`
	Characters string   `json:"characters"`
	Exclusions []string `json:"exclusions"`
}

// RunListAlphabets prints the predefined alphabets and the exclusions each supports.
func RunListAlphabets(writer io.Writer, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	infos := make([]alphabetInfo, 0)
	for _, name := range codecDomain.AlphabetNames() {
		alphabet, err := codecDomain.AlphabetByName(name)
		if err != nil {
			return err
		}
		exclusions := make([]string, 0)
		for _, e := range alphabet.Exclusions() {
			exclusions = append(exclusions, e.String())
		}
		infos = append(infos, alphabetInfo{
			Name:       alphabet.Name(),
			Size:       alphabet.Size(),
			Characters: alphabet.Characters(),
			Exclusions: exclusions,
		})
	}

	if format == "json" {
		return writeJSON(writer, infos)
	}

	t := newTable(writer)
	t.AppendHeader(table.Row{"Name", "Size", "Exclusions", "Characters"})
	for _, info := range infos {
		t.AppendRow(table.Row{info.Name, info.Size, strings.Join(info.Exclusions, ", "), info.Characters})
	}
	t.Render()
	return nil
}
