package dto

import (
	"time"

	apperrors "github.com/allisson/serials/internal/errors"
	sequenceDomain "github.com/allisson/serials/internal/sequence/domain"
)

// SequenceResponse represents a sequence in API responses. The tweak is never returned.
type SequenceResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Alphabet  string    `json:"alphabet"`
	Length    int       `json:"length"`
	Exclusion string    `json:"exclusion"`
	Prefix    string    `json:"prefix"`
	Tweaked   bool      `json:"tweaked"`
	NextValue string    `json:"next_value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListSequencesResponse represents a paginated list of sequences in API responses.
type ListSequencesResponse struct {
	Data []SequenceResponse `json:"data"`
}

// AllocationResponse lists the identifiers reserved by an allocation. End is exclusive.
type AllocationResponse struct {
	Sequence    string   `json:"sequence"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Count       int64    `json:"count"`
	Identifiers []string `json:"identifiers"`
}

// EncodeResponse carries a rendered identifier.
type EncodeResponse struct {
	Identifier string `json:"identifier"`
}

// DecodeResponse carries the counter value an identifier was rendered from.
type DecodeResponse struct {
	Value string `json:"value"`
}

// ValidateResponse reports whether an identifier is well formed. Code and Params describe
// the first failure.
type ValidateResponse struct {
	Valid   bool             `json:"valid"`
	Message string           `json:"message,omitempty"`
	Code    string           `json:"code,omitempty"`
	Params  apperrors.Params `json:"params,omitempty"`
}

// MapSequenceToResponse converts a domain sequence to an API response.
func MapSequenceToResponse(seq *sequenceDomain.Sequence) SequenceResponse {
	return SequenceResponse{
		ID:        seq.ID.String(),
		Name:      seq.Name,
		Alphabet:  seq.AlphabetName,
		Length:    seq.Length,
		Exclusion: seq.Exclusion.String(),
		Prefix:    seq.Prefix,
		Tweaked:   seq.Tweaked(),
		NextValue: seq.NextValue.String(),
		CreatedAt: seq.CreatedAt,
		UpdatedAt: seq.UpdatedAt,
	}
}

// MapSequencesToListResponse converts a slice of domain sequences to a list response.
func MapSequencesToListResponse(sequences []*sequenceDomain.Sequence) ListSequencesResponse {
	data := make([]SequenceResponse, 0, len(sequences))
	for _, seq := range sequences {
		data = append(data, MapSequenceToResponse(seq))
	}
	return ListSequencesResponse{Data: data}
}

// MapAllocationToResponse converts a domain allocation to an API response.
func MapAllocationToResponse(allocation *sequenceDomain.Allocation) AllocationResponse {
	return AllocationResponse{
		Sequence:    allocation.SequenceName,
		Start:       allocation.Range.Start().String(),
		End:         allocation.Range.End().String(),
		Count:       allocation.Range.Count(),
		Identifiers: allocation.Identifiers,
	}
}

// MapValidationError converts a validation failure into a negative ValidateResponse.
func MapValidationError(err error) ValidateResponse {
	response := ValidateResponse{Valid: false, Message: err.Error()}
	var kindErr *apperrors.Error
	if apperrors.As(err, &kindErr) {
		response.Code = string(kindErr.Kind)
		response.Params = kindErr.Params
	}
	return response
}
