// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	codecDomain "github.com/allisson/serials/internal/codec/domain"
	apperrors "github.com/allisson/serials/internal/errors"
	sequenceDomain "github.com/allisson/serials/internal/sequence/domain"
	customValidation "github.com/allisson/serials/internal/validation"
)

// CreateSequenceRequest contains the parameters for creating a sequence. Tweak and
// NextValue are decimal strings because they may exceed 64 bits.
type CreateSequenceRequest struct {
	Name      string `json:"name"`
	Alphabet  string `json:"alphabet"`
	Length    int    `json:"length"`
	Exclusion string `json:"exclusion"`
	Tweak     string `json:"tweak"`
	Prefix    string `json:"prefix"`
	NextValue string `json:"next_value"`
}

// Validate checks if the create sequence request is valid.
func (r *CreateSequenceRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, customValidation.SequenceName),
		validation.Field(&r.Alphabet, validation.Required, customValidation.AlphabetName),
		validation.Field(&r.Length, validation.Required, validation.Min(1), validation.Max(codecDomain.MaxStringLength)),
		validation.Field(&r.Exclusion, customValidation.ExclusionName),
		validation.Field(&r.Tweak, customValidation.Decimal),
		validation.Field(&r.Prefix, validation.Length(0, sequenceDomain.MaxPrefixLength), customValidation.NoWhitespace),
		validation.Field(&r.NextValue, customValidation.Decimal),
	)
}

// ToInput converts a validated request into the use case input.
func (r *CreateSequenceRequest) ToInput() (*sequenceDomain.CreateSequenceInput, error) {
	exclusion, err := codecDomain.ParseExclusion(r.Exclusion)
	if err != nil {
		return nil, err
	}
	tweak, ok := customValidation.ParseDecimal(r.Tweak)
	if !ok {
		return nil, sequenceDomain.ErrInvalidTweak
	}
	nextValue, ok := customValidation.ParseDecimal(r.NextValue)
	if !ok {
		return nil, apperrors.Wrap(sequenceDomain.ErrInvalidNextValue, r.NextValue)
	}

	return &sequenceDomain.CreateSequenceInput{
		Name:         r.Name,
		AlphabetName: r.Alphabet,
		Length:       r.Length,
		Exclusion:    exclusion,
		Tweak:        tweak,
		Prefix:       r.Prefix,
		NextValue:    nextValue,
	}, nil
}

// AllocateRequest contains the number of identifiers to reserve.
type AllocateRequest struct {
	Count int64 `json:"count"`
}

// Validate checks if the allocate request is valid.
func (r *AllocateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Count, validation.Required, validation.Min(int64(1))),
	)
}

// EncodeRequest contains the counter value to render.
type EncodeRequest struct {
	Value string `json:"value"`
}

// Validate checks if the encode request is valid.
func (r *EncodeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value, validation.Required, customValidation.Decimal),
	)
}

// IdentifierRequest carries an identifier to decode or validate.
type IdentifierRequest struct {
	Identifier string `json:"identifier"`
}

// Validate checks if the identifier request is valid.
func (r *IdentifierRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Identifier, validation.Required),
	)
}
