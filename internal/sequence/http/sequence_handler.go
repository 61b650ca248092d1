// Package http provides HTTP handlers for sequence management and identifier operations.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/serials/internal/errors"
	"github.com/allisson/serials/internal/httputil"
	"github.com/allisson/serials/internal/sequence/http/dto"
	sequenceUseCase "github.com/allisson/serials/internal/sequence/usecase"
	customValidation "github.com/allisson/serials/internal/validation"
)

// SequenceHandler handles HTTP requests for sequences.
type SequenceHandler struct {
	sequenceUseCase sequenceUseCase.SequenceUseCase
	logger          *slog.Logger
}

// NewSequenceHandler creates a new sequence handler with required dependencies.
func NewSequenceHandler(sequenceUseCase sequenceUseCase.SequenceUseCase, logger *slog.Logger) *SequenceHandler {
	return &SequenceHandler{
		sequenceUseCase: sequenceUseCase,
		logger:          logger,
	}
}

// CreateHandler creates a new sequence.
// POST /v1/sequences
// Returns 201 Created with the sequence metadata.
func (h *SequenceHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateSequenceRequest
	if !h.bind(c, &req) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	seq, err := h.sequenceUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapSequenceToResponse(seq))
}

// ListHandler retrieves sequences with pagination support.
// GET /v1/sequences?offset=0&limit=50
func (h *SequenceHandler) ListHandler(c *gin.Context) {
	page, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	sequences, err := h.sequenceUseCase.List(c.Request.Context(), page.Offset, page.Limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSequencesToListResponse(sequences))
}

// GetHandler retrieves a sequence by name.
// GET /v1/sequences/:name
func (h *SequenceHandler) GetHandler(c *gin.Context) {
	seq, err := h.sequenceUseCase.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSequenceToResponse(seq))
}

// DeleteHandler soft deletes a sequence by name.
// DELETE /v1/sequences/:name
// Returns 204 No Content.
func (h *SequenceHandler) DeleteHandler(c *gin.Context) {
	if err := h.sequenceUseCase.Delete(c.Request.Context(), c.Param("name")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// AllocateHandler reserves a block of identifiers.
// POST /v1/sequences/:name/allocate
// Returns 201 Created with the rendered identifiers in counter order.
func (h *SequenceHandler) AllocateHandler(c *gin.Context) {
	var req dto.AllocateRequest
	if !h.bind(c, &req) {
		return
	}

	allocation, err := h.sequenceUseCase.Allocate(c.Request.Context(), c.Param("name"), req.Count)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAllocationToResponse(allocation))
}

// EncodeHandler renders a single counter value without reserving it.
// POST /v1/sequences/:name/encode
func (h *SequenceHandler) EncodeHandler(c *gin.Context) {
	var req dto.EncodeRequest
	if !h.bind(c, &req) {
		return
	}

	value, ok := customValidation.ParseDecimal(req.Value)
	if !ok {
		httputil.HandleValidationErrorGin(c, errors.New("value: must be a non-negative base-10 integer"), h.logger)
		return
	}

	identifier, err := h.sequenceUseCase.Encode(c.Request.Context(), c.Param("name"), value)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.EncodeResponse{Identifier: identifier})
}

// DecodeHandler recovers the counter value of an identifier.
// POST /v1/sequences/:name/decode
func (h *SequenceHandler) DecodeHandler(c *gin.Context) {
	var req dto.IdentifierRequest
	if !h.bind(c, &req) {
		return
	}

	value, err := h.sequenceUseCase.Decode(c.Request.Context(), c.Param("name"), req.Identifier)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DecodeResponse{Value: value.String()})
}

// ValidateHandler checks an identifier against the sequence settings.
// POST /v1/sequences/:name/validate
// Returns 200 OK with valid=false and the failure kind for malformed identifiers.
func (h *SequenceHandler) ValidateHandler(c *gin.Context) {
	var req dto.IdentifierRequest
	if !h.bind(c, &req) {
		return
	}

	err := h.sequenceUseCase.Validate(c.Request.Context(), c.Param("name"), req.Identifier)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.ValidateResponse{Valid: true})
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		c.JSON(http.StatusOK, dto.MapValidationError(err))
	default:
		httputil.HandleErrorGin(c, err, h.logger)
	}
}

type validatable interface {
	Validate() error
}

// bind parses the JSON body into req and validates it, writing the error response on failure.
func (h *SequenceHandler) bind(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return false
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return false
	}
	return true
}
