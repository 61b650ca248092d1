package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	codecDomain "github.com/allisson/serials/internal/codec/domain"
	apperrors "github.com/allisson/serials/internal/errors"
	sequenceDomain "github.com/allisson/serials/internal/sequence/domain"
	"github.com/allisson/serials/internal/sequence/http/dto"
	"github.com/allisson/serials/internal/sequence/usecase/mocks"
)

// setupTestHandler creates a test handler with mocked dependencies.
func setupTestHandler(t *testing.T) (*SequenceHandler, *mocks.MockSequenceUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockSequenceUseCase{}
	t.Cleanup(func() { mockUseCase.AssertExpectations(t) })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewSequenceHandler(mockUseCase, logger), mockUseCase
}

func testSequence() *sequenceDomain.Sequence {
	now := time.Now().UTC()
	return &sequenceDomain.Sequence{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         "invoices",
		AlphabetName: "numeric",
		Length:       6,
		Exclusion:    codecDomain.ExclusionFirstZero,
		SealedTweak:  []byte("sealed"),
		Prefix:       "INV-",
		NextValue:    big.NewInt(42),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func decodeBody[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestSequenceHandler_CreateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		seq := testSequence()

		mockUseCase.On("Create", mock.Anything, mock.MatchedBy(func(input *sequenceDomain.CreateSequenceInput) bool {
			return input.Name == "invoices" &&
				input.Exclusion == codecDomain.ExclusionFirstZero &&
				input.Tweak.String() == "123456789012345678901234567890" &&
				input.NextValue == nil
		})).Return(seq, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/sequences", dto.CreateSequenceRequest{
			Name:      "invoices",
			Alphabet:  "numeric",
			Length:    6,
			Exclusion: "first-zero",
			Tweak:     "123456789012345678901234567890",
			Prefix:    "INV-",
		})

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		response := decodeBody[dto.SequenceResponse](t, w.Body.Bytes())
		assert.Equal(t, seq.ID.String(), response.ID)
		assert.Equal(t, "first-zero", response.Exclusion)
		assert.True(t, response.Tweaked)
		assert.Equal(t, "42", response.NextValue)
		assert.NotContains(t, w.Body.String(), "sealed")
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/sequences", nil)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_ValidationFailed", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/sequences", dto.CreateSequenceRequest{
			Name:     "Invoices",
			Alphabet: "klingon",
			Length:   41,
		})

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		response := decodeBody[map[string]any](t, w.Body.Bytes())
		assert.Equal(t, "validation_error", response["error"])
		assert.Contains(t, response["message"], "alphabet")
		assert.Contains(t, response["message"], "length")
		assert.Contains(t, response["message"], "name")
	})

	t.Run("Error_UnsupportedExclusion", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewKindError(codecDomain.KindExclusionNotSupported, apperrors.Params{
				"exclusion": "all-numeric",
				"alphabet":  "numeric",
			})).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/sequences", dto.CreateSequenceRequest{
			Name:      "invoices",
			Alphabet:  "numeric",
			Length:    6,
			Exclusion: "all-numeric",
		})

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		response := decodeBody[map[string]any](t, w.Body.Bytes())
		assert.Equal(t, string(codecDomain.KindExclusionNotSupported), response["code"])
	})

	t.Run("Error_AlreadyExists", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Create", mock.Anything, mock.Anything).
			Return(nil, sequenceDomain.ErrSequenceAlreadyExists).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/sequences", dto.CreateSequenceRequest{
			Name:     "invoices",
			Alphabet: "numeric",
			Length:   6,
		})

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestSequenceHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("List", mock.Anything, 10, 5).
			Return([]*sequenceDomain.Sequence{testSequence()}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/sequences?offset=10&limit=5", nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeBody[dto.ListSequencesResponse](t, w.Body.Bytes())
		require.Len(t, response.Data, 1)
		assert.Equal(t, "invoices", response.Data[0].Name)
	})

	t.Run("Error_InvalidLimit", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/sequences?limit=1000", nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestSequenceHandler_GetAndDelete(t *testing.T) {
	t.Run("Get_Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Get", mock.Anything, "invoices").Return(testSequence(), nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/sequences/invoices", nil)
		c.Params = gin.Params{{Key: "name", Value: "invoices"}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Get", mock.Anything, "missing").Return(nil, sequenceDomain.ErrSequenceNotFound).Once()

		c, w := createTestContext(http.MethodGet, "/v1/sequences/missing", nil)
		c.Params = gin.Params{{Key: "name", Value: "missing"}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Delete_Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Delete", mock.Anything, "invoices").Return(nil).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/sequences/invoices", nil)
		c.Params = gin.Params{{Key: "name", Value: "invoices"}}

		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNoContent, c.Writer.Status())
		assert.Empty(t, w.Body.String())
	})
}

func TestSequenceHandler_AllocateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		allocation := &sequenceDomain.Allocation{
			SequenceName: "invoices",
			Range:        codecDomain.NewRange(big.NewInt(42), 2),
			Identifiers:  []string{"INV-100042", "INV-100043"},
		}
		mockUseCase.On("Allocate", mock.Anything, "invoices", int64(2)).Return(allocation, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/sequences/invoices/allocate", dto.AllocateRequest{Count: 2})
		c.Params = gin.Params{{Key: "name", Value: "invoices"}}

		handler.AllocateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		response := decodeBody[dto.AllocationResponse](t, w.Body.Bytes())
		assert.Equal(t, "42", response.Start)
		assert.Equal(t, "44", response.End)
		assert.Equal(t, int64(2), response.Count)
		assert.Equal(t, allocation.Identifiers, response.Identifiers)
	})

	t.Run("Error_ZeroCount", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/sequences/invoices/allocate", dto.AllocateRequest{})
		c.Params = gin.Params{{Key: "name", Value: "invoices"}}

		handler.AllocateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_Exhausted", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Allocate", mock.Anything, "invoices", int64(5)).
			Return(nil, sequenceDomain.ErrSequenceExhausted).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/sequences/invoices/allocate", dto.AllocateRequest{Count: 5})
		c.Params = gin.Params{{Key: "name", Value: "invoices"}}

		handler.AllocateHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestSequenceHandler_EncodeDecode(t *testing.T) {
	t.Run("Encode_Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Encode", mock.Anything, "invoices", mock.MatchedBy(func(v *big.Int) bool {
			return v.String() == "18446744073709551616"
		})).Return("INV-ABC", nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/sequences/invoices/encode", dto.EncodeRequest{
			Value: "18446744073709551616",
		})
		c.Params = gin.Params{{Key: "name", Value: "invoices"}}

		handler.EncodeHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"identifier":"INV-ABC"}`, w.Body.String())
	})

	t.Run("Encode_InvalidValue", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/sequences/invoices/encode", dto.EncodeRequest{Value: "-5"})
		c.Params = gin.Params{{Key: "name", Value: "invoices"}}

		handler.EncodeHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Decode_Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Decode", mock.Anything, "invoices", "INV-100042").Return(big.NewInt(42), nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/sequences/invoices/decode", dto.IdentifierRequest{
			Identifier: "INV-100042",
		})
		c.Params = gin.Params{{Key: "name", Value: "invoices"}}

		handler.DecodeHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"value":"42"}`, w.Body.String())
	})

	t.Run("Decode_InvalidCharacter", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Decode", mock.Anything, "invoices", "INV-10004X").
			Return(nil, apperrors.NewKindError(codecDomain.KindInvalidCharacter, apperrors.Params{
				"character": "X",
				"position":  10,
			})).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/sequences/invoices/decode", dto.IdentifierRequest{
			Identifier: "INV-10004X",
		})
		c.Params = gin.Params{{Key: "name", Value: "invoices"}}

		handler.DecodeHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		response := decodeBody[map[string]any](t, w.Body.Bytes())
		assert.Equal(t, string(codecDomain.KindInvalidCharacter), response["code"])
		assert.Equal(t, map[string]any{"character": "X", "position": float64(10)}, response["params"])
	})
}

func TestSequenceHandler_ValidateHandler(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Validate", mock.Anything, "invoices", "INV-100042").Return(nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/sequences/invoices/validate", dto.IdentifierRequest{
			Identifier: "INV-100042",
		})
		c.Params = gin.Params{{Key: "name", Value: "invoices"}}

		handler.ValidateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"valid":true}`, w.Body.String())
	})

	t.Run("Invalid", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Validate", mock.Anything, "invoices", "INV-012345").
			Return(apperrors.NewKindError(codecDomain.KindFirstZero, apperrors.Params{"component": "identifier"})).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/sequences/invoices/validate", dto.IdentifierRequest{
			Identifier: "INV-012345",
		})
		c.Params = gin.Params{{Key: "name", Value: "invoices"}}

		handler.ValidateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeBody[dto.ValidateResponse](t, w.Body.Bytes())
		assert.False(t, response.Valid)
		assert.Equal(t, string(codecDomain.KindFirstZero), response.Code)
		assert.Equal(t, "identifier", response.Params["component"])
	})

	t.Run("SequenceNotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Validate", mock.Anything, "missing", "X").Return(sequenceDomain.ErrSequenceNotFound).Once()

		c, w := createTestContext(http.MethodPost, "/v1/sequences/missing/validate", dto.IdentifierRequest{
			Identifier: "X",
		})
		c.Params = gin.Params{{Key: "name", Value: "missing"}}

		handler.ValidateHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
