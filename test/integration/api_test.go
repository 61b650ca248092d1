// Package integration provides end-to-end integration tests for the Serials API.
// Tests all API endpoints against both PostgreSQL and MySQL databases.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/serials/internal/app"
	"github.com/allisson/serials/internal/config"
	"github.com/allisson/serials/internal/httputil"
	sequenceDTO "github.com/allisson/serials/internal/sequence/http/dto"
	"github.com/allisson/serials/internal/testutil"
)

// testTweakKeeperURI is a fixed local key used to seal tweaks in tests.
//
//nolint:gosec // test key
const testTweakKeeperURI = "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4="

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	dbDriver  string
}

// makeRequest performs an HTTP request and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 10 * time.Second}
	//nolint:gosec // controlled test environment with localhost URLs
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// setupIntegrationTest initializes all components for integration testing.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		testutil.SkipIfNoPostgres(t)
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		testutil.SkipIfNoMySQL(t)
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	cfg := &config.Config{
		DBDriver:              dbDriver,
		DBConnectionString:    dsn,
		DBMaxOpenConnections:  10,
		DBMaxIdleConnections:  5,
		DBConnMaxLifetime:     time.Hour,
		ServerHost:            "localhost",
		ServerPort:            8080,
		LogLevel:              "error",
		CodecCacheShards:      4,
		SequenceMaxAllocation: 1000,
		TweakKeeperURI:        testTweakKeeperURI,
	}

	container := app.NewContainer(cfg)

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	testServer := httptest.NewServer(handler)

	t.Logf("Integration test setup complete for %s", dbDriver)

	return &integrationTestContext{
		container: container,
		db:        db,
		server:    testServer,
		dbDriver:  dbDriver,
	}
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		err := ctx.container.Shutdown(context.Background())
		if err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}

	t.Logf("Integration test teardown complete for %s", ctx.dbDriver)
}

var testCases = []struct {
	name     string
	dbDriver string
}{
	{"PostgreSQL", "postgres"},
	{"MySQL", "mysql"},
}

// TestIntegration_Health_BasicChecks validates the health and readiness endpoints.
func TestIntegration_Health_BasicChecks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			t.Run("01_HealthCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response map[string]string
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "healthy", response["status"])
			})

			t.Run("02_ReadinessCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/ready", nil)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response map[string]any
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "ready", response["status"])
			})
		})
	}
}

// TestIntegration_Sequences_CompleteFlow walks a plain and a tweaked sequence through
// creation, allocation, encoding, decoding, validation and deletion.
func TestIntegration_Sequences_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			var allocated []string

			t.Run("01_CreateSequence", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/sequences", sequenceDTO.CreateSequenceRequest{
					Name:      "invoices",
					Alphabet:  "numeric",
					Length:    6,
					Exclusion: "none",
					Prefix:    "INV-",
					NextValue: "42",
				})
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				var response sequenceDTO.SequenceResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.NotEmpty(t, response.ID)
				assert.Equal(t, "invoices", response.Name)
				assert.Equal(t, "42", response.NextValue)
				assert.False(t, response.Tweaked)
			})

			t.Run("02_CreateDuplicate", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/sequences", sequenceDTO.CreateSequenceRequest{
					Name:     "invoices",
					Alphabet: "numeric",
					Length:   6,
				})
				assert.Equal(t, http.StatusConflict, resp.StatusCode)
			})

			t.Run("03_Allocate", func(t *testing.T) {
				resp, body := ctx.makeRequest(
					t, http.MethodPost, "/v1/sequences/invoices/allocate", sequenceDTO.AllocateRequest{Count: 3},
				)
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				var response sequenceDTO.AllocationResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "42", response.Start)
				assert.Equal(t, "45", response.End)
				assert.Equal(t, []string{"INV-000042", "INV-000043", "INV-000044"}, response.Identifiers)
				allocated = response.Identifiers
			})

			t.Run("04_AllocateContinues", func(t *testing.T) {
				resp, body := ctx.makeRequest(
					t, http.MethodPost, "/v1/sequences/invoices/allocate", sequenceDTO.AllocateRequest{Count: 1},
				)
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				var response sequenceDTO.AllocationResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, []string{"INV-000045"}, response.Identifiers)
			})

			t.Run("05_Decode", func(t *testing.T) {
				require.NotEmpty(t, allocated)
				resp, body := ctx.makeRequest(
					t,
					http.MethodPost,
					"/v1/sequences/invoices/decode",
					sequenceDTO.IdentifierRequest{Identifier: allocated[1]},
				)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var response sequenceDTO.DecodeResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "43", response.Value)
			})

			t.Run("06_ValidateInvalidCharacter", func(t *testing.T) {
				resp, body := ctx.makeRequest(
					t,
					http.MethodPost,
					"/v1/sequences/invoices/validate",
					sequenceDTO.IdentifierRequest{Identifier: "INV-00004X"},
				)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var response sequenceDTO.ValidateResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.False(t, response.Valid)
				assert.Equal(t, "invalid_character", response.Code)
			})

			t.Run("07_TweakedRoundTrip", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/sequences", sequenceDTO.CreateSequenceRequest{
					Name:      "pallets",
					Alphabet:  "alphanumeric",
					Length:    8,
					Exclusion: "all-numeric",
					Tweak:     "123456789",
				})
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				var created sequenceDTO.SequenceResponse
				require.NoError(t, json.Unmarshal(body, &created))
				assert.True(t, created.Tweaked)

				resp, body = ctx.makeRequest(
					t, http.MethodPost, "/v1/sequences/pallets/encode", sequenceDTO.EncodeRequest{Value: "31337"},
				)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var encoded sequenceDTO.EncodeResponse
				require.NoError(t, json.Unmarshal(body, &encoded))
				assert.Len(t, encoded.Identifier, 8)

				resp, body = ctx.makeRequest(
					t,
					http.MethodPost,
					"/v1/sequences/pallets/decode",
					sequenceDTO.IdentifierRequest{Identifier: encoded.Identifier},
				)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var decoded sequenceDTO.DecodeResponse
				require.NoError(t, json.Unmarshal(body, &decoded))
				assert.Equal(t, "31337", decoded.Value)
			})

			t.Run("08_List", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/sequences?limit=10", nil)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var response sequenceDTO.ListSequencesResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Len(t, response.Data, 2)
			})

			t.Run("09_Delete", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodDelete, "/v1/sequences/invoices", nil)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)

				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/sequences/invoices", nil)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)

				var response httputil.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "not_found", response.Error)
			})
		})
	}
}
