package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"fees-api/internal/config"
	"fees-api/internal/models"
	"fees-api/internal/repository"
	"fees-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySink doubles as its own transaction handle; the tests run one
// ingestion at a time.
type memorySink struct {
	batches    [][]models.FeesRecord
	committed  bool
	rolledBack bool
}

func (s *memorySink) Begin(ctx context.Context) (repository.FeesTx, error) { return s, nil }

func (s *memorySink) InsertBatch(ctx context.Context, records []models.FeesRecord) error {
	batch := make([]models.FeesRecord, len(records))
	copy(batch, records)
	s.batches = append(s.batches, batch)
	return nil
}

func (s *memorySink) Commit(ctx context.Context) error {
	s.committed = true
	return nil
}

func (s *memorySink) Rollback(ctx context.Context) error {
	s.rolledBack = true
	return nil
}

func newUploadTestApp(t *testing.T, sink *memorySink) *fiber.App {
	t.Helper()
	cfg := &config.Config{
		UploadMaxSize: 1 << 20,
		UploadPath:    t.TempDir(),
		BatchSize:     1000,
	}

	h := NewUploadHandler(service.NewCSVService(sink), nil, nil, cfg)

	app := fiber.New()
	app.Post("/file-upload/csv", h.UploadCSV)
	app.Post("/file-upload/csv/validate", h.ValidateCSV)
	app.Post("/file-upload/csv/info", h.CSVInfo)
	app.Post("/file-upload/csv/debug", h.DebugCSV)
	return app
}

func multipartCSV(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadCSVProcessesFile(t *testing.T) {
	sink := &memorySink{}
	app := newUploadTestApp(t, sink)

	body, contentType := multipartCSV(t, "fees.csv", "sr,roll_no\n1,R0001\n2,R0002\n")
	req := httptest.NewRequest("POST", "/file-upload/csv", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Data struct {
			File   models.UploadResponse   `json:"file"`
			Result models.ProcessingResult `json:"result"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	assert.Equal(t, "success", payload.Data.File.Status)
	assert.Equal(t, "fees.csv", payload.Data.File.OriginalName)
	assert.Equal(t, 2, payload.Data.Result.TotalRows)
	assert.Equal(t, 2, payload.Data.Result.ProcessedRows)
	assert.True(t, sink.committed)
}

func TestUploadCSVRejectsBadBatchSize(t *testing.T) {
	app := newUploadTestApp(t, &memorySink{})

	body, contentType := multipartCSV(t, "fees.csv", "sr\n1\n")
	req := httptest.NewRequest("POST", "/file-upload/csv?batchSize=0", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req2 := httptest.NewRequest("POST", "/file-upload/csv?batchSize=10001", nil)
	resp2, err := app.Test(req2)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp2.StatusCode)
}

func TestUploadCSVRequiresFile(t *testing.T) {
	app := newUploadTestApp(t, &memorySink{})

	resp, err := app.Test(httptest.NewRequest("POST", "/file-upload/csv", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUploadCSVRejectsNonCSV(t *testing.T) {
	app := newUploadTestApp(t, &memorySink{})

	body, contentType := multipartCSV(t, "fees.xlsx", "not a csv")
	req := httptest.NewRequest("POST", "/file-upload/csv", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUploadCSVRejectsOversizeFile(t *testing.T) {
	sink := &memorySink{}
	app := newUploadTestApp(t, sink)

	// The test config caps uploads at 1 MiB.
	content := "sr,roll_no\n" + strings.Repeat("1,R0001\n", 200_000)
	body, contentType := multipartCSV(t, "fees.csv", content)
	req := httptest.NewRequest("POST", "/file-upload/csv", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, sink.batches)
}

func TestUploadCSVPartialFailureStatus(t *testing.T) {
	sink := &memorySink{}
	app := newUploadTestApp(t, sink)

	// Second data row carries an unterminated quote and fails to parse.
	body, contentType := multipartCSV(t, "fees.csv", "sr,roll_no\n1,R0001\n\"2,R0002\n")
	req := httptest.NewRequest("POST", "/file-upload/csv", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Data struct {
			File   models.UploadResponse   `json:"file"`
			Result models.ProcessingResult `json:"result"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	assert.Equal(t, "processing", payload.Data.File.Status)
	assert.Equal(t, 1, payload.Data.Result.ProcessedRows)
	assert.Equal(t, 1, payload.Data.Result.FailedRows)
}

func TestUploadCSVAllRowsFailedStatus(t *testing.T) {
	sink := &memorySink{}
	app := newUploadTestApp(t, sink)

	body, contentType := multipartCSV(t, "fees.csv", "sr,roll_no\n\"1,R0001\n")
	req := httptest.NewRequest("POST", "/file-upload/csv", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Data struct {
			File   models.UploadResponse   `json:"file"`
			Result models.ProcessingResult `json:"result"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	// No rows landed, so the upload is not reported as a partial ingestion.
	assert.Equal(t, "success", payload.Data.File.Status)
	assert.Equal(t, 0, payload.Data.Result.ProcessedRows)
	assert.Equal(t, 1, payload.Data.Result.FailedRows)
}

func TestValidateCSVReportsMissingColumns(t *testing.T) {
	app := newUploadTestApp(t, &memorySink{})

	body, contentType := multipartCSV(t, "fees.csv", "sr,date\n1,15/07/2024\n")
	req := httptest.NewRequest("POST", "/file-upload/csv/validate?requiredColumns=sr,date,paid_amount", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Data models.ValidationResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.False(t, payload.Data.Valid)
	assert.Equal(t, []string{"paid_amount"}, payload.Data.MissingColumns)
}

func TestDebugCSVRejectsBadSampleSize(t *testing.T) {
	app := newUploadTestApp(t, &memorySink{})

	resp, err := app.Test(httptest.NewRequest("POST", "/file-upload/csv/debug?rows=500", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
