package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fees-api/internal/config"
	"fees-api/internal/models"
	"fees-api/internal/service"
	"fees-api/internal/utils"
	"fees-api/internal/worker"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	minBatchSize = 1
	maxBatchSize = 10000

	defaultDebugRows = 5
	maxDebugRows     = 50
)

type UploadHandler struct {
	csvService    *service.CSVService
	exportService *service.ExportService
	asynqClient   *asynq.Client
	cfg           *config.Config
}

func NewUploadHandler(
	csvService *service.CSVService,
	exportService *service.ExportService,
	asynqClient *asynq.Client,
	cfg *config.Config,
) *UploadHandler {
	return &UploadHandler{
		csvService:    csvService,
		exportService: exportService,
		asynqClient:   asynqClient,
		cfg:           cfg,
	}
}

// UploadCSV ingests the uploaded file synchronously and reports the row
// accounting.
func (h *UploadHandler) UploadCSV(c *fiber.Ctx) error {
	batchSize, err := h.resolveBatchSize(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	file, filePath, err := h.saveUpload(c)
	if err != nil {
		return uploadError(c, err)
	}

	uploadedAt := time.Now().UTC()
	result, err := h.csvService.ProcessCSVFile(c.Context(), filePath, batchSize)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process CSV file", err)
	}

	// "processing" means a partial ingestion: some rows landed, some did not.
	status := "success"
	if result.FailedRows > 0 && result.ProcessedRows > 0 {
		status = "processing"
	}

	response := models.UploadResponse{
		Filename:      filepath.Base(filePath),
		OriginalName:  file.Filename,
		Size:          file.Size,
		MimeType:      file.Header.Get("Content-Type"),
		UploadedAt:    uploadedAt,
		RowsProcessed: result.ProcessedRows,
		Status:        status,
		Message: fmt.Sprintf("%d of %d rows inserted, %d failed",
			result.ProcessedRows, result.TotalRows, result.FailedRows),
	}

	return utils.SuccessResponse(c, "CSV file processed successfully", fiber.Map{
		"file":   response,
		"result": result,
	})
}

// UploadCSVAsync saves the file and hands ingestion to the worker queue.
func (h *UploadHandler) UploadCSVAsync(c *fiber.Ctx) error {
	batchSize, err := h.resolveBatchSize(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	file, filePath, err := h.saveUpload(c)
	if err != nil {
		return uploadError(c, err)
	}

	task, err := worker.NewCSVIngestTask(filePath, batchSize)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create ingestion task", err)
	}

	info, err := h.asynqClient.Enqueue(task)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to enqueue ingestion task", err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "CSV file queued for processing",
		"data": fiber.Map{
			"taskId":       info.ID,
			"queue":        info.Queue,
			"filename":     filepath.Base(filePath),
			"originalName": file.Filename,
		},
	})
}

// ValidateCSV checks the header row against the required columns. Defaults
// to the full fee-record column set.
func (h *UploadHandler) ValidateCSV(c *fiber.Ctx) error {
	_, filePath, err := h.saveUpload(c)
	if err != nil {
		return uploadError(c, err)
	}

	requiredColumns := models.FeesColumns
	if raw := c.Query("requiredColumns"); raw != "" {
		requiredColumns = []string{}
		for _, col := range strings.Split(raw, ",") {
			if col = strings.TrimSpace(col); col != "" {
				requiredColumns = append(requiredColumns, col)
			}
		}
	}

	response, err := h.csvService.ValidateCSVStructure(filePath, requiredColumns)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to validate CSV file", err)
	}

	return utils.SuccessResponse(c, "CSV structure validated", response)
}

// CSVInfo reports headers and row count without ingesting anything.
func (h *UploadHandler) CSVInfo(c *fiber.Ctx) error {
	_, filePath, err := h.saveUpload(c)
	if err != nil {
		return uploadError(c, err)
	}

	info, err := h.csvService.GetCSVInfo(filePath)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to inspect CSV file", err)
	}

	return utils.SuccessResponse(c, "CSV file inspected", info)
}

// DebugCSV returns a bounded sample of raw rows.
func (h *UploadHandler) DebugCSV(c *fiber.Ctx) error {
	rows := defaultDebugRows
	if raw := c.Query("rows"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxDebugRows {
			return utils.ErrorResponse(c, fiber.StatusBadRequest,
				fmt.Sprintf("rows must be between 1 and %d", maxDebugRows), nil)
		}
		rows = parsed
	}

	_, filePath, err := h.saveUpload(c)
	if err != nil {
		return uploadError(c, err)
	}

	response, err := h.csvService.DebugCSVFile(filePath, rows)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to read CSV sample", err)
	}

	return utils.SuccessResponse(c, "CSV sample read", response)
}

// ExportFees streams the ingested records as an xlsx download.
func (h *UploadHandler) ExportFees(c *fiber.Ctx) error {
	filename := fmt.Sprintf("fees_export_%s.xlsx", time.Now().Format("20060102_150405"))
	outputPath := filepath.Join(h.cfg.UploadPath, filename)

	if _, err := h.exportService.ExportFees(c.Context(), outputPath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export fees records", err)
	}

	return c.Download(outputPath, filename)
}

func (h *UploadHandler) resolveBatchSize(c *fiber.Ctx) (int, error) {
	raw := c.Query("batchSize")
	if raw == "" {
		return h.cfg.BatchSize, nil
	}

	batchSize, err := strconv.Atoi(raw)
	if err != nil || batchSize < minBatchSize || batchSize > maxBatchSize {
		return 0, fmt.Errorf("batchSize must be between %d and %d", minBatchSize, maxBatchSize)
	}
	return batchSize, nil
}

// saveUpload validates the multipart upload and stores it under a fresh name
// in the upload directory. Failures come back as *fiber.Error carrying the
// status to answer with.
func (h *UploadHandler) saveUpload(c *fiber.Ctx) (*multipart.FileHeader, string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "File is required")
	}

	if !isCSVUpload(file) {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "Only CSV files are allowed")
	}

	if file.Size > int64(h.cfg.UploadMaxSize) {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "File size exceeds maximum limit")
	}

	if err := os.MkdirAll(h.cfg.UploadPath, 0o755); err != nil {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Failed to prepare upload directory")
	}

	filePath := filepath.Join(h.cfg.UploadPath, fmt.Sprintf("%s.csv", uuid.New().String()))
	if err := c.SaveFile(file, filePath); err != nil {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Failed to save file")
	}

	return file, filePath, nil
}

// uploadError writes the standard envelope for a saveUpload failure.
func uploadError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return utils.ErrorResponse(c, fe.Code, fe.Message, nil)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save file", err)
}

func isCSVUpload(file *multipart.FileHeader) bool {
	if strings.EqualFold(filepath.Ext(file.Filename), ".csv") {
		return true
	}
	switch file.Header.Get("Content-Type") {
	case "text/csv", "application/vnd.ms-excel":
		return true
	}
	return false
}
