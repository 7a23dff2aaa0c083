package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"fees-api/internal/service"
	"fees-api/internal/utils"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

type CSVIngestHandler struct {
	csvService *service.CSVService
	log        *logrus.Logger
}

func NewCSVIngestHandler(csvService *service.CSVService) *CSVIngestHandler {
	return &CSVIngestHandler{
		csvService: csvService,
		log:        utils.GetLogger(),
	}
}

func (h *CSVIngestHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var payload CSVIngestPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid csv:ingest payload: %v: %w", err, asynq.SkipRetry)
	}

	result, err := h.csvService.ProcessCSVFile(ctx, payload.FilePath, payload.BatchSize)
	if err != nil {
		h.log.WithError(err).WithField("file", payload.FilePath).Error("csv ingestion task failed")
		// The uploaded file is gone after a failed run, retrying cannot help.
		return fmt.Errorf("csv ingestion failed: %v: %w", err, asynq.SkipRetry)
	}

	h.log.WithFields(logrus.Fields{
		"file":          payload.FilePath,
		"totalRows":     result.TotalRows,
		"processedRows": result.ProcessedRows,
		"failedRows":    result.FailedRows,
	}).Info("csv ingestion task finished")

	return nil
}
