package worker

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeCSVIngest = "csv:ingest"

type CSVIngestPayload struct {
	FilePath  string `json:"file_path"`
	BatchSize int    `json:"batch_size"`
}

func NewCSVIngestTask(filePath string, batchSize int) (*asynq.Task, error) {
	payload, err := json.Marshal(CSVIngestPayload{
		FilePath:  filePath,
		BatchSize: batchSize,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCSVIngest, payload), nil
}
