package models

import "time"

// RowError records a failed row by its 1-based position in the file.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ProcessingResult aggregates the outcome of one ingestion run. Mutated only
// by the pipeline driver; processedRows + failedRows <= totalRows holds at
// all times, and after an abort failedRows is totalRows - processedRows.
type ProcessingResult struct {
	TotalRows     int        `json:"totalRows"`
	ProcessedRows int        `json:"processedRows"`
	FailedRows    int        `json:"failedRows"`
	Errors        []RowError `json:"errors"`
}

// UploadResponse is the result shape returned by the CSV ingestion endpoint.
type UploadResponse struct {
	Filename      string    `json:"filename"`
	OriginalName  string    `json:"originalName"`
	Size          int64     `json:"size"`
	MimeType      string    `json:"mimeType"`
	UploadedAt    time.Time `json:"uploadedAt"`
	RowsProcessed int       `json:"rowsProcessed"`
	Status        string    `json:"status"`
	Message       string    `json:"message"`
}

// CSVFileInfo describes an uploaded file without processing it.
type CSVFileInfo struct {
	Filename      string   `json:"filename"`
	Size          int64    `json:"size"`
	Headers       []string `json:"headers"`
	EstimatedRows int      `json:"estimatedRows"`
}

// ValidationResponse is returned by the structure-validation endpoint.
type ValidationResponse struct {
	Valid          bool        `json:"valid"`
	MissingColumns []string    `json:"missingColumns"`
	FileInfo       CSVFileInfo `json:"fileInfo"`
}

// DebugResponse carries a bounded sample of raw, untransformed rows.
type DebugResponse struct {
	Filename   string              `json:"filename"`
	Size       int64               `json:"size"`
	Headers    []string            `json:"headers"`
	SampleRows []map[string]string `json:"sampleRows"`
}
