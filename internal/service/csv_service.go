package service

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fees-api/internal/models"
	"fees-api/internal/repository"
	"fees-api/internal/utils"

	"github.com/sirupsen/logrus"
)

const defaultBatchSize = 1000

// CSVService drives the fee-records ingestion pipeline: stream the file,
// transform rows, flush fixed-size batches into the sink, and commit or roll
// back the whole file as one unit.
type CSVService struct {
	sink repository.FeesBatchSink
	log  *logrus.Logger
}

func NewCSVService(sink repository.FeesBatchSink) *CSVService {
	return &CSVService{
		sink: sink,
		log:  utils.GetLogger(),
	}
}

// ProcessCSVFile ingests the file at path in batches of batchSize rows. The
// whole file is one transaction: any storage failure rolls everything back.
// The uploaded file is removed on every terminal path. On abort the returned
// result still carries the row accounting, alongside the error.
func (s *CSVService) ProcessCSVFile(ctx context.Context, path string, batchSize int) (*models.ProcessingResult, error) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	defer s.removeFile(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReaderSize(file, 64*1024))
	reader.FieldsPerRecord = -1

	headers, err := readHeaders(reader)
	if err != nil {
		return nil, err
	}

	result := &models.ProcessingResult{Errors: []models.RowError{}}

	tx, err := s.sink.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start ingestion: %w", err)
	}

	abort := func(cause error) (*models.ProcessingResult, error) {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.log.WithError(rbErr).Error("rollback failed after ingestion error")
		}
		result.FailedRows = result.TotalRows - result.ProcessedRows
		return result, cause
	}

	batch := make([]models.FeesRecord, 0, batchSize)
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.TotalRows++
				result.FailedRows++
				result.Errors = append(result.Errors, models.RowError{
					Row:   result.TotalRows,
					Error: err.Error(),
				})
				continue
			}
			return abort(fmt.Errorf("failed to read csv file: %w", err))
		}

		result.TotalRows++
		batch = append(batch, TransformRow(zipRow(headers, fields)))
		if len(batch) >= batchSize {
			if err := tx.InsertBatch(ctx, batch); err != nil {
				return abort(fmt.Errorf("failed to insert batch: %w", err))
			}
			result.ProcessedRows += len(batch)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := tx.InsertBatch(ctx, batch); err != nil {
			return abort(fmt.Errorf("failed to insert batch: %w", err))
		}
		result.ProcessedRows += len(batch)
	}

	if err := tx.Commit(ctx); err != nil {
		return abort(fmt.Errorf("failed to commit ingestion: %w", err))
	}

	s.log.WithFields(logrus.Fields{
		"file":          filepath.Base(path),
		"totalRows":     result.TotalRows,
		"processedRows": result.ProcessedRows,
		"failedRows":    result.FailedRows,
	}).Info("csv ingestion finished")

	return result, nil
}

// ValidateCSVStructure checks that every required column is present in the
// file's header. The file is removed afterwards.
func (s *CSVService) ValidateCSVStructure(path string, requiredColumns []string) (*models.ValidationResponse, error) {
	defer s.removeFile(path)

	info, err := s.readInfo(path)
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(info.Headers))
	for _, h := range info.Headers {
		present[h] = true
	}

	missing := []string{}
	for _, col := range requiredColumns {
		if !present[strings.ToLower(strings.TrimSpace(col))] {
			missing = append(missing, col)
		}
	}

	return &models.ValidationResponse{
		Valid:          len(missing) == 0,
		MissingColumns: missing,
		FileInfo:       *info,
	}, nil
}

// GetCSVInfo reports the header set and data row count, then removes the
// file.
func (s *CSVService) GetCSVInfo(path string) (*models.CSVFileInfo, error) {
	defer s.removeFile(path)
	return s.readInfo(path)
}

// DebugCSVFile returns up to sampleSize raw, untransformed rows. Reading
// stops as soon as the sample is full; the file is removed afterwards.
func (s *CSVService) DebugCSVFile(path string, sampleSize int) (*models.DebugResponse, error) {
	defer s.removeFile(path)

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat csv file: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReaderSize(file, 64*1024))
	reader.FieldsPerRecord = -1

	headers, err := readHeaders(reader)
	if err != nil {
		return nil, err
	}

	samples := []map[string]string{}
	for len(samples) < sampleSize {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv file: %w", err)
		}
		samples = append(samples, zipRow(headers, fields))
	}

	return &models.DebugResponse{
		Filename:   filepath.Base(path),
		Size:       stat.Size(),
		Headers:    headers,
		SampleRows: samples,
	}, nil
}

func (s *CSVService) readInfo(path string) (*models.CSVFileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat csv file: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReaderSize(file, 64*1024))
	reader.FieldsPerRecord = -1

	headers, err := readHeaders(reader)
	if err != nil {
		return nil, err
	}

	rows := 0
	for {
		if _, err := reader.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read csv file: %w", err)
		}
		rows++
	}

	return &models.CSVFileInfo{
		Filename:      filepath.Base(path),
		Size:          stat.Size(),
		Headers:       headers,
		EstimatedRows: rows,
	}, nil
}

func (s *CSVService) removeFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.WithError(err).WithField("file", path).Warn("failed to remove uploaded file")
	}
}

// readHeaders reads the header row, strips a UTF-8 BOM if present, and
// normalizes names to trimmed lowercase.
func readHeaders(reader *csv.Reader) ([]string, error) {
	record, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	headers := make([]string, len(record))
	for i, h := range record {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return headers, nil
}

// zipRow pairs header names with field values; short rows simply leave the
// trailing columns absent.
func zipRow(headers, fields []string) map[string]string {
	row := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(fields) {
			row[h] = fields[i]
		}
	}
	return row
}
