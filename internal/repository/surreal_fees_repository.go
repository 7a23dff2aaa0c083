package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fees-api/internal/models"

	surrealdb "github.com/surrealdb/surrealdb.go"
)

const tableFeesData = "fees_data"

// SurrealFeesRepository hands out one staging handle per ingestion run. The
// RPC protocol scopes a transaction to a single query request, so each run
// stages its batches in memory and submits them as one BEGIN/COMMIT query at
// Commit time. The repository itself holds no per-run state and is safe to
// share across requests.
type SurrealFeesRepository struct {
	db *surrealdb.DB
}

func NewSurrealFeesRepository(db *surrealdb.DB) *SurrealFeesRepository {
	return &SurrealFeesRepository{db: db}
}

func (r *SurrealFeesRepository) Begin(ctx context.Context) (FeesTx, error) {
	return &surrealFeesTx{db: r.db}, nil
}

// surrealFeesTx stages one run's batches. Not safe for concurrent use; each
// run drives its own handle.
type surrealFeesTx struct {
	db     *surrealdb.DB
	staged [][]models.FeesRecord
	done   bool
}

func (t *surrealFeesTx) InsertBatch(ctx context.Context, records []models.FeesRecord) error {
	if t.done {
		return errors.New("bulk insert already finished")
	}
	if len(records) == 0 {
		return nil
	}

	// The caller reuses its batch slice between flushes.
	batch := make([]models.FeesRecord, len(records))
	copy(batch, records)
	t.staged = append(t.staged, batch)
	return nil
}

func (t *surrealFeesTx) Commit(ctx context.Context) error {
	if t.done {
		return errors.New("bulk insert already finished")
	}
	t.done = true

	staged := t.staged
	t.staged = nil
	if len(staged) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("BEGIN TRANSACTION;\n")
	vars := make(map[string]any, len(staged))
	for i, batch := range staged {
		name := fmt.Sprintf("batch%d", i)
		fmt.Fprintf(&sb, "INSERT INTO %s $%s RETURN NONE;\n", tableFeesData, name)
		vars[name] = batch
	}
	sb.WriteString("COMMIT TRANSACTION;")

	if _, err := surrealdb.Query[any](ctx, t.db, sb.String(), vars); err != nil {
		return fmt.Errorf("failed to commit bulk insert: %w", err)
	}
	return nil
}

func (t *surrealFeesTx) Rollback(ctx context.Context) error {
	// Nothing has been sent yet, dropping the staged batches is enough.
	t.staged = nil
	t.done = true
	return nil
}

func (r *SurrealFeesRepository) FindAll(ctx context.Context) ([]models.FeesRecord, error) {
	records, err := surrealQueryRows[models.FeesRecord](ctx, r.db,
		"SELECT * FROM fees_data", map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("failed to list fees records: %w", err)
	}
	return records, nil
}

func (r *SurrealFeesRepository) Count(ctx context.Context) (int, error) {
	total, err := surrealCount(ctx, r.db,
		"SELECT count() AS total FROM fees_data GROUP ALL", map[string]any{})
	if err != nil {
		return 0, fmt.Errorf("failed to count fees records: %w", err)
	}
	return total, nil
}

func (r *SurrealFeesRepository) DeleteAll(ctx context.Context) error {
	if _, err := surrealdb.Query[any](ctx, r.db, "DELETE fees_data", map[string]any{}); err != nil {
		return fmt.Errorf("failed to clear fees records: %w", err)
	}
	return nil
}
