package repository

import (
	"context"
	"errors"
	"fmt"

	"fees-api/internal/models"

	"github.com/jmoiron/sqlx"
)

// 27 named parameters per row; this chunk size keeps a single multi-row
// INSERT well under MySQL's 65535 placeholder cap.
const feesInsertChunkSize = 2000

const feesInsertQuery = `INSERT INTO fees_data (
	sr, date, academic_year, session, alloted_category, voucher_type,
	voucher_no, roll_no, admno_uniqueid, status, fee_category, faculty,
	program, department, batch, receipt_no, fee_head, due_amount,
	paid_amount, concession_amount, scholarship_amount,
	reverse_concession_amount, write_off_amount, adjusted_amount,
	refund_amount, fund_trancfer_amount, remarks
) VALUES (
	:sr, :date, :academic_year, :session, :alloted_category, :voucher_type,
	:voucher_no, :roll_no, :admno_uniqueid, :status, :fee_category, :faculty,
	:program, :department, :batch, :receipt_no, :fee_head, :due_amount,
	:paid_amount, :concession_amount, :scholarship_amount,
	:reverse_concession_amount, :write_off_amount, :adjusted_amount,
	:refund_amount, :fund_trancfer_amount, :remarks
)`

// MySQLFeesRepository opens one database transaction per ingestion run. The
// repository itself is safe to share across requests; all run state lives on
// the returned handle.
type MySQLFeesRepository struct {
	db *sqlx.DB
}

func NewMySQLFeesRepository(db *sqlx.DB) *MySQLFeesRepository {
	return &MySQLFeesRepository{db: db}
}

func (r *MySQLFeesRepository) Begin(ctx context.Context) (FeesTx, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &mysqlFeesTx{tx: tx}, nil
}

// mysqlFeesTx holds one run's transaction. Not safe for concurrent use; each
// run drives its own handle.
type mysqlFeesTx struct {
	tx   *sqlx.Tx
	done bool
}

func (t *mysqlFeesTx) InsertBatch(ctx context.Context, records []models.FeesRecord) error {
	if t.done {
		return errors.New("bulk insert already finished")
	}
	if len(records) == 0 {
		return nil
	}

	for i := 0; i < len(records); i += feesInsertChunkSize {
		end := i + feesInsertChunkSize
		if end > len(records) {
			end = len(records)
		}
		if _, err := t.tx.NamedExecContext(ctx, feesInsertQuery, records[i:end]); err != nil {
			return fmt.Errorf("failed to insert fees batch: %w", err)
		}
	}
	return nil
}

func (t *mysqlFeesTx) Commit(ctx context.Context) error {
	if t.done {
		return errors.New("bulk insert already finished")
	}
	t.done = true
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bulk insert: %w", err)
	}
	return nil
}

func (t *mysqlFeesTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Rollback(); err != nil {
		return fmt.Errorf("failed to roll back bulk insert: %w", err)
	}
	return nil
}

func (r *MySQLFeesRepository) FindAll(ctx context.Context) ([]models.FeesRecord, error) {
	var records []models.FeesRecord
	query := `SELECT sr, date, academic_year, session, alloted_category, voucher_type,
	          voucher_no, roll_no, admno_uniqueid, status, fee_category, faculty,
	          program, department, batch, receipt_no, fee_head, due_amount,
	          paid_amount, concession_amount, scholarship_amount,
	          reverse_concession_amount, write_off_amount, adjusted_amount,
	          refund_amount, fund_trancfer_amount, remarks
	          FROM fees_data ORDER BY id`
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to list fees records: %w", err)
	}
	return records, nil
}

func (r *MySQLFeesRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM fees_data"); err != nil {
		return 0, fmt.Errorf("failed to count fees records: %w", err)
	}
	return total, nil
}

func (r *MySQLFeesRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM fees_data"); err != nil {
		return fmt.Errorf("failed to clear fees records: %w", err)
	}
	return nil
}
