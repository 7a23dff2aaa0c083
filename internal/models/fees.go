package models

import "time"

// FeesRecord is one transformed row of the fee-records bulk upload. Every
// field is independently nullable: an empty, missing, or unparsable source
// value stays nil and is stored as NULL/NONE, never as zero or "".
type FeesRecord struct {
	Sr                      *int       `db:"sr" json:"sr"`
	Date                    *time.Time `db:"date" json:"date"`
	AcademicYear            *string    `db:"academic_year" json:"academic_year"`
	Session                 *string    `db:"session" json:"session"`
	AllotedCategory         *string    `db:"alloted_category" json:"alloted_category"`
	VoucherType             *string    `db:"voucher_type" json:"voucher_type"`
	VoucherNo               *string    `db:"voucher_no" json:"voucher_no"`
	RollNo                  *string    `db:"roll_no" json:"roll_no"`
	AdmnoUniqueID           *string    `db:"admno_uniqueid" json:"admno_uniqueid"`
	Status                  *string    `db:"status" json:"status"`
	FeeCategory             *string    `db:"fee_category" json:"fee_category"`
	Faculty                 *string    `db:"faculty" json:"faculty"`
	Program                 *string    `db:"program" json:"program"`
	Department              *string    `db:"department" json:"department"`
	Batch                   *string    `db:"batch" json:"batch"`
	ReceiptNo               *string    `db:"receipt_no" json:"receipt_no"`
	FeeHead                 *string    `db:"fee_head" json:"fee_head"`
	DueAmount               *float64   `db:"due_amount" json:"due_amount"`
	PaidAmount              *float64   `db:"paid_amount" json:"paid_amount"`
	ConcessionAmount        *float64   `db:"concession_amount" json:"concession_amount"`
	ScholarshipAmount       *float64   `db:"scholarship_amount" json:"scholarship_amount"`
	ReverseConcessionAmount *float64   `db:"reverse_concession_amount" json:"reverse_concession_amount"`
	WriteOffAmount          *float64   `db:"write_off_amount" json:"write_off_amount"`
	AdjustedAmount          *float64   `db:"adjusted_amount" json:"adjusted_amount"`
	RefundAmount            *float64   `db:"refund_amount" json:"refund_amount"`
	FundTrancferAmount      *float64   `db:"fund_trancfer_amount" json:"fund_trancfer_amount"`
	Remarks                 *string    `db:"remarks" json:"remarks"`
}

// FeesColumns is the canonical CSV column order, used by the transformer,
// the export service, and the test-data generator.
var FeesColumns = []string{
	"sr", "date", "academic_year", "session", "alloted_category",
	"voucher_type", "voucher_no", "roll_no", "admno_uniqueid", "status",
	"fee_category", "faculty", "program", "department", "batch",
	"receipt_no", "fee_head", "due_amount", "paid_amount",
	"concession_amount", "scholarship_amount", "reverse_concession_amount",
	"write_off_amount", "adjusted_amount", "refund_amount",
	"fund_trancfer_amount", "remarks",
}
