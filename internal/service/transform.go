package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"fees-api/internal/models"
)

// Accepted date layouts, tried in order. A value matching none of them is
// dropped, never guessed at.
var feesDateLayouts = []string{
	"02/01/06",
	"02-01-06",
	"02/01/2006",
	"02-01-2006",
	"2006-01-02",
}

// TransformRow converts one raw CSV row into a FeesRecord. It never fails:
// each field is coerced independently and an empty, missing, or unparsable
// value simply stays nil.
func TransformRow(row map[string]string) models.FeesRecord {
	return models.FeesRecord{
		Sr:                      parseOptionalInt(row["sr"]),
		Date:                    parseOptionalDate(row["date"]),
		AcademicYear:            parseOptionalString(row["academic_year"]),
		Session:                 parseOptionalString(row["session"]),
		AllotedCategory:         parseOptionalString(row["alloted_category"]),
		VoucherType:             parseOptionalString(row["voucher_type"]),
		VoucherNo:               parseOptionalString(row["voucher_no"]),
		RollNo:                  parseOptionalString(row["roll_no"]),
		AdmnoUniqueID:           parseOptionalString(row["admno_uniqueid"]),
		Status:                  parseOptionalString(row["status"]),
		FeeCategory:             parseOptionalString(row["fee_category"]),
		Faculty:                 parseOptionalString(row["faculty"]),
		Program:                 parseOptionalString(row["program"]),
		Department:              parseOptionalString(row["department"]),
		Batch:                   parseOptionalString(row["batch"]),
		ReceiptNo:               parseOptionalString(row["receipt_no"]),
		FeeHead:                 parseOptionalString(row["fee_head"]),
		DueAmount:               parseOptionalDecimal(row["due_amount"]),
		PaidAmount:              parseOptionalDecimal(row["paid_amount"]),
		ConcessionAmount:        parseOptionalDecimal(row["concession_amount"]),
		ScholarshipAmount:       parseOptionalDecimal(row["scholarship_amount"]),
		ReverseConcessionAmount: parseOptionalDecimal(row["reverse_concession_amount"]),
		WriteOffAmount:          parseOptionalDecimal(row["write_off_amount"]),
		AdjustedAmount:          parseOptionalDecimal(row["adjusted_amount"]),
		RefundAmount:            parseOptionalDecimal(row["refund_amount"]),
		FundTrancferAmount:      parseOptionalDecimal(row["fund_trancfer_amount"]),
		Remarks:                 parseOptionalString(row["remarks"]),
	}
}

func parseOptionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func parseOptionalInt(value string) *int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil
	}
	return &n
}

func parseOptionalDecimal(value string) *float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func parseOptionalDate(value string) *time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	for _, layout := range feesDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return &t
		}
	}
	return nil
}
