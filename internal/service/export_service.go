package service

import (
	"context"
	"fmt"

	"fees-api/internal/models"
	"fees-api/internal/repository"

	"github.com/xuri/excelize/v2"
)

// ExportService writes the ingested fee records to an xlsx workbook.
type ExportService struct {
	fees repository.FeesRepository
}

func NewExportService(fees repository.FeesRepository) *ExportService {
	return &ExportService{fees: fees}
}

func (s *ExportService) ExportFees(ctx context.Context, outputPath string) (int, error) {
	records, err := s.fees.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Fees Data"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return 0, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range models.FeesColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	endHeader, _ := excelize.CoordinatesToCellName(len(models.FeesColumns), 1)
	f.SetCellStyle(sheetName, "A1", endHeader, headerStyle)

	for rowIdx, record := range records {
		for colIdx, value := range feesRecordCells(record) {
			if value == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	if err := f.SaveAs(outputPath); err != nil {
		return 0, fmt.Errorf("failed to save workbook: %w", err)
	}
	return len(records), nil
}

// feesRecordCells flattens a record into the FeesColumns order. Nil stays
// nil so empty source fields come out as empty cells.
func feesRecordCells(r models.FeesRecord) []interface{} {
	cells := make([]interface{}, 0, len(models.FeesColumns))

	appendInt := func(v *int) {
		if v != nil {
			cells = append(cells, *v)
		} else {
			cells = append(cells, nil)
		}
	}
	appendString := func(v *string) {
		if v != nil {
			cells = append(cells, *v)
		} else {
			cells = append(cells, nil)
		}
	}
	appendFloat := func(v *float64) {
		if v != nil {
			cells = append(cells, *v)
		} else {
			cells = append(cells, nil)
		}
	}

	appendInt(r.Sr)
	if r.Date != nil {
		cells = append(cells, r.Date.Format("2006-01-02"))
	} else {
		cells = append(cells, nil)
	}
	appendString(r.AcademicYear)
	appendString(r.Session)
	appendString(r.AllotedCategory)
	appendString(r.VoucherType)
	appendString(r.VoucherNo)
	appendString(r.RollNo)
	appendString(r.AdmnoUniqueID)
	appendString(r.Status)
	appendString(r.FeeCategory)
	appendString(r.Faculty)
	appendString(r.Program)
	appendString(r.Department)
	appendString(r.Batch)
	appendString(r.ReceiptNo)
	appendString(r.FeeHead)
	appendFloat(r.DueAmount)
	appendFloat(r.PaidAmount)
	appendFloat(r.ConcessionAmount)
	appendFloat(r.ScholarshipAmount)
	appendFloat(r.ReverseConcessionAmount)
	appendFloat(r.WriteOffAmount)
	appendFloat(r.AdjustedAmount)
	appendFloat(r.RefundAmount)
	appendFloat(r.FundTrancferAmount)
	appendString(r.Remarks)

	return cells
}
