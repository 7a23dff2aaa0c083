package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformRowFullRow(t *testing.T) {
	row := map[string]string{
		"sr":            "7",
		"date":          "15/07/2024",
		"academic_year": "2024-25",
		"roll_no":       "R0042",
		"status":        "Paid",
		"due_amount":    "50000.00",
		"paid_amount":   "45000.50",
		"remarks":       "on time",
	}

	record := TransformRow(row)

	require.NotNil(t, record.Sr)
	assert.Equal(t, 7, *record.Sr)
	require.NotNil(t, record.Date)
	assert.Equal(t, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), *record.Date)
	require.NotNil(t, record.AcademicYear)
	assert.Equal(t, "2024-25", *record.AcademicYear)
	require.NotNil(t, record.DueAmount)
	assert.Equal(t, 50000.0, *record.DueAmount)
	require.NotNil(t, record.PaidAmount)
	assert.Equal(t, 45000.50, *record.PaidAmount)
	require.NotNil(t, record.Remarks)
	assert.Equal(t, "on time", *record.Remarks)

	// Columns absent from the row stay nil.
	assert.Nil(t, record.Faculty)
	assert.Nil(t, record.RefundAmount)
}

func TestTransformRowNeverFails(t *testing.T) {
	row := map[string]string{
		"sr":          "not-a-number",
		"date":        "31/31/2024",
		"due_amount":  "n/a",
		"paid_amount": "NaN",
		"remarks":     "   ",
	}

	record := TransformRow(row)

	assert.Nil(t, record.Sr)
	assert.Nil(t, record.Date)
	assert.Nil(t, record.DueAmount)
	assert.Nil(t, record.PaidAmount)
	assert.Nil(t, record.Remarks)
}

func TestTransformRowEmptyRow(t *testing.T) {
	record := TransformRow(map[string]string{})

	assert.Nil(t, record.Sr)
	assert.Nil(t, record.Date)
	assert.Nil(t, record.AcademicYear)
	assert.Nil(t, record.DueAmount)
	assert.Nil(t, record.Remarks)
}

func TestParseOptionalDateLayouts(t *testing.T) {
	want := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

	for _, value := range []string{"15/07/24", "15-07-24", "15/07/2024", "15-07-2024", "2024-07-15"} {
		t.Run(value, func(t *testing.T) {
			got := parseOptionalDate(value)
			require.NotNil(t, got)
			assert.Equal(t, want, *got)
		})
	}
}

func TestParseOptionalDateRejectsOtherLayouts(t *testing.T) {
	for _, value := range []string{"07/15/2024", "15.07.2024", "2024/07/15", "July 15, 2024", "tomorrow"} {
		t.Run(value, func(t *testing.T) {
			assert.Nil(t, parseOptionalDate(value))
		})
	}
}

func TestParseOptionalDecimal(t *testing.T) {
	got := parseOptionalDecimal(" 12.5 ")
	require.NotNil(t, got)
	assert.Equal(t, 12.5, *got)

	assert.Nil(t, parseOptionalDecimal(""))
	assert.Nil(t, parseOptionalDecimal("abc"))
	assert.Nil(t, parseOptionalDecimal("NaN"))
	assert.Nil(t, parseOptionalDecimal("+Inf"))
}

func TestParseOptionalInt(t *testing.T) {
	got := parseOptionalInt("42")
	require.NotNil(t, got)
	assert.Equal(t, 42, *got)

	assert.Nil(t, parseOptionalInt("12.5"))
	assert.Nil(t, parseOptionalInt(""))
	assert.Nil(t, parseOptionalInt("x"))
}
