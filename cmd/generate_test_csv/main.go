package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"fees-api/internal/models"
)

// Generates a sample fees CSV for exercising the upload endpoints. Rows mix
// fully populated records, blank fields, and junk values so the transformer's
// per-field coercion is visible in the result.
func main() {
	rows := flag.Int("rows", 100, "number of data rows to generate")
	out := flag.String("out", "test_fees_data.csv", "output file path")
	flag.Parse()

	file, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(models.FeesColumns); err != nil {
		log.Fatalf("Failed to write header: %v", err)
	}

	faculties := []string{"Engineering", "Science", "Commerce", "Arts"}
	statuses := []string{"Paid", "Pending", "Partial"}
	dates := []string{"15/07/24", "15-07-24", "15/07/2024", "15-07-2024", "2024-07-15"}

	for i := 1; i <= *rows; i++ {
		record := []string{
			strconv.Itoa(i),
			dates[i%len(dates)],
			"2024-25",
			"July",
			"General",
			"Receipt",
			fmt.Sprintf("V%05d", i),
			fmt.Sprintf("R%04d", i),
			fmt.Sprintf("ADM%06d", i),
			statuses[i%len(statuses)],
			"Tuition",
			faculties[i%len(faculties)],
			"B.Tech",
			"Computer Science",
			"2024",
			fmt.Sprintf("RCPT%06d", i),
			"Semester Fee",
			"50000.00",
			"45000.00",
			"2500.00",
			"2500.00",
			"0.00",
			"0.00",
			"0.00",
			"0.00",
			"0.00",
			fmt.Sprintf("row %d", i),
		}

		// Every 10th row gets blank optional fields, every 25th gets junk
		// values that should come out as NULLs.
		if i%10 == 0 {
			record[1] = ""
			record[17] = ""
			record[26] = ""
		}
		if i%25 == 0 {
			record[0] = "not-a-number"
			record[1] = "31/31/2024"
			record[18] = "n/a"
		}

		if err := writer.Write(record); err != nil {
			log.Fatalf("Failed to write row %d: %v", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Fatalf("Failed to flush csv: %v", err)
	}

	fmt.Printf("Wrote %d rows to %s\n", *rows, *out)
}
