package fileio

import (
	"encoding/csv"
	"fmt"
	"io"

	"tablediff/internal/diff"
)

// WriteCSV renders rows as CSV with a header line, projecting each row
// onto columns in order. Missing values render as empty cells. Output
// is UTF-8 without a BOM.
func WriteCSV(w io.Writer, columns []string, rows []diff.RowRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
