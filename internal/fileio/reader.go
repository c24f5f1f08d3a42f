// Package fileio parses uploaded CSV and Excel files into diff.Table
// values and renders diff output back to CSV. It owns character
// encoding detection and the rectangular-shape guarantee the diff core
// relies on.
package fileio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"tablediff/internal/diff"
)

// ReadTable parses an uploaded file into a Table, dispatching on the
// file extension. Supported formats are .csv and .xlsx; the legacy
// binary .xls format is recognized but rejected.
func ReadTable(filename string, data []byte) (diff.Table, error) {
	if len(data) == 0 {
		return diff.Table{}, fmt.Errorf("%w: %s", ErrEmptyFile, filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(filename, data)
	case ".xlsx":
		return readExcel(filename, data)
	case ".xls":
		return diff.Table{}, fmt.Errorf("%w: legacy .xls workbooks are not supported, save as .xlsx", ErrUnsupportedFormat)
	default:
		return diff.Table{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

func readCSV(filename string, data []byte) (diff.Table, error) {
	text, encName := decodeText(data)
	slog.Debug("decoded csv upload", "file", filename, "encoding", encName)

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return diff.Table{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(records) == 0 {
		return diff.Table{}, fmt.Errorf("%w: %s", ErrEmptyFile, filename)
	}
	return buildTable(records[0], records[1:])
}

func readExcel(filename string, data []byte) (diff.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return diff.Table{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return diff.Table{}, fmt.Errorf("%w: workbook has no sheets", ErrEmptyFile)
	}

	// Only the first sheet is compared.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return diff.Table{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(rows) == 0 {
		return diff.Table{}, fmt.Errorf("%w: sheet %q has no rows", ErrEmptyFile, sheets[0])
	}
	return buildTable(rows[0], rows[1:])
}

// buildTable assembles a rectangular Table from a header and raw data
// rows. Short rows are padded with "" to the header width; rows wider
// than the header are a parse error. Fully empty rows are dropped, the
// way spreadsheet exports commonly leave blank trailing lines.
func buildTable(header []string, records [][]string) (diff.Table, error) {
	t := diff.Table{Columns: append([]string(nil), header...)}

	for i, rec := range records {
		if blankRow(rec) {
			continue
		}
		if len(rec) > len(header) {
			return diff.Table{}, fmt.Errorf("%w: row %d has %d cells, header has %d columns",
				ErrMalformed, i+2, len(rec), len(header))
		}
		row := make([]string, len(header))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func blankRow(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
