// Package diff implements row-level comparison of two tabular datasets.
// This package has no I/O dependencies and can be driven by any frontend
// that supplies parsed tables.
package diff

import (
	"sort"
	"strings"
)

// Table is an ordered sequence of named columns and an ordered sequence
// of rows. Callers must supply rectangular data: every row has exactly
// len(Columns) cells. The fileio readers guarantee this shape.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the table has no data rows. A table with a
// header but zero rows is considered empty, matching how the comparison
// short-circuits when both inputs carry no data.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// RowRecord is a snapshot of one row's values keyed by column name.
// Columns the row does not have read as "".
type RowRecord map[string]string

// Record returns row i as a RowRecord over the table's own columns.
func (t Table) Record(i int) RowRecord {
	rec := make(RowRecord, len(t.Columns))
	row := t.Rows[i]
	for c, col := range t.Columns {
		if c < len(row) {
			rec[col] = row[c]
		} else {
			rec[col] = ""
		}
	}
	return rec
}

// Normalize returns a copy of t with every cell trimmed of leading and
// trailing whitespace. Absent values are already represented as "" by
// the parsing layer, so post-normalization no cell carries a null
// marker. Numeric formatting differences ("25" vs "25.0") survive
// normalization and compare as distinct text.
func Normalize(t Table) Table {
	out := Table{
		Columns: make([]string, len(t.Columns)),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, col := range t.Columns {
		out.Columns[i] = strings.TrimSpace(col)
	}
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = strings.TrimSpace(v)
		}
		out.Rows[i] = cells
	}
	return out
}

// unionColumns returns the union of both tables' column names, sorted
// lexicographically for stable output.
func unionColumns(a, b Table) []string {
	seen := make(map[string]bool, len(a.Columns)+len(b.Columns))
	var cols []string
	for _, col := range a.Columns {
		if !seen[col] {
			seen[col] = true
			cols = append(cols, col)
		}
	}
	for _, col := range b.Columns {
		if !seen[col] {
			seen[col] = true
			cols = append(cols, col)
		}
	}
	sort.Strings(cols)
	return cols
}
