package diff

import (
	"io"
	"log/slog"
)

// Status classifies one output row of a comparison.
type Status string

const (
	StatusAdded     Status = "added"
	StatusRemoved   Status = "removed"
	StatusModified  Status = "modified"
	StatusUnchanged Status = "unchanged"
)

// DiffRow is the comparison outcome for one matched pair of rows.
// Old is nil iff the row was added; New is nil iff it was removed.
// Changed lists the differing columns and is only set for modified rows.
type DiffRow struct {
	Index   int
	Status  Status
	Old     RowRecord
	New     RowRecord
	Changed []string
}

// Summary tallies row statuses. Total always equals the sum of the
// other four counts.
type Summary struct {
	Total     int
	Added     int
	Removed   int
	Modified  int
	Unchanged int
}

// Result is the complete outcome of one comparison. It is built once,
// never mutated, and carries no reference back into the input tables.
type Result struct {
	Summary   Summary
	Columns   []string
	Rows      []DiffRow
	File1Name string
	File2Name string
}

// Options configures a Differ. Zero values select the defaults noted on
// each field.
type Options struct {
	// KeyThreshold is the distinct-value ratio a column must exceed in
	// both tables to qualify as a key column (default 0.8).
	KeyThreshold float64

	// MaxKeyColumns caps the composite key width (default 3).
	MaxKeyColumns int

	// IDColumns is the preference order for auto-detecting the
	// identifier column in additions-only mode.
	IDColumns []string

	// Logger receives diagnostic events. Nil discards them.
	Logger *slog.Logger
}

// defaultIDColumns is the fallback identifier preference list when the
// configuration supplies none.
var defaultIDColumns = []string{
	"id", "customer_id", "user_id", "merchant_id",
	"merchant-display-name", "merchant-public-id",
}

// Differ compares pairs of tables. It holds only configuration, so one
// instance is safe for concurrent use across comparisons.
type Differ struct {
	keyThreshold  float64
	maxKeyColumns int
	idColumns     []string
	log           *slog.Logger
}

// New creates a Differ, applying defaults for unset options.
func New(opts Options) *Differ {
	d := &Differ{
		keyThreshold:  opts.KeyThreshold,
		maxKeyColumns: opts.MaxKeyColumns,
		idColumns:     opts.IDColumns,
		log:           opts.Logger,
	}
	if d.keyThreshold <= 0 {
		d.keyThreshold = 0.8
	}
	if d.maxKeyColumns <= 0 {
		d.maxKeyColumns = 3
	}
	if len(d.idColumns) == 0 {
		d.idColumns = defaultIDColumns
	}
	if d.log == nil {
		d.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d
}

// Compare produces a full diff of two tables: every row of both inputs
// appears exactly once in the result as added, removed, modified or
// unchanged. It never fails for well-formed tables; two empty tables
// yield an empty result.
func (d *Differ) Compare(a, b Table, name1, name2 string) Result {
	if a.Empty() && b.Empty() {
		return emptyResult(name1, name2)
	}

	a = Normalize(a)
	b = Normalize(b)
	allColumns := unionColumns(a, b)

	keys := d.selectKeys(a, b)

	var pairs []rowPair
	if len(keys) > 0 {
		d.log.Debug("matching by key columns", "keys", keys)
		pairs = matchByKeys(a, b, keys)
	} else {
		d.log.Debug("no usable key columns, matching by position")
		pairs = matchByPosition(a, b)
	}

	rows := make([]DiffRow, len(pairs))
	for i, p := range pairs {
		rows[i] = classify(p.old, p.new, allColumns, i)
	}

	res := Result{
		Summary:   tally(rows),
		Columns:   allColumns,
		Rows:      rows,
		File1Name: name1,
		File2Name: name2,
	}
	d.log.Info("comparison complete",
		"total", res.Summary.Total,
		"added", res.Summary.Added,
		"removed", res.Summary.Removed,
		"modified", res.Summary.Modified,
		"unchanged", res.Summary.Unchanged,
	)
	return res
}

// CompareAdditions produces a restricted diff that reports only rows
// whose identifier value appears in b but not in a. When idColumn is
// empty the identifier is auto-detected from the configured preference
// list, then falls back to the first column of the union. If no usable
// identifier column exists the call degrades to a full Compare.
func (d *Differ) CompareAdditions(a, b Table, name1, name2, idColumn string) Result {
	if a.Empty() && b.Empty() {
		return emptyResult(name1, name2)
	}

	na := Normalize(a)
	nb := Normalize(b)
	allColumns := unionColumns(na, nb)

	if idColumn == "" {
		idColumn = d.detectIDColumn(allColumns)
	}
	if idColumn == "" || !contains(allColumns, idColumn) {
		d.log.Warn("no usable identifier column, falling back to full comparison",
			"requested", idColumn)
		return d.Compare(a, b, name1, name2)
	}
	d.log.Debug("additions-only comparison", "id_column", idColumn)

	oldIDs := make(map[string]struct{}, len(na.Rows))
	for i := range na.Rows {
		oldIDs[na.Record(i)[idColumn]] = struct{}{}
	}

	var rows []DiffRow
	for i := range nb.Rows {
		rec := nb.Record(i)
		if _, known := oldIDs[rec[idColumn]]; known {
			continue
		}
		rows = append(rows, DiffRow{
			Index:  len(rows),
			Status: StatusAdded,
			New:    project(rec, allColumns),
		})
	}

	return Result{
		Summary:   Summary{Total: len(rows), Added: len(rows)},
		Columns:   allColumns,
		Rows:      rows,
		File1Name: name1,
		File2Name: name2,
	}
}

// detectIDColumn returns the first preferred identifier name present in
// cols, or the first column when no preference matches, or "" when the
// union is empty.
func (d *Differ) detectIDColumn(cols []string) string {
	for _, want := range d.idColumns {
		if contains(cols, want) {
			return want
		}
	}
	if len(cols) > 0 {
		return cols[0]
	}
	return ""
}

func emptyResult(name1, name2 string) Result {
	return Result{
		Columns:   []string{},
		Rows:      []DiffRow{},
		File1Name: name1,
		File2Name: name2,
	}
}

func tally(rows []DiffRow) Summary {
	s := Summary{Total: len(rows)}
	for _, r := range rows {
		switch r.Status {
		case StatusAdded:
			s.Added++
		case StatusRemoved:
			s.Removed++
		case StatusModified:
			s.Modified++
		case StatusUnchanged:
			s.Unchanged++
		}
	}
	return s
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
